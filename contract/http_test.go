// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package contract

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/tally-board/models"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestHTTPClientOwnerHeader(t *testing.T) {
	var mu sync.Mutex
	seen := make(map[string]string)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen[r.URL.Path] = r.Header.Get(OwnerKeyHeader)
		mu.Unlock()
		if r.URL.Path == PathTotalVotesFor+"Alice" {
			writeJSON(w, http.StatusOK, models.TotalVotesResponse{Candidate: "Alice", Votes: 7})
			return
		}
		writeJSON(w, http.StatusOK, models.AckResponse{Message: "ok"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, WithOwnerKey("k1"))
	ctx := context.Background()

	if err := c.RegisterCandidates(ctx, []string{"Alice"}, []string{"t"}); err != nil {
		t.Fatalf("RegisterCandidates() error = %v", err)
	}
	if err := c.ResetTallies(ctx); err != nil {
		t.Fatalf("ResetTallies() error = %v", err)
	}
	if err := c.SubmitVote(ctx, VoteSubmission{Candidate: "Alice", Voter: "v", SignedMessage: "t"}); err != nil {
		t.Fatalf("SubmitVote() error = %v", err)
	}
	votes, err := c.TallyFor(ctx, "Alice")
	if err != nil {
		t.Fatalf("TallyFor() error = %v", err)
	}
	if votes != 7 {
		t.Errorf("TallyFor() = %d, want 7", votes)
	}

	want := map[string]string{
		PathSetCandidates:           "k1",
		PathResetVotes:              "k1",
		PathVoteForCandidate:        "",
		PathTotalVotesFor + "Alice": "",
	}
	mu.Lock()
	defer mu.Unlock()
	for path, key := range want {
		if seen[path] != key {
			t.Errorf("%s owner header = %q, want %q", path, seen[path], key)
		}
	}
}

func TestHTTPClientErrorCodes(t *testing.T) {
	testCases := []struct {
		name    string
		status  int
		code    string
		wantErr error
	}{
		{"already voted", http.StatusConflict, CodeAlreadyVoted, ErrAlreadyVoted},
		{"signature mismatch", http.StatusUnprocessableEntity, CodeSignatureMismatch, ErrSignatureMismatch},
		{"unknown candidate", http.StatusUnprocessableEntity, CodeUnknownCandidate, ErrUnknownCandidate},
		{"unauthorized", http.StatusUnauthorized, CodeUnauthorized, ErrUnauthorized},
		{"no code", http.StatusInternalServerError, "", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tc.status, models.ErrorResponse{Error: http.StatusText(tc.status), Message: "rejected", Code: tc.code})
			}))
			defer srv.Close()

			err := NewHTTPClient(srv.URL).SubmitVote(context.Background(), VoteSubmission{Candidate: "Bob", Voter: "v"})
			if !errors.Is(err, ErrRemoteCall) {
				t.Fatalf("expected ErrRemoteCall, got %v", err)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v in chain, got %v", tc.wantErr, err)
			}
			if Code(err) != tc.code {
				t.Errorf("Code() = %q, want %q", Code(err), tc.code)
			}
		})
	}
}

func TestHTTPClientTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewHTTPClient(url).TallyFor(context.Background(), "Alice")
	if !errors.Is(err, ErrRemoteCall) {
		t.Fatalf("expected ErrRemoteCall, got %v", err)
	}
}

func TestHTTPClientTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	start := time.Now()
	_, err := NewHTTPClient(srv.URL, WithTimeout(50*time.Millisecond)).TallyFor(context.Background(), "Alice")
	if !errors.Is(err, ErrRemoteCall) {
		t.Fatalf("expected ErrRemoteCall, got %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Error("timeout not applied")
	}
}

func TestHTTPClientTimeoutDoesNotModifySharedClient(t *testing.T) {
	shared := &http.Client{}

	c := NewHTTPClient("http://contract", WithHTTPClient(shared), WithTimeout(50*time.Millisecond))
	if shared.Timeout != 0 {
		t.Errorf("shared client Timeout = %v, want 0", shared.Timeout)
	}
	if c.http.Timeout != 50*time.Millisecond {
		t.Errorf("Timeout = %v, want 50ms", c.http.Timeout)
	}

	// option order does not matter
	c = NewHTTPClient("http://contract", WithTimeout(50*time.Millisecond), WithHTTPClient(shared))
	if c.http.Timeout != 50*time.Millisecond {
		t.Errorf("Timeout = %v, want 50ms", c.http.Timeout)
	}
	if c.http == shared || shared.Timeout != 0 {
		t.Error("shared client was modified")
	}
}

func TestHTTPClientEscapesCandidate(t *testing.T) {
	paths := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths <- r.URL.EscapedPath()
		writeJSON(w, http.StatusOK, models.TotalVotesResponse{})
	}))
	defer srv.Close()

	if _, err := NewHTTPClient(srv.URL).TallyFor(context.Background(), "Mary Ann/2"); err != nil {
		t.Fatal(err)
	}
	if got, want := <-paths, PathTotalVotesFor+"Mary%20Ann%2F2"; got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}

type stubBackend struct {
	err error
}

func (s stubBackend) SetCandidates(ctx context.Context, names, hashes []string) error { return s.err }
func (s stubBackend) ResetVotes(ctx context.Context) error                           { return s.err }
func (s stubBackend) VoteForCandidate(ctx context.Context, candidate, voter, signed string) error {
	return s.err
}
func (s stubBackend) TotalVotesFor(ctx context.Context, candidate string) (uint64, error) {
	return 4, s.err
}

func TestLocalClient(t *testing.T) {
	ctx := context.Background()

	ok := NewLocalClient(stubBackend{})
	if v, err := ok.TallyFor(ctx, "Alice"); err != nil || v != 4 {
		t.Errorf("TallyFor() = %d, %v", v, err)
	}
	if err := ok.SubmitVote(ctx, VoteSubmission{}); err != nil {
		t.Errorf("SubmitVote() error = %v", err)
	}

	failing := NewLocalClient(stubBackend{err: ErrAlreadyVoted})
	err := failing.SubmitVote(ctx, VoteSubmission{})
	if !errors.Is(err, ErrRemoteCall) || !errors.Is(err, ErrAlreadyVoted) {
		t.Errorf("expected ErrRemoteCall and ErrAlreadyVoted, got %v", err)
	}
	if v, err := failing.TallyFor(ctx, "Alice"); !errors.Is(err, ErrRemoteCall) || v != 0 {
		t.Errorf("TallyFor() = %d, %v", v, err)
	}
}

func TestCodeRoundTrip(t *testing.T) {
	for _, c := range codes {
		if got := ErrorForCode(Code(c.err)); got != c.err {
			t.Errorf("ErrorForCode(Code(%v)) = %v", c.err, got)
		}
	}
	if ErrorForCode("nope") != nil {
		t.Error("unknown code should map to nil")
	}
}
