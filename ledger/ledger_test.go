// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/tally-board/catalog"
	"github.com/danielhkuo/tally-board/contract"
	"github.com/danielhkuo/tally-board/testutil"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l := New(testutil.SetupTestDB(t), "test-voter-salt", nil)

	cat := catalog.Default()
	if err := l.SetCandidates(context.Background(), cat.Names(), cat.Tokens()); err != nil {
		t.Fatalf("SetCandidates() error = %v", err)
	}
	return l
}

func mustVotes(t *testing.T, l *Ledger, candidate string) uint64 {
	t.Helper()
	v, err := l.TotalVotesFor(context.Background(), candidate)
	if err != nil {
		t.Fatalf("TotalVotesFor(%s) error = %v", candidate, err)
	}
	return v
}

func TestTotalVotesForDefaultsToZero(t *testing.T) {
	l := newTestLedger(t)

	for _, name := range []string{"Alice", "Bob", "Carol", "Nobody"} {
		if got := mustVotes(t, l, name); got != 0 {
			t.Errorf("TotalVotesFor(%s) = %d, want 0", name, got)
		}
	}
}

func TestSetCandidatesLengthMismatch(t *testing.T) {
	l := New(testutil.SetupTestDB(t), "salt", nil)

	err := l.SetCandidates(context.Background(), []string{"A", "B"}, []string{"a"})
	if !errors.Is(err, contract.ErrCandidateListMismatch) {
		t.Errorf("expected ErrCandidateListMismatch, got %v", err)
	}
}

func TestVoteForCandidate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		candidate string
		voter     string
		signed    string
		wantErr   error
	}{
		{"valid vote", "Alice", "voter-1", "Vote for Alice", nil},
		{"wrong signature", "Alice", "voter-2", "Vote for Bob", contract.ErrSignatureMismatch},
		{"empty signature", "Bob", "voter-3", "", contract.ErrSignatureMismatch},
		{"unknown candidate", "Dave", "voter-4", "", contract.ErrUnknownCandidate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLedger(t)

			err := l.VoteForCandidate(ctx, tt.candidate, tt.voter, tt.signed)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("VoteForCandidate() error = %v, want %v", err, tt.wantErr)
			}

			want := uint64(0)
			if tt.wantErr == nil {
				want = 1
			}
			if got := mustVotes(t, l, tt.candidate); got != want {
				t.Errorf("TotalVotesFor(%s) = %d, want %d", tt.candidate, got, want)
			}
		})
	}
}

func TestVoterCanOnlyVoteOnce(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	if err := l.VoteForCandidate(ctx, "Bob", "voter-x", "Vote for Bob"); err != nil {
		t.Fatal(err)
	}
	err := l.VoteForCandidate(ctx, "Carol", "voter-x", "Vote for Carol")
	if !errors.Is(err, contract.ErrAlreadyVoted) {
		t.Fatalf("second vote error = %v, want ErrAlreadyVoted", err)
	}

	if got := mustVotes(t, l, "Bob"); got != 1 {
		t.Errorf("Bob = %d, want 1", got)
	}
	if got := mustVotes(t, l, "Carol"); got != 0 {
		t.Errorf("Carol = %d, want 0", got)
	}
}

func TestAlreadyVotedCheckedBeforeSignature(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	if err := l.VoteForCandidate(ctx, "Alice", "voter-y", "Vote for Alice"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		candidate string
		signed    string
	}{
		{"wrong signature", "Bob", "Vote for Alice"},
		{"unknown candidate", "Dave", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := l.VoteForCandidate(ctx, tt.candidate, "voter-y", tt.signed)
			if !errors.Is(err, contract.ErrAlreadyVoted) {
				t.Errorf("VoteForCandidate() error = %v, want ErrAlreadyVoted", err)
			}
		})
	}
}

func TestResetVotesClearsCountsAndVoters(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	voters := []string{"v1", "v2", "v3"}
	for _, v := range voters {
		if err := l.VoteForCandidate(ctx, "Alice", v, "Vote for Alice"); err != nil {
			t.Fatal(err)
		}
	}
	if got := mustVotes(t, l, "Alice"); got != 3 {
		t.Fatalf("Alice = %d, want 3", got)
	}

	if err := l.ResetVotes(ctx); err != nil {
		t.Fatalf("ResetVotes() error = %v", err)
	}
	if got := mustVotes(t, l, "Alice"); got != 0 {
		t.Errorf("Alice after reset = %d, want 0", got)
	}

	// Voters may vote again, candidates are still registered
	if err := l.VoteForCandidate(ctx, "Carol", "v1", "Vote for Carol"); err != nil {
		t.Errorf("vote after reset error = %v", err)
	}
}

func TestReRegisterReplacesHash(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	if err := l.SetCandidates(ctx, []string{"Alice"}, []string{"new token"}); err != nil {
		t.Fatal(err)
	}

	if err := l.VoteForCandidate(ctx, "Alice", "v1", "Vote for Alice"); !errors.Is(err, contract.ErrSignatureMismatch) {
		t.Errorf("old token error = %v, want ErrSignatureMismatch", err)
	}
	if err := l.VoteForCandidate(ctx, "Alice", "v1", "new token"); err != nil {
		t.Errorf("new token error = %v", err)
	}
}

func TestConcurrentVotesSameVoter(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	var successCount atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := l.VoteForCandidate(ctx, "Alice", "racer", "Vote for Alice"); err == nil {
				successCount.Add(1)
			}
		}()
	}
	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("Expected exactly 1 successful vote, got %d", successCount.Load())
	}
	if got := mustVotes(t, l, "Alice"); got != 1 {
		t.Errorf("Alice = %d, want 1", got)
	}
}

func TestConcurrentVotesDistinctVoters(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	numVoters := 10
	var wg sync.WaitGroup
	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			voter := "voter-" + string(rune('A'+idx))
			if err := l.VoteForCandidate(ctx, "Bob", voter, "Vote for Bob"); err != nil {
				t.Errorf("vote %s error = %v", voter, err)
			}
		}(i)
	}
	wg.Wait()

	if got := mustVotes(t, l, "Bob"); got != uint64(numVoters) {
		t.Errorf("Bob = %d, want %d", got, numVoters)
	}
}

func TestLocalClientWrapsErrors(t *testing.T) {
	l := newTestLedger(t)
	client := contract.NewLocalClient(l)
	ctx := context.Background()

	vote := contract.VoteSubmission{Candidate: "Alice", Voter: "v1", SignedMessage: "Vote for Alice"}
	if err := client.SubmitVote(ctx, vote); err != nil {
		t.Fatalf("SubmitVote() error = %v", err)
	}

	err := client.SubmitVote(ctx, vote)
	if !errors.Is(err, contract.ErrRemoteCall) {
		t.Errorf("expected ErrRemoteCall, got %v", err)
	}
	if !errors.Is(err, contract.ErrAlreadyVoted) {
		t.Errorf("expected ErrAlreadyVoted, got %v", err)
	}

	votes, err := client.TallyFor(ctx, "Alice")
	if err != nil || votes != 1 {
		t.Errorf("TallyFor(Alice) = %d, %v; want 1, nil", votes, err)
	}

	if err := client.ResetTallies(ctx); err != nil {
		t.Fatalf("ResetTallies() error = %v", err)
	}
	if votes, _ := client.TallyFor(ctx, "Alice"); votes != 0 {
		t.Errorf("TallyFor(Alice) after reset = %d, want 0", votes)
	}
}
