// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package contract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/danielhkuo/tally-board/models"
)

// Contract RPC paths, shared with the router.
const (
	PathSetCandidates    = "/contract/set_candidates"
	PathResetVotes       = "/contract/reset_votes"
	PathVoteForCandidate = "/contract/vote_for_candidate"
	PathTotalVotesFor    = "/contract/total_votes_for/"
)

// OwnerKeyHeader carries the owner key for owner-only calls.
const OwnerKeyHeader = "X-Owner-Key"

// HTTPClient talks to a contract served over JSON/HTTP.
type HTTPClient struct {
	baseURL  string
	http     *http.Client
	timeout  time.Duration
	ownerKey string
}

// HTTPOption customises NewHTTPClient.
type HTTPOption func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client. Its Timeout is
// overridden by WithTimeout or the default.
func WithHTTPClient(hc *http.Client) HTTPOption { return func(c *HTTPClient) { c.http = hc } }

// WithTimeout sets the per-request transport timeout. Default: 10s. It
// applies to a copy of the client, so a shared client is never modified.
func WithTimeout(d time.Duration) HTTPOption {
	return func(c *HTTPClient) { c.timeout = d }
}

// WithOwnerKey sends key on set_candidates and reset_votes.
func WithOwnerKey(key string) HTTPOption { return func(c *HTTPClient) { c.ownerKey = key } }

func NewHTTPClient(baseURL string, opts ...HTTPOption) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		timeout: 10 * time.Second,
	}
	for _, o := range opts {
		o(c)
	}

	hc := *c.http
	hc.Timeout = c.timeout
	c.http = &hc
	return c
}

func (c *HTTPClient) RegisterCandidates(ctx context.Context, names, tokens []string) error {
	body := models.SetCandidatesRequest{CandidateNames: names, CandidateHashes: tokens}
	return remoteError("set_candidates", c.do(ctx, http.MethodPost, PathSetCandidates, body, true, nil))
}

func (c *HTTPClient) ResetTallies(ctx context.Context) error {
	return remoteError("reset_votes", c.do(ctx, http.MethodPost, PathResetVotes, struct{}{}, true, nil))
}

func (c *HTTPClient) SubmitVote(ctx context.Context, vote VoteSubmission) error {
	body := models.VoteForCandidateRequest{
		Candidate:     vote.Candidate,
		Voter:         vote.Voter,
		SignedMessage: vote.SignedMessage,
	}
	return remoteError("vote_for_candidate", c.do(ctx, http.MethodPost, PathVoteForCandidate, body, false, nil))
}

func (c *HTTPClient) TallyFor(ctx context.Context, candidate string) (uint64, error) {
	var resp models.TotalVotesResponse
	err := c.do(ctx, http.MethodGet, PathTotalVotesFor+url.PathEscape(candidate), nil, false, &resp)
	if err != nil {
		return 0, remoteError("total_votes_for", err)
	}
	return resp.Votes, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body interface{}, owner bool, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if owner && c.ownerKey != "" {
		req.Header.Set(OwnerKeyHeader, c.ownerKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var e models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	if cause := ErrorForCode(e.Code); cause != nil {
		return cause
	}
	if e.Message != "" {
		return fmt.Errorf("status %d: %s", resp.StatusCode, e.Message)
	}
	return fmt.Errorf("status %d", resp.StatusCode)
}
