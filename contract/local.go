// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package contract

import "context"

// Backend is the contract state machine itself (see package ledger).
type Backend interface {
	SetCandidates(ctx context.Context, names, hashes []string) error
	ResetVotes(ctx context.Context) error
	VoteForCandidate(ctx context.Context, candidate, voter, signedMessage string) error
	TotalVotesFor(ctx context.Context, candidate string) (uint64, error)
}

// LocalClient calls a Backend in-process with the same error contract as
// HTTPClient.
type LocalClient struct {
	backend Backend
}

func NewLocalClient(backend Backend) *LocalClient {
	return &LocalClient{backend: backend}
}

func (c *LocalClient) RegisterCandidates(ctx context.Context, names, tokens []string) error {
	return remoteError("set_candidates", c.backend.SetCandidates(ctx, names, tokens))
}

func (c *LocalClient) ResetTallies(ctx context.Context) error {
	return remoteError("reset_votes", c.backend.ResetVotes(ctx))
}

func (c *LocalClient) SubmitVote(ctx context.Context, vote VoteSubmission) error {
	err := c.backend.VoteForCandidate(ctx, vote.Candidate, vote.Voter, vote.SignedMessage)
	return remoteError("vote_for_candidate", err)
}

func (c *LocalClient) TallyFor(ctx context.Context, candidate string) (uint64, error) {
	votes, err := c.backend.TotalVotesFor(ctx, candidate)
	if err != nil {
		return 0, remoteError("total_votes_for", err)
	}
	return votes, nil
}
