// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package contract

import (
	"context"
	"errors"
	"fmt"
)

// ErrRemoteCall marks every failure returned by a Client.
var ErrRemoteCall = errors.New("remote contract call failed")

// Contract-logic rejections. They are joined with ErrRemoteCall when a
// Client knows why the contract refused a call.
var (
	ErrAlreadyVoted          = errors.New("voter already voted")
	ErrSignatureMismatch     = errors.New("signed message does not match candidate")
	ErrUnknownCandidate      = errors.New("candidate is not registered")
	ErrCandidateListMismatch = errors.New("candidate names and hashes differ in length")
	ErrUnauthorized          = errors.New("owner key rejected")
)

// Error codes carried in models.ErrorResponse.Code.
const (
	CodeAlreadyVoted          = "already_voted"
	CodeSignatureMismatch     = "signature_mismatch"
	CodeUnknownCandidate      = "unknown_candidate"
	CodeCandidateListMismatch = "candidate_list_mismatch"
	CodeUnauthorized          = "unauthorized"
)

var codes = []struct {
	code string
	err  error
}{
	{CodeAlreadyVoted, ErrAlreadyVoted},
	{CodeSignatureMismatch, ErrSignatureMismatch},
	{CodeUnknownCandidate, ErrUnknownCandidate},
	{CodeCandidateListMismatch, ErrCandidateListMismatch},
	{CodeUnauthorized, ErrUnauthorized},
}

// Code returns the wire code for a contract-logic error, or "".
func Code(err error) string {
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return ""
}

// ErrorForCode is the inverse of Code. Unknown codes return nil.
func ErrorForCode(code string) error {
	for _, c := range codes {
		if c.code == code {
			return c.err
		}
	}
	return nil
}

// VoteSubmission is the input of a single vote. It is built per call and
// never stored by the dashboard.
type VoteSubmission struct {
	Candidate     string
	Voter         string
	SignedMessage string
}

// Client is the remote ledger contract as seen by the dashboard. Every
// returned error satisfies errors.Is(err, ErrRemoteCall).
type Client interface {
	RegisterCandidates(ctx context.Context, names, tokens []string) error
	ResetTallies(ctx context.Context) error
	SubmitVote(ctx context.Context, vote VoteSubmission) error
	TallyFor(ctx context.Context, candidate string) (uint64, error)
}

func remoteError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrRemoteCall) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrRemoteCall, op, err)
}
