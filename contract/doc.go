// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package contract defines the remote ledger contract the dashboard talks to.

# Client

Client is the four-call surface used by the dashboard:

	RegisterCandidates(ctx, names, tokens)
	ResetTallies(ctx)
	SubmitVote(ctx, VoteSubmission)
	TallyFor(ctx, candidate)

Two implementations are provided:

  - HTTPClient: JSON over HTTP to a contract served elsewhere
  - LocalClient: an in-process Backend (package ledger)

# Errors

Every error returned by a Client matches ErrRemoteCall:

	if errors.Is(err, contract.ErrRemoteCall) { ... }

When the contract states why it refused a call, the reason is joined as
well, so errors.Is(err, contract.ErrAlreadyVoted) also holds. Over HTTP the
reason travels as models.ErrorResponse.Code (see Code and ErrorForCode).
*/
package contract
