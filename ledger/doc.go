// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger implements the voting contract on top of a SQL database.

The dashboard never calls the ledger directly; it goes through a
contract.Client, either contract.LocalClient in the same process or
contract.HTTPClient against the /contract routes served by another process.

# Operations

	SetCandidates(ctx, names, hashes)            // owner
	ResetVotes(ctx)                              // owner
	VoteForCandidate(ctx, candidate, voter, msg)
	TotalVotesFor(ctx, candidate)

# Rules

  - names and hashes must have the same length
  - a voter votes at most once between resets (contract.ErrAlreadyVoted)
  - the signed message must equal the registered hash (contract.ErrSignatureMismatch)
  - voting for an unregistered name fails (contract.ErrUnknownCandidate)
  - an absent count reads as 0

Voter identities are stored as auth.HashVoter digests.
*/
package ledger
