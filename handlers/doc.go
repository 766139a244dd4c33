// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the tally board API.

# Handler Types

  - DashboardHandler: catalog, tally and voting operations over a voting.Service
  - ContractHandler: the contract RPC surface over a contract.Backend (the ledger)

	dash := handlers.NewDashboardHandler(svc, cfg)
	ctr := handlers.NewContractHandler(ledger, cfg)

# Dashboard

	GET  /candidates                  → ListCandidates
	GET  /candidates/{name}/signature → GetSignature
	POST /candidates/init             → InitCandidates
	GET  /tally                       → GetTally
	GET  /tally/watch?since=N         → WatchTally (200, or 304 on timeout)
	POST /tally/refresh               → RefreshTally
	GET  /tally/stats                 → GetStats
	POST /votes                       → SubmitVote
	POST /reset                       → Reset

The voter for POST /votes comes from the body or the X-Voter-ID header.

# Contract

	POST /contract/set_candidates             → SetCandidates (owner)
	POST /contract/reset_votes                → ResetVotes (owner)
	POST /contract/vote_for_candidate         → VoteForCandidate
	GET  /contract/total_votes_for/{candidate} → TotalVotesFor

Owner operations require X-Owner-Key when CONTRACT_OWNER_SALT is set.

# Errors

Errors are written as models.ErrorResponse. Contract rejections carry a
code (already_voted, signature_mismatch, ...) that contract.HTTPClient
turns back into the matching error value.

	validation          400
	not found           404
	already voted       409
	contract rejection  422
	owner key           401
	remote failure      502
*/
package handlers
