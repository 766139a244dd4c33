// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request and response types for the HTTP API.

# Contract RPC Types

Bodies exchanged between contract.HTTPClient and the contract routes:

  - SetCandidatesRequest: candidate_names, candidate_hashes
  - VoteForCandidateRequest: candidate, voter, signed_message
  - TotalVotesResponse: candidate, votes
  - AckResponse: message

# Dashboard Types

  - SubmitVoteRequest: candidate, voter
  - SubmitVoteResponse: the submission plus the refresh it triggered
  - CandidateView: name, display_id (tokens are never listed)
  - SignatureResponse: candidate, signature
  - TallyResponse: version, entries, refreshed_at, refreshed_ago
  - RefreshResponse: changed, version, failed
  - StatsResponse: synchronizer counters

# Errors

Every error is returned as ErrorResponse. Code carries a machine readable
reason (for example "already_voted") that contract.HTTPClient maps back to
a sentinel error.
*/
package models
