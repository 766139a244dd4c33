// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the tally board API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(svc, ledger, cfg)

The backend may be nil when the contract is remote.

# Endpoints

Health:

	GET /health

Catalog:

	GET  /candidates                  - Candidate names and display IDs
	GET  /candidates/{name}/signature - Authorization token for a name
	POST /candidates/init             - Register the catalog with the contract

Tally:

	GET  /tally               - Current snapshot and version
	GET  /tally/watch?since=N - Long-poll for the next version
	POST /tally/refresh       - Reconcile with the contract now
	GET  /tally/stats         - Refresh counters

Voting:

	POST /votes - Submit a vote
	POST /reset - Clear all tallies

Contract RPC (only with cfg.ServeContract):

	POST /contract/set_candidates
	POST /contract/reset_votes
	POST /contract/vote_for_candidate
	GET  /contract/total_votes_for/{candidate}
*/
package router
