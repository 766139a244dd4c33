// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/tally-board/cliparse"
	"github.com/danielhkuo/tally-board/contract"
	"github.com/danielhkuo/tally-board/handlers"
	"github.com/danielhkuo/tally-board/middleware"
	"github.com/danielhkuo/tally-board/voting"
)

// NewRouter wires the dashboard routes, and the contract routes when
// cfg.ServeContract is set and a backend is given.
func NewRouter(svc *voting.Service, backend contract.Backend, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	dashboard := handlers.NewDashboardHandler(svc, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Catalog
	mux.HandleFunc("GET /candidates", middleware.WithLogging(dashboard.ListCandidates))
	mux.HandleFunc("GET /candidates/{name}/signature", middleware.WithLogging(dashboard.GetSignature))
	mux.HandleFunc("POST /candidates/init", middleware.WithLogging(dashboard.InitCandidates))

	// Tally
	mux.HandleFunc("GET /tally", middleware.WithLogging(dashboard.GetTally))
	mux.HandleFunc("GET /tally/watch", middleware.WithLogging(dashboard.WatchTally))
	mux.HandleFunc("POST /tally/refresh", middleware.WithLogging(dashboard.RefreshTally))
	mux.HandleFunc("GET /tally/stats", middleware.WithLogging(dashboard.GetStats))

	// Voting
	mux.HandleFunc("POST /votes", middleware.WithLogging(dashboard.SubmitVote))
	mux.HandleFunc("POST /reset", middleware.WithLogging(dashboard.Reset))

	// Contract RPC
	if cfg.ServeContract && backend != nil {
		ctr := handlers.NewContractHandler(backend, cfg)
		mux.HandleFunc("POST "+contract.PathSetCandidates, middleware.WithLogging(ctr.SetCandidates))
		mux.HandleFunc("POST "+contract.PathResetVotes, middleware.WithLogging(ctr.ResetVotes))
		mux.HandleFunc("POST "+contract.PathVoteForCandidate, middleware.WithLogging(ctr.VoteForCandidate))
		mux.HandleFunc("GET "+contract.PathTotalVotesFor+"{candidate}", middleware.WithLogging(ctr.TotalVotesFor))
	}

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("tally-board API v1"))
	})

	return mux
}
