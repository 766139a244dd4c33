// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/tally-board/auth"
	"github.com/danielhkuo/tally-board/cliparse"
	"github.com/danielhkuo/tally-board/contract"
	"github.com/danielhkuo/tally-board/middleware"
	"github.com/danielhkuo/tally-board/models"
)

// ContractHandler exposes a contract.Backend over HTTP for
// contract.HTTPClient.
type ContractHandler struct {
	backend contract.Backend
	cfg     cliparse.Config
}

func NewContractHandler(backend contract.Backend, cfg cliparse.Config) *ContractHandler {
	return &ContractHandler{backend: backend, cfg: cfg}
}

// requireOwner checks X-Owner-Key when an owner salt is configured.
// Without a salt, owner operations are open.
func (h *ContractHandler) requireOwner(w http.ResponseWriter, r *http.Request) bool {
	if h.cfg.OwnerSalt == "" {
		return true
	}
	key := r.Header.Get(contract.OwnerKeyHeader)
	if err := auth.ValidateOwnerKey(h.cfg.ContractID, key, h.cfg.OwnerSalt); err != nil {
		slog.Warn("owner key rejected", "path", r.URL.Path, "error", err)
		middleware.ErrorResponseCode(w, http.StatusUnauthorized, contract.CodeUnauthorized, err.Error())
		return false
	}
	return true
}

// SetCandidates handles POST /contract/set_candidates
func (h *ContractHandler) SetCandidates(w http.ResponseWriter, r *http.Request) {
	if !h.requireOwner(w, r) {
		return
	}

	var req models.SetCandidatesRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.backend.SetCandidates(r.Context(), req.CandidateNames, req.CandidateHashes); err != nil {
		writeError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.AckResponse{Message: "Candidates set"})
}

// ResetVotes handles POST /contract/reset_votes
func (h *ContractHandler) ResetVotes(w http.ResponseWriter, r *http.Request) {
	if !h.requireOwner(w, r) {
		return
	}

	if err := h.backend.ResetVotes(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.AckResponse{Message: "Votes reset"})
}

// VoteForCandidate handles POST /contract/vote_for_candidate
func (h *ContractHandler) VoteForCandidate(w http.ResponseWriter, r *http.Request) {
	var req models.VoteForCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Candidate == "" || req.Voter == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate and voter are required")
		return
	}

	err := h.backend.VoteForCandidate(r.Context(), req.Candidate, req.Voter, req.SignedMessage)
	if err != nil {
		writeError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.AckResponse{Message: "Vote recorded"})
}

// TotalVotesFor handles GET /contract/total_votes_for/{candidate}
func (h *ContractHandler) TotalVotesFor(w http.ResponseWriter, r *http.Request) {
	candidate := r.PathValue("candidate")

	votes, err := h.backend.TotalVotesFor(r.Context(), candidate)
	if err != nil {
		writeError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.TotalVotesResponse{
		Candidate: candidate,
		Votes:     votes,
	})
}
