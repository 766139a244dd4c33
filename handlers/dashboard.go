// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/tally-board/cliparse"
	"github.com/danielhkuo/tally-board/middleware"
	"github.com/danielhkuo/tally-board/models"
	"github.com/danielhkuo/tally-board/tally"
	"github.com/danielhkuo/tally-board/voting"
)

// VoterHeader may carry the voter identity instead of the request body.
const VoterHeader = "X-Voter-ID"

type DashboardHandler struct {
	svc *voting.Service
	cfg cliparse.Config
}

func NewDashboardHandler(svc *voting.Service, cfg cliparse.Config) *DashboardHandler {
	return &DashboardHandler{svc: svc, cfg: cfg}
}

// ListCandidates handles GET /candidates
func (h *DashboardHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	candidates := h.svc.Catalog.Candidates()
	views := make([]models.CandidateView, 0, len(candidates))
	for _, c := range candidates {
		views = append(views, models.CandidateView{Name: c.Name, DisplayID: c.DisplayID})
	}
	middleware.JSONResponse(w, http.StatusOK, views)
}

// GetSignature handles GET /candidates/{name}/signature
func (h *DashboardHandler) GetSignature(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	token, err := h.svc.Catalog.Resolve(name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SignatureResponse{
		Candidate: name,
		Signature: token,
	})
}

// InitCandidates handles POST /candidates/init
func (h *DashboardHandler) InitCandidates(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Register(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.AckResponse{Message: "Candidates registered"})
}

// GetTally handles GET /tally
func (h *DashboardHandler) GetTally(w http.ResponseWriter, r *http.Request) {
	snap, version := h.svc.Sync.Current()
	middleware.JSONResponse(w, http.StatusOK, h.tallyResponse(snap, version))
}

// WatchTally handles GET /tally/watch?since=N
// Blocks until the version differs from since, then returns the tally.
// Responds 304 when the watch timeout elapses first.
func (h *DashboardHandler) WatchTally(w http.ResponseWriter, r *http.Request) {
	var since uint64
	if s := r.URL.Query().Get("since"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "since must be a non-negative integer")
			return
		}
		since = v
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.WatchTimeout)
	defer cancel()

	snap, version, err := h.svc.Sync.WaitForChange(ctx, since)
	if errors.Is(err, context.DeadlineExceeded) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	if err != nil {
		// client went away
		return
	}

	middleware.JSONResponse(w, http.StatusOK, h.tallyResponse(snap, version))
}

// RefreshTally handles POST /tally/refresh
func (h *DashboardHandler) RefreshTally(w http.ResponseWriter, r *http.Request) {
	result := h.svc.Refresh(r.Context())
	middleware.JSONResponse(w, http.StatusOK, refreshResponse(result))
}

// GetStats handles GET /tally/stats
func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats := h.svc.Sync.Stats()
	middleware.JSONResponse(w, http.StatusOK, models.StatsResponse{
		Refreshes:           stats.Refreshes,
		Changes:             stats.Changes,
		ReadFailures:        stats.ReadFailures,
		ConsecutiveFailures: stats.ConsecutiveFailures,
	})
}

// SubmitVote handles POST /votes
// An empty body is allowed; the candidate check then rejects the request.
func (h *DashboardHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Voter == "" {
		req.Voter = r.Header.Get(VoterHeader)
	}

	receipt, err := h.svc.Submit(r.Context(), req.Candidate, req.Voter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SubmitVoteResponse{
		Candidate:     receipt.Submission.Candidate,
		Voter:         receipt.Submission.Voter,
		SignedMessage: receipt.Submission.SignedMessage,
		Refresh:       refreshResponse(receipt.Refresh),
	})
}

// Reset handles POST /reset
func (h *DashboardHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Reset(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.AckResponse{Message: "Votes reset"})
}

func (h *DashboardHandler) tallyResponse(snap tally.Snapshot, version uint64) models.TallyResponse {
	entries := make([]models.TallyEntry, 0, snap.Len())
	for _, e := range snap.Entries() {
		entry := models.TallyEntry{Candidate: e.Candidate, Votes: e.Votes}
		if c, err := h.svc.Catalog.Lookup(e.Candidate); err == nil {
			entry.DisplayID = c.DisplayID
		}
		entries = append(entries, entry)
	}

	resp := models.TallyResponse{Version: version, Entries: entries}
	if last := h.svc.Sync.Stats().LastRefresh; !last.IsZero() {
		resp.RefreshedAt = &last
		resp.RefreshedAgo = humanize.Time(last)
	}
	return resp
}

func refreshResponse(result tally.RefreshResult) models.RefreshResponse {
	return models.RefreshResponse{
		Changed: result.Changed,
		Version: result.Version,
		Failed:  result.Failed,
	}
}
