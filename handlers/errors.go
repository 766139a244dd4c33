// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/tally-board/catalog"
	"github.com/danielhkuo/tally-board/contract"
	"github.com/danielhkuo/tally-board/middleware"
	"github.com/danielhkuo/tally-board/voting"
)

// statusFor maps a domain error to an HTTP status. Contract-logic errors
// win over ErrRemoteCall so a rejected vote is not reported as a gateway
// failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, voting.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, contract.ErrAlreadyVoted):
		return http.StatusConflict
	case errors.Is(err, contract.ErrSignatureMismatch),
		errors.Is(err, contract.ErrUnknownCandidate),
		errors.Is(err, contract.ErrCandidateListMismatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, contract.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, contract.ErrRemoteCall):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError logs and writes err with its status and contract code.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "request_id", middleware.RequestID(r.Context()), "error", err)
		message = "Internal error"
	}
	middleware.ErrorResponseCode(w, status, contract.Code(err), message)
}
