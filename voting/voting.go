// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/tally-board/catalog"
	"github.com/danielhkuo/tally-board/contract"
	"github.com/danielhkuo/tally-board/tally"
)

// ErrValidation is returned before any remote call when a submission
// cannot be built.
var ErrValidation = errors.New("invalid vote submission")

// Refresher asks for a fresh reconciliation. *tally.Synchronizer
// satisfies it.
type Refresher interface {
	Refresh(ctx context.Context) tally.RefreshResult
}

// ResolveLogger guarantees a non-nil logger.
func ResolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// Registry sends the catalog to the contract. The contract does not
// expect it more than once per deployment; callers decide when to call.
type Registry struct {
	Catalog   *catalog.Catalog
	Contract  contract.Client
	Refresher Refresher
	Logger    *slog.Logger
}

// Register sends every name with its token. There is no retry.
func (r Registry) Register(ctx context.Context) error {
	logger := ResolveLogger(r.Logger)
	names := r.Catalog.Names()

	logger.Info("registering candidates", "count", len(names))
	if err := r.Contract.RegisterCandidates(ctx, names, r.Catalog.Tokens()); err != nil {
		logger.Error("candidate registration failed", "error", err)
		return err
	}
	logger.Info("candidates registered", "candidates", names)

	r.Refresher.Refresh(ctx)
	return nil
}

// Receipt describes an accepted vote.
type Receipt struct {
	Submission contract.VoteSubmission
	Refresh    tally.RefreshResult
}

// Pipeline validates, signs and submits votes.
type Pipeline struct {
	Resolver  catalog.Resolver
	Contract  contract.Client
	Refresher Refresher
	Logger    *slog.Logger
}

// Submit casts voter's vote for candidate. candidate must match a catalog
// name exactly; otherwise ErrValidation is returned and the contract is
// not contacted. Remote failures are returned as is, without retry and
// without touching the tally.
func (p Pipeline) Submit(ctx context.Context, candidate, voter string) (Receipt, error) {
	logger := ResolveLogger(p.Logger)

	vote, err := p.prepare(candidate, voter)
	if err != nil {
		logger.Warn("vote validation failed", "candidate", candidate, "error", err)
		return Receipt{}, err
	}

	if err := p.Contract.SubmitVote(ctx, vote); err != nil {
		logger.Error("vote submission failed", "candidate", candidate, "error", err)
		return Receipt{}, err
	}
	logger.Info("vote submitted", "candidate", candidate)

	return Receipt{Submission: vote, Refresh: p.Refresher.Refresh(ctx)}, nil
}

func (p Pipeline) prepare(candidate, voter string) (contract.VoteSubmission, error) {
	token, err := p.Resolver.Resolve(candidate)
	if err != nil {
		return contract.VoteSubmission{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if voter == "" {
		return contract.VoteSubmission{}, fmt.Errorf("%w: voter identity required", ErrValidation)
	}
	return contract.VoteSubmission{
		Candidate:     candidate,
		Voter:         voter,
		SignedMessage: token,
	}, nil
}

// ResetWorkflow clears every remote tally.
type ResetWorkflow struct {
	Contract  contract.Client
	Refresher Refresher
	Logger    *slog.Logger
}

// Reset clears the remote tallies and refreshes on success only.
func (w ResetWorkflow) Reset(ctx context.Context) error {
	logger := ResolveLogger(w.Logger)

	if err := w.Contract.ResetTallies(ctx); err != nil {
		logger.Error("reset failed", "error", err)
		return err
	}
	logger.Info("tallies reset")

	w.Refresher.Refresh(ctx)
	return nil
}
