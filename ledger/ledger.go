// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/tally-board/auth"
	"github.com/danielhkuo/tally-board/contract"
	"github.com/danielhkuo/tally-board/db"
)

// Ledger is the voting contract's state, stored in SQL. It implements
// contract.Backend.
type Ledger struct {
	db        *sql.DB
	voterSalt string
	logger    *slog.Logger
}

func New(conn *sql.DB, voterSalt string, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{db: conn, voterSalt: voterSalt, logger: logger}
}

// SetCandidates registers names with their authorization hashes. The two
// slices are parallel. Re-registering a name replaces its hash.
func (l *Ledger) SetCandidates(ctx context.Context, names, hashes []string) error {
	if len(names) != len(hashes) {
		return fmt.Errorf("%w: %d names, %d hashes", contract.ErrCandidateListMismatch, len(names), len(hashes))
	}

	err := db.RunTx(ctx, l.db, func(tx *sql.Tx) error {
		now := time.Now()
		for i, name := range names {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO candidate (name, hash, registered_at)
				VALUES ($1, $2, $3)
				ON CONFLICT (name) DO UPDATE SET hash = excluded.hash, registered_at = excluded.registered_at
			`, name, hashes[i], now)
			if err != nil {
				return fmt.Errorf("failed to register candidate %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	l.logger.Info("candidates registered", "count", len(names))
	return nil
}

// TotalVotesFor returns the count for candidate, 0 when none recorded.
func (l *Ledger) TotalVotesFor(ctx context.Context, candidate string) (uint64, error) {
	var votes int64
	err := l.db.QueryRowContext(ctx, `
		SELECT votes FROM votes_received WHERE candidate = $1
	`, candidate).Scan(&votes)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query votes: %w", err)
	}
	return uint64(votes), nil
}

// ResetVotes clears every count and every voter's status. Registered
// candidates are kept.
func (l *Ledger) ResetVotes(ctx context.Context) error {
	err := db.RunTx(ctx, l.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM votes_received`); err != nil {
			return fmt.Errorf("failed to clear votes: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM voter_status`); err != nil {
			return fmt.Errorf("failed to clear voter status: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	l.logger.Info("votes reset")
	return nil
}

// VoteForCandidate records one vote. A voter may vote once until the next
// reset, and signedMessage must equal the candidate's registered hash.
func (l *Ledger) VoteForCandidate(ctx context.Context, candidate, voter, signedMessage string) error {
	voterHash := auth.HashVoter(voter, l.voterSalt)

	err := db.RunTx(ctx, l.db, func(tx *sql.Tx) error {
		// Voter status is checked before the candidate and signature.
		var voted int
		err := tx.QueryRowContext(ctx, `
			SELECT 1 FROM voter_status WHERE voter_hash = $1
		`, voterHash).Scan(&voted)
		if err == nil {
			return contract.ErrAlreadyVoted
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to query voter status: %w", err)
		}

		var hash string
		err = tx.QueryRowContext(ctx, `
			SELECT hash FROM candidate WHERE name = $1
		`, candidate).Scan(&hash)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", contract.ErrUnknownCandidate, candidate)
		}
		if err != nil {
			return fmt.Errorf("failed to query candidate: %w", err)
		}

		if hash != signedMessage {
			return contract.ErrSignatureMismatch
		}

		// The primary key on voter_hash settles concurrent double votes
		// that both passed the status check.
		now := time.Now()
		res, err := tx.ExecContext(ctx, `
			INSERT INTO voter_status (voter_hash, candidate, voted_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (voter_hash) DO NOTHING
		`, voterHash, candidate, now)
		if err != nil {
			return fmt.Errorf("failed to record voter: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to record voter: %w", err)
		}
		if n == 0 {
			return contract.ErrAlreadyVoted
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO votes_received (candidate, votes, updated_at)
			VALUES ($1, 1, $2)
			ON CONFLICT (candidate) DO UPDATE SET votes = votes_received.votes + 1, updated_at = excluded.updated_at
		`, candidate, now)
		if err != nil {
			return fmt.Errorf("failed to count vote: %w", err)
		}
		return nil
	})
	if err != nil {
		l.logger.Warn("vote rejected", "candidate", candidate, "error", err)
		return err
	}

	l.logger.Info("vote recorded", "candidate", candidate)
	return nil
}

var _ contract.Backend = (*Ledger)(nil)
