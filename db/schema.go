// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed by the ledger.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The schema sticks to SQL understood by both SQLite and PostgreSQL.
const schema = `
-- Registered candidates and their authorization hashes
CREATE TABLE IF NOT EXISTS candidate (
    name TEXT PRIMARY KEY,
    hash TEXT NOT NULL,
    registered_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Vote counts, cleared by reset
CREATE TABLE IF NOT EXISTS votes_received (
    candidate TEXT PRIMARY KEY,
    votes BIGINT NOT NULL DEFAULT 0 CHECK (votes >= 0),
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- One row per voter that has voted, cleared by reset
CREATE TABLE IF NOT EXISTS voter_status (
    voter_hash TEXT PRIMARY KEY,
    candidate TEXT NOT NULL,
    voted_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_voter_status_candidate ON voter_status(candidate);
`
