// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the ledger database and creates its schema.

# Opening

	conn, err := db.Open(db.TypeSQLite, "file:tally.db")
	conn, err := db.Open(db.TypePostgres, "postgres://...")

Open registers both drivers (modernc.org/sqlite and lib/pq), pings the
connection and runs CreateSchema. SQLite connections get WAL, a busy
timeout and a single open connection.

# Tables

  - candidate: registered names and their authorization hashes
  - votes_received: per-candidate counts
  - voter_status: hashed identities of voters who already voted

reset_votes clears votes_received and voter_status; candidate survives.

# Transactions

	err := db.RunTx(ctx, conn, func(tx *sql.Tx) error { ... })
*/
package db
