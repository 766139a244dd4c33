// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p                 Server port (default 3318)
	-d                 Database URL (default file:tally.db for sqlite)
	-t                 Database type: sqlite or postgres
	-contract-url      Remote contract base URL; empty hosts the ledger in-process
	-serve-contract    Expose /contract/* routes (default: on when hosting)
	-contract-id       Contract account ID used for the owner key
	-catalog           YAML candidate catalog
	-voter-salt        Voter hash salt
	-owner-salt        Contract owner key salt
	-refresh-interval  Background refresh interval (0 = off)
	-watch-timeout     Long-poll timeout (default 25s)
	-fetch-concurrency Max concurrent tally reads (0 = unbounded)
	-contract-timeout  Remote contract call timeout (default 10s)
	-env               dotenv file (default .env, missing file ignored)

# Environment Variables

Flags fall back to environment variables:

	PORT                → -p
	DATABASE_URL        → -d
	DATABASE_TYPE       → -t
	CONTRACT_URL        → -contract-url
	SERVE_CONTRACT      → -serve-contract
	CONTRACT_ID         → -contract-id
	CATALOG_FILE        → -catalog
	VOTER_SALT          → -voter-salt
	CONTRACT_OWNER_SALT → -owner-salt
	REFRESH_INTERVAL    → -refresh-interval
	WATCH_TIMEOUT       → -watch-timeout
	FETCH_CONCURRENCY   → -fetch-concurrency
	CONTRACT_TIMEOUT    → -contract-timeout

CLI flags take precedence over environment variables, and the process
environment takes precedence over the dotenv file.

# Validation

  - VOTER_SALT must be provided when the ledger is hosted in-process
  - DATABASE_URL must be provided for postgres
  - -serve-contract cannot be combined with CONTRACT_URL
*/
package cliparse
