// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the tally board server.

The tally board is a live dashboard over a single-election voting
contract. It keeps a local snapshot of each candidate's remote vote count,
submits signed votes, and resets the election. The contract is either a
SQL-backed ledger inside this process or a remote deployment of the same
server reached over HTTP.

# Starting the Server

Hosting the ledger (SQLite by default):

	VOTER_SALT=... go run .

Against a remote contract:

	CONTRACT_URL=http://contract:3318 CONTRACT_OWNER_SALT=... go run .

# Configuration

Required settings:

  - VOTER_SALT (-voter-salt): voter hash salt, when hosting the ledger

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_URL / DATABASE_TYPE (-d / -t): ledger storage
  - CATALOG_FILE (-catalog): YAML candidate list
  - REFRESH_INTERVAL (-refresh-interval): background refresh

A .env file is read when present. See package cliparse for every flag.

# Architecture

  - catalog: candidate names, display IDs and authorization tokens
  - tally: snapshot, change signal and the refresh synchronizer
  - voting: registration, vote submission and reset workflows
  - contract: the contract client (in-process or HTTP)
  - ledger: the contract state machine on SQL
  - handlers / router / middleware: the HTTP surface
  - db: connection and schema
  - auth: owner keys and voter hashing
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
