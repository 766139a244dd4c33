// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package catalog holds the immutable table of known candidates.

# Building a Catalog

	cat := catalog.Default()                 // Alice, Bob, Carol
	cat, err := catalog.LoadFile("cands.yml") // from YAML

New rejects empty catalogs, empty names and duplicate names. Order is
preserved and drives the order of tally snapshots.

# Resolving Tokens

Each candidate carries a static authorization token that must accompany a
vote submission:

	token, err := cat.Resolve("Alice") // "Vote for Alice"

Resolve fails with ErrNotFound when the name is not an exact match.
*/
package catalog
