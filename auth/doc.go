// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides the small amount of keyed hashing the contract needs.

# Owner Keys

Owner keys use HMAC-SHA256 to create deterministic, verifiable keys:

	ownerKey := auth.GenerateOwnerKey(contractID, salt)
	err := auth.ValidateOwnerKey(contractID, ownerKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same contract ID and salt always produce the same key, so nothing has to
be stored. Owner keys gate set_candidates and reset_votes when
CONTRACT_OWNER_SALT is configured.

# Voter Hashing

The ledger records who has voted by hashed identity only:

	key := auth.HashVoter(accountID, salt)

Returns the first 16 bytes (32 hex chars) of HMAC-SHA256.

Candidate authorization tokens are not handled here: they are static
strings looked up in package catalog.
*/
package auth
