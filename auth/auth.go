// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
)

var (
	ErrInvalidOwnerKey = errors.New("invalid owner key")
	ErrMissingOwnerKey = errors.New("owner key required")
)

// GenerateOwnerKey creates an HMAC-based owner key for a contract.
// This is deterministic and verifiable
func GenerateOwnerKey(contractID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(contractID))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateOwnerKey checks if the provided owner key is valid for the contract
func ValidateOwnerKey(contractID, ownerKey, salt string) error {
	if ownerKey == "" {
		return ErrMissingOwnerKey
	}
	expected := GenerateOwnerKey(contractID, salt)
	if !hmac.Equal([]byte(ownerKey), []byte(expected)) {
		return ErrInvalidOwnerKey
	}
	return nil
}

// HashVoter creates a one-way hash of a voter identity so the ledger never
// stores raw account names. Includes salt to prevent rainbow table attacks
func HashVoter(voter, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(voter))
	sum := h.Sum(nil)
	// 16 bytes is plenty for one row per voter
	return hex.EncodeToString(sum[:16])
}
