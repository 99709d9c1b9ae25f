// Copyright (c) 2026 CareFinder. All rights reserved.
// Author: dev@carefinder.au

package sec

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// NewOpaqueToken generates a cryptographically random token suitable for
// single-use magic links. The raw value is mailed to the user; only its
// digest is ever stored.
func NewOpaqueToken() (string, error) {
	buffer := make([]byte, 32)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("sec: failed to generate token: %w", err)
	}
	return hex.EncodeToString(buffer), nil
}

// HashToken derives the deterministic storage digest for an opaque token.
//
// BLAKE2b is used (rather than bcrypt) because the store must look tokens up
// by digest; the 256-bit input space makes brute force infeasible without a
// per-token salt.
func HashToken(token string) string {
	digest := blake2b.Sum256([]byte(token))
	return hex.EncodeToString(digest[:])
}
