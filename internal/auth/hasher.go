// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Credkit Contributors

package auth

import (
	"errors"

	"github.com/samber/oops"
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the work factor used for new hashes. Cost 12 keeps a
// single hash in the hundreds of milliseconds on current hardware.
const DefaultBcryptCost = 12

// ErrEmptyPassword is returned when attempting to hash an empty password.
var ErrEmptyPassword = oops.Code("AUTH_EMPTY_PASSWORD").Errorf("password cannot be empty")

// PasswordHasher provides password hashing and verification.
type PasswordHasher interface {
	// Hash produces a salted one-way hash of the password. The salt and cost
	// parameters are embedded in the output, so no separate salt storage is
	// needed.
	Hash(password string) (string, error)

	// Verify checks if the password matches the hash.
	// Returns (true, nil) on match, (false, nil) on mismatch, or an error
	// wrapping ErrCorruptHash if the stored value cannot be parsed.
	Verify(password, hash string) (bool, error)
}

// BcryptHasher implements PasswordHasher using bcrypt. The underlying
// primitive compares in time independent of where a mismatch occurs.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a BcryptHasher at DefaultBcryptCost.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: DefaultBcryptCost}
}

// NewBcryptHasherWithCost creates a BcryptHasher with an explicit cost.
// Costs outside bcrypt's supported range are rejected rather than clamped so
// a misconfigured work factor cannot silently weaken stored hashes.
func NewBcryptHasherWithCost(cost int) (*BcryptHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, oops.Code("AUTH_INVALID_COST").
			With("cost", cost).
			With("min", bcrypt.MinCost).
			With("max", bcrypt.MaxCost).
			Errorf("bcrypt cost out of range")
	}
	return &BcryptHasher{cost: cost}, nil
}

// Hash produces a salted bcrypt hash of the password.
func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	out, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", oops.Code("AUTH_HASH_FAILED").Wrap(err)
	}
	return string(out), nil
}

// Verify checks the password against a stored bcrypt hash.
func (h *BcryptHasher) Verify(password, encodedHash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		// Anything else means the stored value is not a bcrypt hash this
		// component produced: data corruption, not a user error.
		return false, oops.Code(CodeCorruptHash).
			With("parse_error", err.Error()).
			Wrap(ErrCorruptHash)
	}
}
