// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Credkit Contributors

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Credential policy constraints.
const (
	MinUsernameLength = 3
	MinPasswordLength = 8
)

// Identity represents one registered principal. All fields are immutable
// after creation; there is no update or delete path.
type Identity struct {
	ID           ulid.ULID
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// PublicIdentity is the subset of Identity fields safe to return to clients.
// It never includes the password hash.
type PublicIdentity struct {
	ID        ulid.ULID `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewIdentity creates a validated Identity with a freshly assigned ID.
// Direct struct initialization bypasses validation; repository
// implementations should always go through this constructor.
func NewIdentity(username, passwordHash string) (*Identity, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, oops.Code("IDENTITY_INVALID_HASH").Errorf("password hash cannot be empty")
	}
	return &Identity{
		ID:           ulid.Make(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// Public returns the client-safe view of the identity.
func (i *Identity) Public() *PublicIdentity {
	return &PublicIdentity{
		ID:        i.ID,
		Username:  i.Username,
		CreatedAt: i.CreatedAt,
	}
}

// ValidateUsername checks the username policy: at least MinUsernameLength
// characters. Usernames are compared case-sensitively everywhere.
func ValidateUsername(username string) error {
	if len(username) < MinUsernameLength {
		return oops.Code("IDENTITY_INVALID_USERNAME").
			With("min", MinUsernameLength).
			Errorf("username must be at least %d characters", MinUsernameLength)
	}
	return nil
}

// ValidateCredentials applies the registration policy and returns every
// violated rule. An empty slice means the credentials are acceptable.
func ValidateCredentials(username, password string) []string {
	var reasons []string
	if len(username) < MinUsernameLength {
		reasons = append(reasons, fmt.Sprintf("username must be at least %d characters", MinUsernameLength))
	}
	if len(password) < MinPasswordLength {
		reasons = append(reasons, fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}
	return reasons
}

// CredentialStore manages identity persistence.
//
// Insert must be a single atomic check-and-insert: two concurrent inserts of
// the same username must never both succeed, and the loser must observe an
// error wrapping ErrDuplicateUsername.
type CredentialStore interface {
	// Insert creates and stores a new identity for the given username and
	// pre-hashed password.
	Insert(ctx context.Context, username, passwordHash string) (*Identity, error)

	// FindByUsername retrieves an identity by exact, case-sensitive username.
	// Returns an error wrapping ErrNotFound if absent.
	FindByUsername(ctx context.Context, username string) (*Identity, error)

	// FindByID retrieves an identity by ID.
	// Returns an error wrapping ErrNotFound if absent.
	FindByID(ctx context.Context, id ulid.ULID) (*Identity, error)
}
