// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Credkit Contributors

// Package memory provides an in-memory CredentialStore for tests and
// single-process use.
package memory

import (
	"context"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/credkit/credkit/internal/auth"
)

// Store implements auth.CredentialStore with a mutex-guarded map. The
// duplicate check and the insert happen under one lock acquisition, so
// concurrent inserts of the same username cannot both succeed.
type Store struct {
	mu         sync.Mutex
	byUsername map[string]*auth.Identity
	byID       map[ulid.ULID]*auth.Identity
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		byUsername: make(map[string]*auth.Identity),
		byID:       make(map[ulid.ULID]*auth.Identity),
	}
}

// Insert creates and stores a new identity. Usernames are matched
// case-sensitively.
func (s *Store) Insert(_ context.Context, username, passwordHash string) (*auth.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byUsername[username]; taken {
		return nil, oops.Code("IDENTITY_DUPLICATE").
			With("username", username).
			Wrap(auth.ErrDuplicateUsername)
	}

	identity, err := auth.NewIdentity(username, passwordHash)
	if err != nil {
		return nil, err
	}

	s.byUsername[identity.Username] = identity
	s.byID[identity.ID] = identity

	return copyIdentity(identity), nil
}

// FindByUsername retrieves an identity by exact username.
func (s *Store) FindByUsername(_ context.Context, username string) (*auth.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	identity, ok := s.byUsername[username]
	if !ok {
		return nil, oops.Code("IDENTITY_NOT_FOUND").
			With("username", username).
			Wrap(auth.ErrNotFound)
	}
	return copyIdentity(identity), nil
}

// FindByID retrieves an identity by ID.
func (s *Store) FindByID(_ context.Context, id ulid.ULID) (*auth.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	identity, ok := s.byID[id]
	if !ok {
		return nil, oops.Code("IDENTITY_NOT_FOUND").
			With("id", id.String()).
			Wrap(auth.ErrNotFound)
	}
	return copyIdentity(identity), nil
}

// copyIdentity returns a copy so callers cannot mutate stored state.
func copyIdentity(in *auth.Identity) *auth.Identity {
	out := *in
	return &out
}

// Compile-time interface check.
var _ auth.CredentialStore = (*Store)(nil)
