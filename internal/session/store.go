// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Credkit Contributors

// Package session persists the issued token and identity snapshot on the
// client side and exposes local authenticated state.
//
// The identity snapshot is a cached, possibly stale copy kept for display
// only. Authorization decisions must always re-derive from the token via the
// auth core; a failed Identify is authoritative over anything cached here.
package session

import (
	"encoding/json"
	"time"

	"github.com/samber/oops"

	"github.com/credkit/credkit/internal/auth"
)

// RetentionPeriod bounds how long persisted data is trusted locally. It is
// independent of the token's own validity, so local data can outlive a
// usable token.
const RetentionPeriod = 7 * 24 * time.Hour

// Backend stores the serialized session as a single document, which keeps
// Clear atomic from the caller's perspective. The storage medium (file,
// keychain, test buffer) is the backend's decision.
type Backend interface {
	// Load returns the stored document, or (nil, nil) if absent.
	Load() ([]byte, error)

	// Store atomically replaces the stored document.
	Store(data []byte) error

	// Delete removes the stored document. Deleting an absent document is
	// not an error.
	Delete() error
}

// envelope is the persisted document. The two fixed keys mirror what the
// consuming application reads.
type envelope struct {
	Token    string               `json:"authToken"`
	Identity *auth.PublicIdentity `json:"user,omitempty"`
	SavedAt  time.Time            `json:"savedAt"`
}

// Store is the client-side session store.
type Store struct {
	backend Backend
	now     func() time.Time
}

// NewStore creates a Store over the given backend.
func NewStore(backend Backend) *Store {
	return &Store{backend: backend, now: time.Now}
}

// Save persists the token and identity snapshot together.
func (s *Store) Save(token string, identity *auth.PublicIdentity) error {
	if token == "" {
		return oops.Code("SESSION_EMPTY_TOKEN").Errorf("token cannot be empty")
	}

	data, err := json.Marshal(envelope{
		Token:    token,
		Identity: identity,
		SavedAt:  s.now().UTC(),
	})
	if err != nil {
		return oops.Code("SESSION_ENCODE_FAILED").Wrap(err)
	}

	if err := s.backend.Store(data); err != nil {
		return oops.Code("SESSION_PERSIST_FAILED").Wrap(err)
	}
	return nil
}

// CurrentToken returns the persisted token, or false if absent. Malformed or
// stale data reads as absent, never as an error.
func (s *Store) CurrentToken() (string, bool) {
	env := s.load()
	if env == nil || env.Token == "" {
		return "", false
	}
	return env.Token, true
}

// CurrentIdentity returns the persisted identity snapshot, or false if
// absent.
func (s *Store) CurrentIdentity() (*auth.PublicIdentity, bool) {
	env := s.load()
	if env == nil || env.Identity == nil {
		return nil, false
	}
	return env.Identity, true
}

// IsAuthenticated reports whether a token is present locally. This is an
// optimistic check only; it does not verify the token. Callers needing a
// guarantee must combine it with a successful Identify.
func (s *Store) IsAuthenticated() bool {
	_, ok := s.CurrentToken()
	return ok
}

// Clear deletes the persisted token and identity. The single-document
// backend makes this both-or-neither.
func (s *Store) Clear() error {
	if err := s.backend.Delete(); err != nil {
		return oops.Code("SESSION_CLEAR_FAILED").Wrap(err)
	}
	return nil
}

// load reads and decodes the stored document, treating every failure mode as
// absence. Stale documents are purged best-effort.
func (s *Store) load() *envelope {
	data, err := s.backend.Load()
	if err != nil || len(data) == 0 {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil
	}

	if env.SavedAt.IsZero() || s.now().Sub(env.SavedAt) > RetentionPeriod {
		_ = s.backend.Delete() //nolint:errcheck // best effort purge of stale data
		return nil
	}

	return &env
}
