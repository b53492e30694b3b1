// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Credkit Contributors

package session

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credkit/credkit/internal/auth"
)

// memBackend is an in-memory Backend for exercising Store logic.
type memBackend struct {
	data    []byte
	loadErr error
	deleted int
}

func (b *memBackend) Load() ([]byte, error) {
	if b.loadErr != nil {
		return nil, b.loadErr
	}
	return b.data, nil
}

func (b *memBackend) Store(data []byte) error {
	b.data = data
	return nil
}

func (b *memBackend) Delete() error {
	b.data = nil
	b.deleted++
	return nil
}

func testIdentity() *auth.PublicIdentity {
	return &auth.PublicIdentity{
		ID:        ulid.Make(),
		Username:  "alice",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestStore_SaveAndRead(t *testing.T) {
	backend := &memBackend{}
	store := NewStore(backend)
	identity := testIdentity()

	require.NoError(t, store.Save("token-123", identity))

	token, ok := store.CurrentToken()
	require.True(t, ok)
	assert.Equal(t, "token-123", token)

	got, ok := store.CurrentIdentity()
	require.True(t, ok)
	assert.Equal(t, identity.ID, got.ID)
	assert.Equal(t, "alice", got.Username)

	assert.True(t, store.IsAuthenticated())
}

func TestStore_SaveRejectsEmptyToken(t *testing.T) {
	store := NewStore(&memBackend{})
	require.Error(t, store.Save("", testIdentity()))
}

func TestStore_SaveWithoutIdentity(t *testing.T) {
	store := NewStore(&memBackend{})
	require.NoError(t, store.Save("token-123", nil))

	_, ok := store.CurrentToken()
	assert.True(t, ok)
	_, ok = store.CurrentIdentity()
	assert.False(t, ok)
}

func TestStore_EmptyReadsAsAbsent(t *testing.T) {
	store := NewStore(&memBackend{})

	_, ok := store.CurrentToken()
	assert.False(t, ok)
	_, ok = store.CurrentIdentity()
	assert.False(t, ok)
	assert.False(t, store.IsAuthenticated())
}

func TestStore_MalformedReadsAsAbsent(t *testing.T) {
	store := NewStore(&memBackend{data: []byte("{not json")})

	_, ok := store.CurrentToken()
	assert.False(t, ok)
}

func TestStore_LoadErrorReadsAsAbsent(t *testing.T) {
	store := NewStore(&memBackend{loadErr: assert.AnError})

	_, ok := store.CurrentToken()
	assert.False(t, ok)
}

func TestStore_StaleDataPurged(t *testing.T) {
	backend := &memBackend{}
	store := NewStore(backend)
	require.NoError(t, store.Save("token-123", testIdentity()))

	// Jump past the retention window.
	store.now = func() time.Time {
		return time.Now().Add(RetentionPeriod + time.Hour)
	}

	_, ok := store.CurrentToken()
	assert.False(t, ok)
	assert.Positive(t, backend.deleted)
	assert.Nil(t, backend.data)
}

func TestStore_FreshDataInsideRetention(t *testing.T) {
	backend := &memBackend{}
	store := NewStore(backend)
	require.NoError(t, store.Save("token-123", testIdentity()))

	store.now = func() time.Time {
		return time.Now().Add(RetentionPeriod - time.Hour)
	}

	_, ok := store.CurrentToken()
	assert.True(t, ok)
	assert.Zero(t, backend.deleted)
}

func TestStore_Clear(t *testing.T) {
	backend := &memBackend{}
	store := NewStore(backend)
	require.NoError(t, store.Save("token-123", testIdentity()))

	require.NoError(t, store.Clear())

	// Token and identity are both gone; no partial state remains.
	_, ok := store.CurrentToken()
	assert.False(t, ok)
	_, ok = store.CurrentIdentity()
	assert.False(t, ok)
}

func TestStore_PersistedShape(t *testing.T) {
	backend := &memBackend{}
	store := NewStore(backend)
	require.NoError(t, store.Save("token-123", testIdentity()))

	assert.Contains(t, string(backend.data), `"authToken":"token-123"`)
	assert.Contains(t, string(backend.data), `"user":{`)
	assert.Contains(t, string(backend.data), `"savedAt":`)
}
