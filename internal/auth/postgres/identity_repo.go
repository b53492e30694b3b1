// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Credkit Contributors

// Package postgres implements auth.CredentialStore on PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/credkit/credkit/internal/auth"
)

// db is the subset of pgxpool.Pool the repository needs. pgxmock satisfies
// it for unit tests.
type db interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// IdentityRepository implements auth.CredentialStore using PostgreSQL.
// Uniqueness is enforced by the identities.username unique constraint, so
// check-and-insert is atomic at the database level.
type IdentityRepository struct {
	db db
}

// NewIdentityRepository creates a new IdentityRepository.
func NewIdentityRepository(db db) *IdentityRepository {
	return &IdentityRepository{db: db}
}

// Insert creates and stores a new identity. A unique-constraint violation is
// reported as auth.ErrDuplicateUsername.
func (r *IdentityRepository) Insert(ctx context.Context, username, passwordHash string) (*auth.Identity, error) {
	identity, err := auth.NewIdentity(username, passwordHash)
	if err != nil {
		return nil, err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO identities (id, username, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`,
		identity.ID.String(),
		identity.Username,
		identity.PasswordHash,
		identity.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, oops.Code("IDENTITY_DUPLICATE").
				With("username", username).
				Wrap(auth.ErrDuplicateUsername)
		}
		return nil, oops.Code("IDENTITY_INSERT_FAILED").
			With("operation", "insert identity").
			With("username", username).
			Wrap(err)
	}

	return identity, nil
}

// FindByUsername retrieves an identity by exact, case-sensitive username.
func (r *IdentityRepository) FindByUsername(ctx context.Context, username string) (*auth.Identity, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, username, password_hash, created_at
		FROM identities
		WHERE username = $1
	`, username)

	identity, err := scanIdentity(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("IDENTITY_NOT_FOUND").
			With("username", username).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("IDENTITY_GET_BY_USERNAME_FAILED").
			With("operation", "get identity by username").
			With("username", username).
			Wrap(err)
	}
	return identity, nil
}

// FindByID retrieves an identity by ID.
func (r *IdentityRepository) FindByID(ctx context.Context, id ulid.ULID) (*auth.Identity, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, username, password_hash, created_at
		FROM identities
		WHERE id = $1
	`, id.String())

	identity, err := scanIdentity(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("IDENTITY_NOT_FOUND").
			With("id", id.String()).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("IDENTITY_GET_BY_ID_FAILED").
			With("operation", "get identity by id").
			With("id", id.String()).
			Wrap(err)
	}
	return identity, nil
}

// scanIdentity scans a single row into an Identity.
// Callers are responsible for handling pgx.ErrNoRows.
func scanIdentity(row pgx.Row) (*auth.Identity, error) {
	var (
		idStr        string
		username     string
		passwordHash string
		createdAt    time.Time
	)

	err := row.Scan(&idStr, &username, &passwordHash, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // callers wrap with context-specific info
		}
		return nil, oops.Code("IDENTITY_SCAN_FAILED").
			With("operation", "scan identity").
			Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("IDENTITY_INVALID_ID").
			With("operation", "parse identity id").
			With("id", idStr).
			Wrap(err)
	}

	return &auth.Identity{
		ID:           id,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    createdAt,
	}, nil
}

// Compile-time interface check.
var _ auth.CredentialStore = (*IdentityRepository)(nil)
