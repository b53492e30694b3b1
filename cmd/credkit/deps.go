// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Credkit Contributors

package main

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/credkit/credkit/internal/auth"
	"github.com/credkit/credkit/internal/auth/postgres"
	"github.com/credkit/credkit/internal/config"
	"github.com/credkit/credkit/internal/logging"
	"github.com/credkit/credkit/internal/session"
	"github.com/credkit/credkit/internal/store"
)

// setup loads configuration and configures the default logger.
func setup(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configFile, cmd.Root().PersistentFlags())
	if err != nil {
		return nil, err
	}
	logging.SetDefault(logging.Options{
		Service: "credkit",
		Version: version,
		Format:  cfg.Log.Format,
	})
	return cfg, nil
}

// core bundles the auth service with the connection pool behind it.
type core struct {
	svc  *auth.Service
	pool *pgxpool.Pool
}

// Close releases the connection pool.
func (c *core) Close() {
	if c.pool != nil {
		c.pool.Close()
	}
}

// buildCore connects the credential store and assembles the auth service.
func buildCore(ctx context.Context, cfg *config.Config) (*core, error) {
	if cfg.Auth.Secret == "" {
		return nil, oops.Code("CONFIG_INVALID").
			With("key", config.KeySecret).
			Errorf("token signing secret is required")
	}
	if cfg.Database.URL == "" {
		return nil, oops.Code("CONFIG_INVALID").
			With("key", config.KeyDatabaseURL).
			Errorf("database url is required")
	}

	hasher, err := auth.NewBcryptHasherWithCost(cfg.Auth.BcryptCost)
	if err != nil {
		return nil, err
	}
	issuer, err := auth.NewJWTIssuer([]byte(cfg.Auth.Secret), cfg.Auth.TokenTTL)
	if err != nil {
		return nil, err
	}

	pool, err := store.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	svc, err := auth.NewServiceWithLogger(postgres.NewIdentityRepository(pool), hasher, issuer, slog.Default())
	if err != nil {
		pool.Close()
		return nil, err
	}

	return &core{svc: svc, pool: pool}, nil
}

// sessionStore opens the local client session store.
func sessionStore(cfg *config.Config) *session.Store {
	return session.NewStore(session.NewFileBackend(cfg.Session.Path))
}
