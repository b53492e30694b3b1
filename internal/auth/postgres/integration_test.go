// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Credkit Contributors

//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention
	"github.com/oklog/ulid/v2"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/credkit/credkit/internal/auth"
	"github.com/credkit/credkit/internal/auth/postgres"
	"github.com/credkit/credkit/internal/store"
)

func TestIdentityRepositoryIntegration(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Identity Repository Integration Suite")
}

type testEnv struct {
	ctx       context.Context
	container testcontainers.Container
	pool      *pgxpool.Pool
	repo      *postgres.IdentityRepository
}

var env *testEnv

var _ = BeforeSuite(func() {
	var err error
	env, err = setupTestEnv()
	Expect(err).NotTo(HaveOccurred())
})

var _ = AfterSuite(func() {
	if env != nil {
		env.cleanup()
	}
})

func setupTestEnv() (*testEnv, error) {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("credkit_test"),
		tcpostgres.WithUsername("credkit"),
		tcpostgres.WithPassword("credkit"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	migrator, err := store.NewMigrator(connStr)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}
	if err := migrator.Up(); err != nil {
		_ = migrator.Close()
		_ = container.Terminate(ctx)
		return nil, err
	}
	if err := migrator.Close(); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	pool, err := store.NewPool(ctx, connStr)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &testEnv{
		ctx:       ctx,
		container: container,
		pool:      pool,
		repo:      postgres.NewIdentityRepository(pool),
	}, nil
}

func (e *testEnv) cleanup() {
	if e.pool != nil {
		e.pool.Close()
	}
	if e.container != nil {
		_ = e.container.Terminate(e.ctx)
	}
}

var _ = Describe("IdentityRepository", func() {
	uniqueName := func(prefix string) string {
		return prefix + "-" + ulid.Make().String()
	}

	Describe("Insert", func() {
		It("persists an identity and returns it", func() {
			username := uniqueName("alice")
			identity, err := env.repo.Insert(env.ctx, username, "hash-value")
			Expect(err).NotTo(HaveOccurred())
			Expect(identity.Username).To(Equal(username))
			Expect(identity.ID).NotTo(Equal(ulid.ULID{}))

			found, err := env.repo.FindByID(env.ctx, identity.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Username).To(Equal(username))
			Expect(found.PasswordHash).To(Equal("hash-value"))
		})

		It("rejects duplicate usernames via the unique constraint", func() {
			username := uniqueName("dup")
			_, err := env.repo.Insert(env.ctx, username, "hash-1")
			Expect(err).NotTo(HaveOccurred())

			_, err = env.repo.Insert(env.ctx, username, "hash-2")
			Expect(err).To(MatchError(auth.ErrDuplicateUsername))
		})

		It("survives concurrent inserts of the same username", func() {
			username := uniqueName("race")
			errs := make(chan error, 4)
			for range 4 {
				go func() {
					_, err := env.repo.Insert(env.ctx, username, "hash")
					errs <- err
				}()
			}

			var succeeded int
			for range 4 {
				if err := <-errs; err == nil {
					succeeded++
				} else {
					Expect(err).To(MatchError(auth.ErrDuplicateUsername))
				}
			}
			Expect(succeeded).To(Equal(1))
		})
	})

	Describe("FindByUsername", func() {
		It("matches case-sensitively", func() {
			username := uniqueName("case")
			_, err := env.repo.Insert(env.ctx, username, "hash")
			Expect(err).NotTo(HaveOccurred())

			_, err = env.repo.FindByUsername(env.ctx, username)
			Expect(err).NotTo(HaveOccurred())

			_, err = env.repo.FindByUsername(env.ctx, "CASE-"+username)
			Expect(err).To(MatchError(auth.ErrNotFound))
		})

		It("returns not found for unknown usernames", func() {
			_, err := env.repo.FindByUsername(env.ctx, uniqueName("ghost"))
			Expect(err).To(MatchError(auth.ErrNotFound))
		})
	})

	Describe("FindByID", func() {
		It("returns not found for unknown IDs", func() {
			_, err := env.repo.FindByID(env.ctx, ulid.Make())
			Expect(err).To(MatchError(auth.ErrNotFound))
		})

		It("round-trips the created timestamp", func() {
			identity, err := env.repo.Insert(env.ctx, uniqueName("ts"), "hash")
			Expect(err).NotTo(HaveOccurred())

			found, err := env.repo.FindByID(env.ctx, identity.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.CreatedAt).To(BeTemporally("~", identity.CreatedAt, time.Millisecond))
		})
	})
})
