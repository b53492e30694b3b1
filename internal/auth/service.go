// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Credkit Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/samber/oops"
)

// Service orchestrates registration, login, and token-based identification.
// It holds no mutable session state; all persistence is delegated to the
// CredentialStore and all session state lives inside the token itself.
type Service struct {
	store   CredentialStore
	hasher  PasswordHasher
	tokens  TokenIssuer
	logger  *slog.Logger
	metrics *Metrics

	// dummyHash is verified when a username does not resolve, so login
	// latency stays flat whether or not the user exists. Produced by the
	// injected hasher at construction so its work factor always matches
	// stored hashes. Not a real credential; even a matching password still
	// fails the login because the identity does not exist.
	dummyHash string
}

// NewService creates a Service. All dependencies are required.
func NewService(store CredentialStore, hasher PasswordHasher, tokens TokenIssuer) (*Service, error) {
	return NewServiceWithLogger(store, hasher, tokens, slog.Default())
}

// NewServiceWithLogger creates a Service with an explicit logger. The logger
// never receives plaintext passwords, password hashes, or the signing secret.
func NewServiceWithLogger(store CredentialStore, hasher PasswordHasher, tokens TokenIssuer, logger *slog.Logger) (*Service, error) {
	if store == nil {
		return nil, oops.Code("AUTH_MISSING_DEPENDENCY").Errorf("credential store is required")
	}
	if hasher == nil {
		return nil, oops.Code("AUTH_MISSING_DEPENDENCY").Errorf("password hasher is required")
	}
	if tokens == nil {
		return nil, oops.Code("AUTH_MISSING_DEPENDENCY").Errorf("token issuer is required")
	}
	if logger == nil {
		return nil, oops.Code("AUTH_MISSING_DEPENDENCY").Errorf("logger is required")
	}

	dummyHash, err := hasher.Hash("credkit-dummy-password")
	if err != nil {
		return nil, oops.Code("AUTH_INIT_FAILED").
			With("operation", "hash dummy password").
			Wrap(err)
	}

	return &Service{
		store:     store,
		hasher:    hasher,
		tokens:    tokens,
		logger:    logger,
		dummyHash: dummyHash,
	}, nil
}

// WithMetrics attaches Prometheus counters for operation outcomes and
// returns the service for chaining.
func (s *Service) WithMetrics(m *Metrics) *Service {
	s.metrics = m
	return s
}

// Register creates a new identity and returns a fresh token plus the public
// identity. A failed registration leaves no partial identity behind.
func (s *Service) Register(ctx context.Context, username, password string) (string, *PublicIdentity, error) {
	if reasons := ValidateCredentials(username, password); len(reasons) > 0 {
		s.metrics.recordRegister("validation_failed")
		return "", nil, oops.Code(CodeValidationFailed).
			With("reasons", reasons).
			Errorf("credential policy violated")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.metrics.recordRegister("error")
		return "", nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "hash password").
			Wrap(err)
	}

	identity, err := s.store.Insert(ctx, username, hash)
	if err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			s.metrics.recordRegister("username_taken")
			return "", nil, oops.Code(CodeUsernameTaken).
				With("username", username).
				Errorf("username already taken")
		}
		s.metrics.recordRegister("error")
		return "", nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "insert identity").
			Wrap(err)
	}

	token, err := s.tokens.Issue(identity.ID, identity.Username)
	if err != nil {
		s.metrics.recordRegister("error")
		return "", nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "issue token").
			Wrap(err)
	}

	s.metrics.recordRegister("ok")
	s.logger.InfoContext(ctx, "identity registered",
		"identity_id", identity.ID.String(),
		"username", identity.Username,
	)
	return token, identity.Public(), nil
}

// Login verifies credentials and issues a fresh token. Unknown usernames and
// wrong passwords produce the same error code so callers cannot enumerate
// registered usernames.
func (s *Service) Login(ctx context.Context, username, password string) (string, *PublicIdentity, error) {
	identity, lookupErr := s.store.FindByUsername(ctx, username)

	// Always verify against some hash so response time does not depend on
	// whether the username resolved.
	targetHash := s.dummyHash
	exists := false
	if lookupErr == nil {
		targetHash = identity.PasswordHash
		exists = true
	} else if !errors.Is(lookupErr, ErrNotFound) {
		s.metrics.recordLogin("error")
		return "", nil, oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "find identity by username").
			Wrap(lookupErr)
	}

	valid, verifyErr := s.hasher.Verify(password, targetHash)
	if verifyErr != nil && exists {
		if errors.Is(verifyErr, ErrCorruptHash) {
			s.metrics.recordLogin("error")
			return "", nil, oops.Code(CodeCorruptHash).
				With("identity_id", identity.ID.String()).
				Wrap(verifyErr)
		}
		s.metrics.recordLogin("error")
		return "", nil, oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "verify password").
			Wrap(verifyErr)
	}

	if !exists || !valid {
		s.metrics.recordLogin("invalid_credentials")
		s.logger.DebugContext(ctx, "login rejected", "username", username)
		return "", nil, oops.Code(CodeInvalidCredentials).Errorf("invalid username or password")
	}

	token, err := s.tokens.Issue(identity.ID, identity.Username)
	if err != nil {
		s.metrics.recordLogin("error")
		return "", nil, oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "issue token").
			Wrap(err)
	}

	s.metrics.recordLogin("ok")
	s.logger.InfoContext(ctx, "login succeeded",
		"identity_id", identity.ID.String(),
		"username", identity.Username,
	)
	return token, identity.Public(), nil
}

// Identify resolves a token back to its public identity. Expired, tampered,
// and malformed tokens, as well as tokens whose identity no longer resolves,
// all collapse to the same unauthenticated code.
func (s *Service) Identify(ctx context.Context, token string) (*PublicIdentity, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		s.metrics.recordIdentify("unauthenticated")
		return nil, oops.Code(CodeUnauthenticated).Wrap(err)
	}

	identity, err := s.store.FindByID(ctx, claims.IdentityID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.metrics.recordIdentify("unauthenticated")
			return nil, oops.Code(CodeUnauthenticated).
				With("identity_id", claims.IdentityID.String()).
				Errorf("identity no longer exists")
		}
		s.metrics.recordIdentify("error")
		return nil, oops.Code("AUTH_IDENTIFY_FAILED").
			With("operation", "find identity by id").
			Wrap(err)
	}

	s.metrics.recordIdentify("ok")
	return identity.Public(), nil
}
