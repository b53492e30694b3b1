// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Credkit Contributors

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// DefaultTokenTTL is the validity window for newly issued tokens.
const DefaultTokenTTL = 24 * time.Hour

// Token verification errors.
var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token signature invalid")
	ErrTokenMalformed = errors.New("token malformed")
)

// TokenClaims are the verified claims extracted from a session token.
type TokenClaims struct {
	IdentityID ulid.ULID
	Username   string
	IssuedAt   time.Time
	ExpiresAt  time.Time
}

// TokenIssuer creates and validates signed, time-bound session tokens.
// Issuer and verifier share one process-wide secret.
type TokenIssuer interface {
	// Issue creates a signed token binding the identity until expiry.
	Issue(identityID ulid.ULID, username string) (string, error)

	// Verify checks the signature before trusting any claim, then checks
	// expiry strictly. Failures are ErrTokenExpired, ErrTokenInvalid, or
	// ErrTokenMalformed.
	Verify(token string) (*TokenClaims, error)
}

// sessionClaims is the wire shape of the JWT payload.
type sessionClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// JWTIssuer implements TokenIssuer using HS256-signed JWTs. Tokens are
// stateless: nothing is stored server-side, so a token cannot be revoked
// before its natural expiry.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTIssuer creates a JWTIssuer. The secret is configured once at startup
// and must never be logged. A non-positive ttl selects DefaultTokenTTL.
func NewJWTIssuer(secret []byte, ttl time.Duration) (*JWTIssuer, error) {
	if len(secret) == 0 {
		return nil, oops.Code("TOKEN_SECRET_MISSING").Errorf("signing secret cannot be empty")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTIssuer{secret: secret, ttl: ttl}, nil
}

// Issue creates a token with sub, username, iat, and exp claims.
func (j *JWTIssuer) Issue(identityID ulid.ULID, username string) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identityID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		Username: username,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", oops.Code("TOKEN_SIGN_FAILED").Wrap(err)
	}
	return signed, nil
}

// Verify validates signature and expiry and returns the embedded claims.
func (j *JWTIssuer) Verify(tokenString string) (*TokenClaims, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return j.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenInvalid
		default:
			return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
		}
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	identityID, err := ulid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject claim", ErrTokenMalformed)
	}
	if claims.Username == "" {
		return nil, fmt.Errorf("%w: missing username claim", ErrTokenMalformed)
	}

	out := &TokenClaims{
		IdentityID: identityID,
		Username:   claims.Username,
		ExpiresAt:  claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	return out, nil
}
