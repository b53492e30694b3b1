// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Credkit Contributors

// Package auth implements the credential issuance and verification core.
//
// # Domain Types
//
// Identity represents one registered principal. Identities are created only
// through successful registration (NewIdentity via CredentialStore.Insert)
// and are never mutated or deleted afterwards. PublicIdentity is the only
// identity shape that leaves the core; it never carries the password hash.
//
// # Components
//
//   - PasswordHasher - salted one-way hashing and verification (BcryptHasher)
//   - TokenIssuer - signed, time-bound session tokens (JWTIssuer)
//   - CredentialStore - identity persistence (memory.Store, postgres.IdentityRepository)
//   - Service - orchestrates Register, Login, and Identify
//
// Session tokens are stateless: the signature and embedded expiry are the
// store of truth, so no server-side revocation exists before natural expiry.
// Logout is purely a client-side concern (see the session package).
//
// # Concurrency
//
// Service methods are safe for concurrent use. Password hashing is CPU-bound
// and runs on the calling goroutine, so concurrent logins scale with
// available cores. Duplicate-username races are resolved by the store's
// atomic check-and-insert, never by the service.
package auth
