// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Credkit Contributors

package auth

import "errors"

// Sentinel errors returned by stores and crypto primitives. Service wraps
// them into coded errors before they reach callers.
var (
	// ErrNotFound is returned when a requested identity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateUsername is returned when an insert loses the uniqueness race.
	ErrDuplicateUsername = errors.New("username already registered")

	// ErrCorruptHash is returned when a stored password hash cannot be parsed.
	// This indicates store corruption, not user error, and should alert.
	ErrCorruptHash = errors.New("corrupt password hash")
)

// Error codes carried by oops errors returned from Service operations.
// Callers match on these codes, never on message text.
const (
	// CodeValidationFailed reports credential policy violations. The error
	// context key "reasons" lists every violated rule, not just the first.
	CodeValidationFailed = "AUTH_VALIDATION_FAILED"

	// CodeUsernameTaken reports a duplicate username on registration.
	CodeUsernameTaken = "AUTH_USERNAME_TAKEN"

	// CodeInvalidCredentials covers both unknown username and wrong password
	// so that callers cannot enumerate registered usernames.
	CodeInvalidCredentials = "AUTH_INVALID_CREDENTIALS"

	// CodeUnauthenticated covers expired, tampered, and malformed tokens as
	// well as tokens for identities that no longer resolve. Collapsing these
	// into one externally visible kind is deliberate information hiding.
	CodeUnauthenticated = "AUTH_UNAUTHENTICATED"

	// CodeCorruptHash surfaces ErrCorruptHash. Treat as fatal, not user error.
	CodeCorruptHash = "AUTH_CORRUPT_HASH"
)
