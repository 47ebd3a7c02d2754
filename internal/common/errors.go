// Package common defines shared constants and sentinel errors used across
// the layers of the todo API. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth-specific errors.
	ErrorInvalidCredentials = errors.New("invalid credentials")
	ErrorEmailTaken         = errors.New("email already taken")
)
