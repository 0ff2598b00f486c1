// Package common defines shared constants and sentinel errors used across
// the client and server layers of Lockbox. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal         = errors.New("internal error")
	ErrorUnauthorized     = errors.New("unauthorized")
	ErrorValidation       = errors.New("validation error")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token lifecycle errors. Callers reject all three identically; the
	// distinction exists for diagnostics only.
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
	ErrMalformedToken = errors.New("malformed token")

	// Cipher errors. Wrong key and corrupted data are indistinguishable.
	ErrDecryption        = errors.New("decryption failed")
	ErrEmptyResult       = errors.New("decryption produced empty result")
	ErrSizeLimitExceeded = errors.New("size limit exceeded")
)
