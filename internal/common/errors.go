// Package common defines shared constants and sentinel errors used across
// client and server layers of Imagewall. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Pagination errors (malformed or negative cursor).
	ErrInvalidCursor = errors.New("invalid cursor")

	// Client-side mapping for a request the server rejected as invalid.
	ErrInvalidRequest = errors.New("invalid request")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")

	// Resource locator errors (all providers exhausted).
	ErrResolveFailed = errors.New("resource resolution failed")
)
