// Package common defines the sentinel errors shared across the accounts
// service. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Domain errors.
	ErrNotFound      = errors.New("not found")
	ErrEmailExists   = errors.New("email already exists")
	ErrInvalidUserID = errors.New("invalid user id")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")

	// Infrastructure errors (persistence layer unreachable or failing).
	ErrUnavailable = errors.New("storage unavailable")
	ErrInternal    = errors.New("internal error")

	// Token errors (invalid, tampered, or expired session token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
