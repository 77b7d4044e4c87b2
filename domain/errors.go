package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors. The transport layer maps these to HTTP status codes
// (e.g. ErrInvalidToken -> 401, ErrForbidden -> 403).
var (
	// Share endpoint errors
	ErrMissingToken   = errors.New("token is required")
	ErrInvalidToken   = errors.New("invalid or expired token")
	ErrForbidden      = errors.New("edit access required")
	ErrUnknownAction  = errors.New("invalid action")
	ErrInvalidPayload = errors.New("invalid payload")

	// Store errors
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateToken = errors.New("token already issued")

	// Owner-side errors
	ErrNotOwner          = errors.New("operation requires organization ownership")
	ErrDuplicateUsername = errors.New("username already taken")
)

// ErrTokenExpired wraps ErrInvalidToken so that transport code collapsing on
// errors.Is(err, ErrInvalidToken) treats an expired token exactly like a
// fabricated or revoked one. The distinction exists only for server-side logs.
var ErrTokenExpired = fmt.Errorf("%w: expired", ErrInvalidToken)
