package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// These errors represent conditions that callers check for with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped with context via fmt.Errorf("%w", ...)
// 3. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrInvalidCredentials indicates a login attempt with an unknown email
	// or a wrong password. The two cases are deliberately indistinguishable.
	// API layer maps this to HTTP 401 Unauthorized.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountDisabled indicates a login attempt against an account an
	// administrator has disabled.
	// API layer maps this to HTTP 401 Unauthorized.
	ErrAccountDisabled = errors.New("account is disabled")

	// ErrAccountDeleted indicates a login attempt against a soft-deleted
	// account.
	// API layer maps this to HTTP 401 Unauthorized.
	ErrAccountDeleted = errors.New("account is deleted")

	// ErrPostNotOwned indicates a post is owned by a different user than the
	// one attempting to modify it.
	// API layer maps this to HTTP 403 Forbidden.
	ErrPostNotOwned = errors.New("post is owned by another user")

	// ErrNotAdmin indicates the authenticated account lacks the admin role
	// required for the operation.
	// API layer maps this to HTTP 403 Forbidden.
	ErrNotAdmin = errors.New("admin role required")
)
