package common

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// ErrInvalidToken is returned when a token cannot be decoded into a session.
	ErrInvalidToken = errors.New("invalid token")

	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrForbidden marks a client-side refusal to show an admin-only
	// feature. The server remains the authority on every privileged call.
	ErrForbidden = errors.New("admin privileges required")

	ErrNoToken = errors.New("no token received")
)
