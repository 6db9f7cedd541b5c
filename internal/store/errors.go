package store

import "errors"

// Sentinel errors returned by the persistence layer. Handlers map these onto
// HTTP status codes; anything else is treated as a storage failure (500).
var (
	// ErrNotFound indicates an unknown application, user, or event type.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateApp indicates the application already holds an API key.
	// Registration rejects duplicates; rotation requires revoke + register.
	ErrDuplicateApp = errors.New("application already registered")

	// ErrInvalidKey indicates the presented API key matches no application.
	ErrInvalidKey = errors.New("invalid api key")
)
