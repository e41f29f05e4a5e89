package domain

import "errors"

var (
	// ErrNotFound is returned when no invoice exists for the requested ID.
	ErrNotFound = errors.New("invoice not found")

	// ErrUnauthorized is returned when a write is attempted without an
	// authenticated actor.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrStoreUnavailable is returned when the data store cannot be reached.
	ErrStoreUnavailable = errors.New("invoice store unavailable")
)
