package domain

import "errors"

var (
	// ErrNotFound is returned when no product exists for the requested ID.
	ErrNotFound = errors.New("product not found")

	// ErrInvalidID is returned when the ID in a request cannot be parsed.
	ErrInvalidID = errors.New("invalid product id")

	// ErrUnauthorized is returned when a write is attempted without an
	// authenticated actor. Nothing is persisted in that case.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrStoreUnavailable is returned when the data store cannot be reached.
	ErrStoreUnavailable = errors.New("product store unavailable")
)
