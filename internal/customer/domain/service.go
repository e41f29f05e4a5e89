package domain

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no customer exists for the requested ID.
	ErrNotFound = errors.New("customer not found")

	// ErrStoreUnavailable is returned when the data store cannot be reached.
	ErrStoreUnavailable = errors.New("customer store unavailable")
)

// Service exposes customer reads for the dashboard and invoice forms.
type Service interface {
	// List returns every customer as id/name pairs, name ascending.
	List(ctx context.Context) ([]Field, error)

	// ListFiltered returns the customers table with per-customer invoice
	// aggregates, filtered by a case-insensitive substring match on name
	// or email.
	ListFiltered(ctx context.Context, query string) ([]TableRow, error)
}
