package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

// JoinedRow is an invoice joined with its customer, amounts still raw.
type JoinedRow struct {
	ID          snowflake.ID
	Name        string
	Email       string
	ImageURL    string
	AmountCents int64
	Date        time.Time
	Status      string
}

// StatusTotals holds the paid/pending amount sums in cents.
type StatusTotals struct {
	PaidCents    int64
	PendingCents int64
}

// Repository is the persistence boundary for invoices.
type Repository interface {
	Create(ctx context.Context, invoice *Invoice) error
	Update(ctx context.Context, invoice *Invoice) error
	Delete(ctx context.Context, id snowflake.ID) error
	FindByID(ctx context.Context, id snowflake.ID) (*Invoice, error)

	// Latest returns the most recent invoices joined with customers.
	Latest(ctx context.Context, limit int) ([]JoinedRow, error)

	// FindFiltered returns invoices joined with customers matching the
	// query across customer name/email and the invoice's amount, date,
	// and status text, newest first.
	FindFiltered(ctx context.Context, query string, limit, offset int) ([]JoinedRow, error)

	// CountFiltered counts invoices matching the same predicate.
	CountFiltered(ctx context.Context, query string) (int64, error)

	Count(ctx context.Context) (int64, error)
	Totals(ctx context.Context) (*StatusTotals, error)
}
