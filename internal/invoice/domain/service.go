package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Service exposes invoice CRUD and the dashboard invoice widgets.
type Service interface {
	Create(ctx context.Context, input InvoiceInput) (*Invoice, error)
	Update(ctx context.Context, id snowflake.ID, input InvoiceInput) (*Invoice, error)
	Delete(ctx context.Context, id snowflake.ID) error

	// Get returns the edit-form view of an invoice.
	Get(ctx context.Context, id snowflake.ID) (*InvoiceForm, error)

	// Latest returns the most recent invoices joined with their
	// customers, newest first.
	Latest(ctx context.Context) ([]LatestInvoice, error)

	// ListFiltered returns one page of the invoices table matching the
	// query, newest first.
	ListFiltered(ctx context.Context, query string, page int) ([]TableRow, error)

	// CountPages returns how many pages the query spans.
	CountPages(ctx context.Context, query string) (int, error)

	// CardData gathers the invoice dashboard counters concurrently.
	CardData(ctx context.Context) (*CardData, error)
}
