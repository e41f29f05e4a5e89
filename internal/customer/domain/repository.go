package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Aggregate is the raw per-customer invoice rollup before formatting.
type Aggregate struct {
	ID                snowflake.ID
	Name              string
	Email             string
	ImageURL          string
	TotalInvoices     int64
	TotalPendingCents int64
	TotalPaidCents    int64
}

// Repository is the persistence boundary for customers.
type Repository interface {
	Fields(ctx context.Context) ([]Field, error)
	Aggregates(ctx context.Context, query string) ([]Aggregate, error)
	Exists(ctx context.Context, id snowflake.ID) (bool, error)
	Count(ctx context.Context) (int64, error)
}
