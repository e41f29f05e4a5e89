package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// ProductInput is the raw form payload for creating or replacing a
// product. Price is the decimal dollar amount as typed, parsed without
// going through floating point.
type ProductInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Price       string `json:"price"`
	Stock       int64  `json:"stock"`
	IsActive    bool   `json:"is_active"`
}

// ListQuery carries the raw, unvalidated listing parameters from the
// HTTP layer.
type ListQuery struct {
	Query    string
	Category string
	Status   string
	SortBy   string
	Page     int
}

// Service exposes the product catalog operations.
type Service interface {
	Create(ctx context.Context, input ProductInput) (*Product, error)
	Update(ctx context.Context, id snowflake.ID, input ProductInput) (*Product, error)
	Delete(ctx context.Context, id snowflake.ID) error
	Get(ctx context.Context, id snowflake.ID) (*Product, error)

	// ListPage returns one page of products matching the query.
	ListPage(ctx context.Context, query ListQuery) ([]Product, error)

	// CountPages returns how many pages the query spans. Zero matches
	// yield zero pages.
	CountPages(ctx context.Context, query ListQuery) (int, error)

	// Categories lists every category with at least one active product,
	// ascending.
	Categories(ctx context.Context) ([]string, error)

	// ListActive returns every active product ordered by name ascending.
	ListActive(ctx context.Context) ([]Product, error)

	// ListByCategory returns the active products of one category ordered
	// by name ascending.
	ListByCategory(ctx context.Context, category string) ([]Product, error)
}
