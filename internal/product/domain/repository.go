package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// CategoryCount is one histogram bucket of products per category.
type CategoryCount struct {
	Category string
	Count    int64
}

// Repository is the persistence boundary for products.
type Repository interface {
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id snowflake.ID) error
	FindByID(ctx context.Context, id snowflake.ID) (*Product, error)

	// Find returns one page of products matching the criteria.
	Find(ctx context.Context, criteria Criteria, limit, offset int) ([]Product, error)

	// Count returns the total number of products matching the criteria,
	// ignoring pagination.
	Count(ctx context.Context, criteria Criteria) (int64, error)

	// DistinctCategories lists every category with at least one active
	// product, ascending.
	DistinctCategories(ctx context.Context) ([]string, error)

	// ListActive returns every active product ordered by name ascending.
	ListActive(ctx context.Context) ([]Product, error)

	// ListByCategory returns the active products of one category ordered
	// by name ascending.
	ListByCategory(ctx context.Context, category string) ([]Product, error)

	// CountActive returns the number of active products.
	CountActive(ctx context.Context) (int64, error)

	// CountByCategory buckets active products per category, ordered by
	// category name descending.
	CountByCategory(ctx context.Context) ([]CategoryCount, error)

	// FindLowStock returns active products at or below the threshold,
	// ordered by stock then name ascending.
	FindLowStock(ctx context.Context, threshold int64) ([]Product, error)

	// FindByPrice returns up to limit active products ordered by price.
	FindByPrice(ctx context.Context, desc bool, limit int) ([]Product, error)

	// ActiveCreationTimes returns the creation timestamps of every
	// active product.
	ActiveCreationTimes(ctx context.Context) ([]Product, error)

	// SumInventoryValue returns the total value of active inventory in
	// cents, price times stock summed over every active product.
	SumInventoryValue(ctx context.Context) (int64, error)
}
