package domain

import "context"

// Service builds the aggregate product reports for the dashboard.
type Service interface {
	// CategoryHistogram buckets active products per category, ordered
	// by category name descending.
	CategoryHistogram(ctx context.Context) ([]CategoryBucket, error)

	// LowStockAlerts lists active products at or below the configured
	// threshold, lowest stock first.
	LowStockAlerts(ctx context.Context) ([]LowStockAlert, error)

	// PriceExtremes returns the most and least expensive active products.
	PriceExtremes(ctx context.Context) (*PriceExtremes, error)

	// MonthlyCreationTrend buckets active products by creation month in
	// chronological order, omitting empty months.
	MonthlyCreationTrend(ctx context.Context) ([]TrendPoint, error)

	// CardData gathers the dashboard summary counters concurrently.
	CardData(ctx context.Context) (*CardData, error)
}
