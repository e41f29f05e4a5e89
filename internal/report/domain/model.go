package domain

import "github.com/bwmarrin/snowflake"

// Severity labels for low stock alerts.
const (
	SeverityOutOfStock = "Out of Stock"
	SeverityLowStock   = "Low Stock"
)

// CategoryBucket is one bar of the category histogram.
type CategoryBucket struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// LowStockAlert flags an active product at or below the stock threshold.
type LowStockAlert struct {
	ID       snowflake.ID `json:"id"`
	Name     string       `json:"name"`
	Category string       `json:"category"`
	Stock    int64        `json:"stock"`
	Severity string       `json:"severity"`
}

// PriceEntry is one row of the most/least expensive listings.
type PriceEntry struct {
	ID       snowflake.ID `json:"id"`
	Name     string       `json:"name"`
	Category string       `json:"category"`
	Price    string       `json:"price"`
}

// PriceExtremes pairs the most and least expensive active products.
type PriceExtremes struct {
	MostExpensive  []PriceEntry `json:"most_expensive"`
	LeastExpensive []PriceEntry `json:"least_expensive"`
}

// TrendPoint is one month's worth of product creations. Months with no
// creations are not emitted.
type TrendPoint struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// CardData is the dashboard summary strip.
type CardData struct {
	ActiveProducts int64  `json:"active_products"`
	Categories     int64  `json:"categories"`
	InventoryValue string `json:"inventory_value"`
}
