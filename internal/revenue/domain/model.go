package domain

import (
	"context"
	"errors"
)

// ErrStoreUnavailable marks revenue reads that failed in the store.
var ErrStoreUnavailable = errors.New("revenue store unavailable")

// Revenue is one month of recorded revenue for the dashboard chart.
type Revenue struct {
	Month        string `gorm:"type:text;primaryKey" json:"month"`
	RevenueCents int64  `gorm:"column:revenue_cents;not null" json:"revenue_cents"`
}

// TableName sets the database table name.
func (Revenue) TableName() string { return "revenue" }

// Service exposes the monthly revenue rows.
type Service interface {
	List(ctx context.Context) ([]Revenue, error)
}

// Repository is the persistence boundary for revenue rows.
type Repository interface {
	List(ctx context.Context) ([]Revenue, error)
}
