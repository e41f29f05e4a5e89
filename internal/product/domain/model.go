package domain

import (
	"time"

	"github.com/acmelabs/backoffice/pkg/money"
	"github.com/bwmarrin/snowflake"
)

// Product is a catalog item. Price is stored as integer cents; stock as a
// plain count. Inactive products stay addressable by ID but are excluded
// from every listing default and every report.
type Product struct {
	ID          snowflake.ID  `gorm:"primaryKey"`
	Name        string        `gorm:"type:text;not null"`
	Description string        `gorm:"type:text;not null"`
	Category    string        `gorm:"type:text;not null;index"`
	PriceCents  money.Cents   `gorm:"column:price_cents;not null"`
	Stock       int64         `gorm:"not null"`
	IsActive    bool          `gorm:"column:is_active;not null;default:true"`
	CreatedBy   *snowflake.ID `gorm:"column:created_by"`
	UpdatedBy   *snowflake.ID `gorm:"column:updated_by"`
	CreatedAt   time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Product) TableName() string { return "products" }
