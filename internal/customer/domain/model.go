package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Customer is an invoice recipient.
type Customer struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	Email     string       `gorm:"type:text;not null" json:"email"`
	ImageURL  string       `gorm:"column:image_url;type:text" json:"image_url"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Customer) TableName() string { return "customers" }

// Field is the id/name pair used to populate invoice form selectors.
type Field struct {
	ID   snowflake.ID `json:"id"`
	Name string       `json:"name"`
}

// TableRow is one row of the customers table: the customer plus invoice
// aggregates, money columns already formatted as currency strings.
type TableRow struct {
	ID            snowflake.ID `json:"id"`
	Name          string       `json:"name"`
	Email         string       `json:"email"`
	ImageURL      string       `json:"image_url"`
	TotalInvoices int64        `json:"total_invoices"`
	TotalPending  string       `json:"total_pending"`
	TotalPaid     string       `json:"total_paid"`
}
