package domain

import (
	"time"

	"github.com/acmelabs/backoffice/pkg/money"
	"github.com/bwmarrin/snowflake"
)

// Invoice statuses.
const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

// Invoice is a billed amount owed by a customer. Amount is stored as
// integer cents.
type Invoice struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	CustomerID  snowflake.ID `gorm:"column:customer_id;not null;index" json:"customer_id"`
	AmountCents money.Cents  `gorm:"column:amount_cents;not null" json:"amount_cents"`
	Status      string       `gorm:"type:text;not null" json:"status"`
	Date        time.Time    `gorm:"not null" json:"date"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// InvoiceInput is the raw form payload for creating or replacing an
// invoice. Amount is the decimal dollar amount as typed.
type InvoiceInput struct {
	CustomerID string `json:"customer_id"`
	Amount     string `json:"amount"`
	Status     string `json:"status"`
}

// InvoiceForm is the edit-form view of an invoice, amount rendered as a
// plain dollar string.
type InvoiceForm struct {
	ID         snowflake.ID `json:"id"`
	CustomerID snowflake.ID `json:"customer_id"`
	Amount     string       `json:"amount"`
	Status     string       `json:"status"`
}

// LatestInvoice is one row of the dashboard's recent-invoices widget.
type LatestInvoice struct {
	ID       snowflake.ID `json:"id"`
	Name     string       `json:"name"`
	Email    string       `json:"email"`
	ImageURL string       `json:"image_url"`
	Amount   string       `json:"amount"`
}

// TableRow is one row of the invoices table joined with its customer.
type TableRow struct {
	ID       snowflake.ID `json:"id"`
	Name     string       `json:"name"`
	Email    string       `json:"email"`
	ImageURL string       `json:"image_url"`
	Amount   string       `json:"amount"`
	Date     string       `json:"date"`
	Status   string       `json:"status"`
}

// CardData is the dashboard summary strip over invoices and customers.
type CardData struct {
	NumberOfInvoices  int64  `json:"number_of_invoices"`
	NumberOfCustomers int64  `json:"number_of_customers"`
	TotalPaid         string `json:"total_paid"`
	TotalPending      string `json:"total_pending"`
}
