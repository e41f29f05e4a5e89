package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	authdomain "github.com/acmelabs/backoffice/internal/auth/domain"
	"github.com/acmelabs/backoffice/internal/auth/password"
	customerdomain "github.com/acmelabs/backoffice/internal/customer/domain"
	invoicedomain "github.com/acmelabs/backoffice/internal/invoice/domain"
	productdomain "github.com/acmelabs/backoffice/internal/product/domain"
	revenuedomain "github.com/acmelabs/backoffice/internal/revenue/domain"
	"github.com/acmelabs/backoffice/pkg/money"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

const (
	defaultAdminEmail    = "admin@backoffice.local"
	defaultAdminPassword = "changeme123"
	defaultAdminName     = "Backoffice Admin"
)

// EnsureAdminUser creates the default admin account when no user with
// the default email exists yet. Idempotent across restarts.
func EnsureAdminUser(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user authdomain.User
		err := tx.Where("email = ?", defaultAdminEmail).First(&user).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := password.Hash(defaultAdminPassword)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		user = authdomain.User{
			ID:           node.Generate(),
			Name:         defaultAdminName,
			Email:        strings.ToLower(defaultAdminEmail),
			PasswordHash: &hashed,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return tx.Create(&user).Error
	})
}

// EnsureDemoData populates a small demo catalog for development
// environments. It does nothing when any customer already exists.
func EnsureDemoData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&customerdomain.Customer{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := time.Now().UTC()

		customers := []customerdomain.Customer{
			{ID: node.Generate(), Name: "Evil Corp", Email: "billing@evilcorp.test", ImageURL: "/customers/evil-corp.png", CreatedAt: now, UpdatedAt: now},
			{ID: node.Generate(), Name: "Hooli", Email: "ap@hooli.test", ImageURL: "/customers/hooli.png", CreatedAt: now, UpdatedAt: now},
			{ID: node.Generate(), Name: "Pied Piper", Email: "accounts@piedpiper.test", ImageURL: "/customers/pied-piper.png", CreatedAt: now, UpdatedAt: now},
		}
		if err := tx.Create(&customers).Error; err != nil {
			return err
		}

		invoices := []invoicedomain.Invoice{
			{ID: node.Generate(), CustomerID: customers[0].ID, AmountCents: 153_500, Status: invoicedomain.StatusPaid, Date: now.AddDate(0, 0, -20), CreatedAt: now, UpdatedAt: now},
			{ID: node.Generate(), CustomerID: customers[1].ID, AmountCents: 44_800, Status: invoicedomain.StatusPending, Date: now.AddDate(0, 0, -7), CreatedAt: now, UpdatedAt: now},
			{ID: node.Generate(), CustomerID: customers[2].ID, AmountCents: 8_945, Status: invoicedomain.StatusPaid, Date: now.AddDate(0, 0, -2), CreatedAt: now, UpdatedAt: now},
		}
		if err := tx.Create(&invoices).Error; err != nil {
			return err
		}

		products := []productdomain.Product{
			{ID: node.Generate(), Name: "Wireless Mouse", Description: "Compact 2.4GHz mouse", Category: "electronics", PriceCents: money.Cents(2_999), Stock: 120, IsActive: true, CreatedAt: now, UpdatedAt: now},
			{ID: node.Generate(), Name: "Mechanical Keyboard", Description: "Tenkeyless, brown switches", Category: "electronics", PriceCents: money.Cents(8_950), Stock: 35, IsActive: true, CreatedAt: now, UpdatedAt: now},
			{ID: node.Generate(), Name: "Desk Mat", Description: "900x400mm felt desk mat", Category: "accessories", PriceCents: money.Cents(1_999), Stock: 2, IsActive: true, CreatedAt: now, UpdatedAt: now},
			{ID: node.Generate(), Name: "USB-C Hub", Description: "7-in-1 aluminium hub", Category: "accessories", PriceCents: money.Cents(4_500), Stock: 0, IsActive: true, CreatedAt: now, UpdatedAt: now},
			{ID: node.Generate(), Name: "Legacy Dock", Description: "Discontinued docking station", Category: "electronics", PriceCents: money.Cents(12_000), Stock: 4, IsActive: false, CreatedAt: now, UpdatedAt: now},
		}
		if err := tx.Create(&products).Error; err != nil {
			return err
		}

		revenue := []revenuedomain.Revenue{
			{Month: "Jan", RevenueCents: 200_000},
			{Month: "Feb", RevenueCents: 180_000},
			{Month: "Mar", RevenueCents: 220_000},
			{Month: "Apr", RevenueCents: 250_000},
			{Month: "May", RevenueCents: 230_000},
			{Month: "Jun", RevenueCents: 320_000},
		}
		return tx.Create(&revenue).Error
	})
}
