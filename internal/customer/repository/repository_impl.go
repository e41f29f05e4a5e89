package repository

import (
	"context"
	"strings"

	"github.com/acmelabs/backoffice/internal/customer/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

// New returns a gorm-backed customer repository.
func New(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) Fields(ctx context.Context) ([]domain.Field, error) {
	var fields []domain.Field
	err := r.db.WithContext(ctx).
		Model(&domain.Customer{}).
		Select("id, name").
		Order("name ASC").
		Scan(&fields).Error
	if err != nil {
		return nil, err
	}
	return fields, nil
}

func (r *repo) Aggregates(ctx context.Context, query string) ([]domain.Aggregate, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	var aggregates []domain.Aggregate
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			customers.id,
			customers.name,
			customers.email,
			customers.image_url,
			COUNT(invoices.id) AS total_invoices,
			COALESCE(SUM(CASE WHEN invoices.status = 'pending' THEN invoices.amount_cents ELSE 0 END), 0) AS total_pending_cents,
			COALESCE(SUM(CASE WHEN invoices.status = 'paid' THEN invoices.amount_cents ELSE 0 END), 0) AS total_paid_cents
		FROM customers
		LEFT JOIN invoices ON customers.id = invoices.customer_id
		WHERE LOWER(customers.name) LIKE ? OR LOWER(customers.email) LIKE ?
		GROUP BY customers.id, customers.name, customers.email, customers.image_url
		ORDER BY customers.name ASC`,
		pattern, pattern,
	).Scan(&aggregates).Error
	if err != nil {
		return nil, err
	}
	return aggregates, nil
}

func (r *repo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Customer{}).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repo) Exists(ctx context.Context, id snowflake.ID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Customer{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
