package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/acmelabs/backoffice/internal/invoice/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

// New returns a gorm-backed invoice repository.
func New(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) Create(ctx context.Context, invoice *domain.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *repo) Update(ctx context.Context, invoice *domain.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

func (r *repo) Delete(ctx context.Context, id snowflake.ID) error {
	res := r.db.WithContext(ctx).Delete(&domain.Invoice{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *repo) FindByID(ctx context.Context, id snowflake.ID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	if err := r.db.WithContext(ctx).First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

const joinedSelect = `
	invoices.id,
	customers.name,
	customers.email,
	customers.image_url,
	invoices.amount_cents,
	invoices.date,
	invoices.status`

func (r *repo) Latest(ctx context.Context, limit int) ([]domain.JoinedRow, error) {
	var rows []domain.JoinedRow
	err := r.db.WithContext(ctx).
		Table("invoices").
		Select(joinedSelect).
		Joins("JOIN customers ON invoices.customer_id = customers.id").
		Order("invoices.date DESC, invoices.id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// filteredQuery matches the query against customer name/email and the
// invoice's amount, date, and status rendered as text.
func (r *repo) filteredQuery(ctx context.Context, query string) *gorm.DB {
	pattern := "%" + strings.ToLower(query) + "%"
	return r.db.WithContext(ctx).
		Table("invoices").
		Joins("JOIN customers ON invoices.customer_id = customers.id").
		Where(`LOWER(customers.name) LIKE ?
			OR LOWER(customers.email) LIKE ?
			OR CAST(invoices.amount_cents AS TEXT) LIKE ?
			OR CAST(invoices.date AS TEXT) LIKE ?
			OR LOWER(invoices.status) LIKE ?`,
			pattern, pattern, pattern, pattern, pattern,
		)
}

func (r *repo) FindFiltered(ctx context.Context, query string, limit, offset int) ([]domain.JoinedRow, error) {
	var rows []domain.JoinedRow
	err := r.filteredQuery(ctx, query).
		Select(joinedSelect).
		Order("invoices.date DESC, invoices.id DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) CountFiltered(ctx context.Context, query string) (int64, error) {
	var count int64
	if err := r.filteredQuery(ctx, query).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repo) Totals(ctx context.Context) (*domain.StatusTotals, error) {
	var totals domain.StatusTotals
	err := r.db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Select(`COALESCE(SUM(CASE WHEN status = 'paid' THEN amount_cents ELSE 0 END), 0) AS paid_cents,
			COALESCE(SUM(CASE WHEN status = 'pending' THEN amount_cents ELSE 0 END), 0) AS pending_cents`).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}
