package repository

import (
	"context"

	"github.com/acmelabs/backoffice/internal/revenue/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

// New returns a gorm-backed revenue repository.
func New(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) List(ctx context.Context) ([]domain.Revenue, error) {
	var rows []domain.Revenue
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
