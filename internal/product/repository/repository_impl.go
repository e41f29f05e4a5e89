package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/acmelabs/backoffice/internal/product/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

// New returns a gorm-backed product repository.
func New(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) Create(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *repo) Update(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *repo) Delete(ctx context.Context, id snowflake.ID) error {
	res := r.db.WithContext(ctx).Delete(&domain.Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *repo) FindByID(ctx context.Context, id snowflake.ID) (*domain.Product, error) {
	var product domain.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// applyCriteria AND-reduces the criteria's clauses onto the query. The
// text search matches case-insensitively against name, description, and
// category; LOWER LIKE keeps the predicate portable across dialects.
func applyCriteria(tx *gorm.DB, criteria domain.Criteria) *gorm.DB {
	for _, clause := range criteria.Clauses {
		switch c := clause.(type) {
		case domain.TextSearch:
			pattern := "%" + strings.ToLower(c.Query) + "%"
			tx = tx.Where(
				"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(category) LIKE ?",
				pattern, pattern, pattern,
			)
		case domain.CategoryEquals:
			tx = tx.Where("category = ?", c.Category)
		case domain.StatusEquals:
			tx = tx.Where("is_active = ?", c.Active)
		}
	}
	return tx
}

func orderClause(sort domain.Sort) string {
	direction := "ASC"
	if sort.Desc {
		direction = "DESC"
	}
	// Secondary key keeps the ordering stable when the sort column ties.
	return fmt.Sprintf("%s %s, id ASC", sort.Column, direction)
}

func (r *repo) Find(ctx context.Context, criteria domain.Criteria, limit, offset int) ([]domain.Product, error) {
	var products []domain.Product
	tx := applyCriteria(r.db.WithContext(ctx).Model(&domain.Product{}), criteria)
	err := tx.Order(orderClause(criteria.Sort)).
		Limit(limit).
		Offset(offset).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repo) Count(ctx context.Context, criteria domain.Criteria) (int64, error) {
	var count int64
	tx := applyCriteria(r.db.WithContext(ctx).Model(&domain.Product{}), criteria)
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repo) DistinctCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("is_active = ?", true).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *repo) ListActive(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repo) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND category = ?", true, category).
		Order("name ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repo) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("is_active = ?", true).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repo) CountByCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	var counts []domain.CategoryCount
	err := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Select("category, COUNT(*) AS count").
		Where("is_active = ?", true).
		Group("category").
		Order("category DESC").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *repo) FindLowStock(ctx context.Context, threshold int64) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND stock <= ?", true, threshold).
		Order("stock ASC, name ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repo) FindByPrice(ctx context.Context, desc bool, limit int) ([]domain.Product, error) {
	order := "price_cents ASC, id ASC"
	if desc {
		order = "price_cents DESC, id ASC"
	}
	var products []domain.Product
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order(order).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repo) ActiveCreationTimes(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).
		Select("id, created_at").
		Where("is_active = ?", true).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repo) SumInventoryValue(ctx context.Context) (int64, error) {
	var total *int64
	err := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Select("SUM(price_cents * stock)").
		Where("is_active = ?", true).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}
