package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/acmelabs/backoffice/internal/actorctx"
	"github.com/acmelabs/backoffice/internal/clock"
	"github.com/acmelabs/backoffice/internal/config"
	"github.com/acmelabs/backoffice/internal/product/domain"
	"github.com/acmelabs/backoffice/internal/validation"
	"github.com/acmelabs/backoffice/pkg/money"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	nameMinLen        = 3
	nameMaxLen        = 100
	descriptionMaxLen = 500
	categoryMaxLen    = 50
	stockMax          = 999_999
	priceMaxCents     = money.Cents(999_999_999) // $9,999,999.99
)

var namePattern = regexp.MustCompile(`^[a-zA-Z0-9\s\-_.,]+$`)

// storeErr hides backend failures behind ErrStoreUnavailable. Domain
// sentinels pass through untouched; the cause is logged, not exposed.
func storeErr(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}

type Params struct {
	fx.In

	Log       *zap.Logger
	Repo      domain.Repository
	GenID     *snowflake.Node
	Clock     clock.Clock
	Dashboard *config.DashboardConfigHolder
}

type service struct {
	log       *zap.Logger
	repo      domain.Repository
	genID     *snowflake.Node
	clock     clock.Clock
	dashboard *config.DashboardConfigHolder
}

// New constructs the product service.
func New(p Params) domain.Service {
	return &service{
		log:       p.Log,
		repo:      p.Repo,
		genID:     p.GenID,
		clock:     p.Clock,
		dashboard: p.Dashboard,
	}
}

// validateInput checks every field and reports all failures together.
// The price is parsed once here and reused by the caller.
func validateInput(input domain.ProductInput) (money.Cents, *validation.Errors) {
	errs := &validation.Errors{}

	name := strings.TrimSpace(input.Name)
	switch {
	case utf8.RuneCountInString(name) < nameMinLen:
		errs.Add("name", "too_short", "Product name must be at least 3 characters.")
	case utf8.RuneCountInString(name) > nameMaxLen:
		errs.Add("name", "too_long", "Product name must be at most 100 characters.")
	case !namePattern.MatchString(name):
		errs.Add("name", "invalid_characters", "Product name contains invalid characters.")
	}

	description := strings.TrimSpace(input.Description)
	switch {
	case description == "":
		errs.Add("description", "required", "Please enter a description.")
	case utf8.RuneCountInString(description) > descriptionMaxLen:
		errs.Add("description", "too_long", "Description must be at most 500 characters.")
	}

	category := strings.TrimSpace(input.Category)
	switch {
	case category == "":
		errs.Add("category", "required", "Please select a category.")
	case utf8.RuneCountInString(category) > categoryMaxLen:
		errs.Add("category", "too_long", "Category must be at most 50 characters.")
	}

	cents, err := money.ParseDollars(input.Price)
	switch {
	case err != nil:
		errs.Add("price", "invalid", "Please enter a valid price with at most 2 decimal places.")
	case cents <= 0:
		errs.Add("price", "not_positive", "Please enter a price greater than $0.")
	case cents > priceMaxCents:
		errs.Add("price", "too_large", "Price cannot exceed $9,999,999.99.")
	}

	switch {
	case input.Stock < 0:
		errs.Add("stock", "negative", "Stock cannot be negative.")
	case input.Stock > stockMax:
		errs.Add("stock", "too_large", "Stock cannot exceed 999,999.")
	}

	if errs.Empty() {
		return cents, nil
	}
	return 0, errs
}

func (s *service) Create(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	actorID, ok := actorctx.ActorIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	cents, verrs := validateInput(input)
	if verrs != nil {
		return nil, verrs
	}

	now := s.clock.Now()
	product := &domain.Product{
		ID:          s.genID.Generate(),
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Category:    strings.TrimSpace(input.Category),
		PriceCents:  cents,
		Stock:       input.Stock,
		IsActive:    input.IsActive,
		CreatedBy:   &actorID,
		UpdatedBy:   &actorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		s.log.Error("failed to create product", zap.Error(err))
		return nil, storeErr(err)
	}

	s.log.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("category", product.Category),
	)
	return product, nil
}

func (s *service) Update(ctx context.Context, id snowflake.ID, input domain.ProductInput) (*domain.Product, error) {
	actorID, ok := actorctx.ActorIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	cents, verrs := validateInput(input)
	if verrs != nil {
		return nil, verrs
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}

	product.Name = strings.TrimSpace(input.Name)
	product.Description = strings.TrimSpace(input.Description)
	product.Category = strings.TrimSpace(input.Category)
	product.PriceCents = cents
	product.Stock = input.Stock
	product.IsActive = input.IsActive
	product.UpdatedBy = &actorID
	product.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, product); err != nil {
		s.log.Error("failed to update product", zap.Error(err))
		return nil, storeErr(err)
	}

	s.log.Info("product updated", zap.String("product_id", product.ID.String()))
	return product, nil
}

func (s *service) Delete(ctx context.Context, id snowflake.ID) error {
	if _, ok := actorctx.ActorIDFromContext(ctx); !ok {
		return domain.ErrUnauthorized
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		s.log.Error("failed to delete product", zap.Error(err))
		return storeErr(err)
	}

	s.log.Info("product deleted", zap.String("product_id", id.String()))
	return nil
}

func (s *service) Get(ctx context.Context, id snowflake.ID) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	return product, nil
}

func (s *service) ListPage(ctx context.Context, query domain.ListQuery) ([]domain.Product, error) {
	pageSize := s.dashboard.Get().PageSize
	criteria := domain.BuildCriteria(query.Query, query.Category, query.Status, query.SortBy, query.Page)
	offset := (criteria.Page - 1) * pageSize

	products, err := s.repo.Find(ctx, criteria, pageSize, offset)
	if err != nil {
		s.log.Error("failed to list products", zap.Error(err))
		return nil, storeErr(err)
	}
	return products, nil
}

func (s *service) CountPages(ctx context.Context, query domain.ListQuery) (int, error) {
	pageSize := s.dashboard.Get().PageSize
	criteria := domain.BuildCriteria(query.Query, query.Category, query.Status, query.SortBy, query.Page)

	total, err := s.repo.Count(ctx, criteria)
	if err != nil {
		s.log.Error("failed to count products", zap.Error(err))
		return 0, storeErr(err)
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize)), nil
}

func (s *service) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.DistinctCategories(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	return categories, nil
}

func (s *service) ListActive(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	return products, nil
}

func (s *service) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	products, err := s.repo.ListByCategory(ctx, category)
	if err != nil {
		return nil, storeErr(err)
	}
	return products, nil
}
