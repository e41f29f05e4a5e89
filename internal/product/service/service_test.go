package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/acmelabs/backoffice/internal/actorctx"
	"github.com/acmelabs/backoffice/internal/clock"
	"github.com/acmelabs/backoffice/internal/config"
	"github.com/acmelabs/backoffice/internal/product/domain"
	"github.com/acmelabs/backoffice/internal/product/repository"
	"github.com/acmelabs/backoffice/internal/validation"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

const productsDDL = `
CREATE TABLE products (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL,
	category TEXT NOT NULL,
	price_cents INTEGER NOT NULL,
	stock INTEGER NOT NULL,
	is_active BOOLEAN NOT NULL DEFAULT true,
	created_by INTEGER,
	updated_by INTEGER,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);`

type testEnv struct {
	svc   domain.Service
	repo  domain.Repository
	db    *gorm.DB
	clock *clock.FakeClock
	node  *snowflake.Node
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Exec(productsDDL).Error)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fc := clock.NewFakeClock(time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC))
	repo := repository.New(db)

	svc := New(Params{
		Log:       zaptest.NewLogger(t),
		Repo:      repo,
		GenID:     node,
		Clock:     fc,
		Dashboard: config.NewStaticDashboardConfigHolder(config.DefaultDashboardConfig()),
	})

	return &testEnv{svc: svc, repo: repo, db: db, clock: fc, node: node}
}

func actorContext(env *testEnv) context.Context {
	return actorctx.WithActorID(context.Background(), env.node.Generate())
}

func validInput() domain.ProductInput {
	return domain.ProductInput{
		Name:        "USB-C Cable",
		Description: "Braided 2m charging cable",
		Category:    "electronics",
		Price:       "19.99",
		Stock:       42,
		IsActive:    true,
	}
}

func (env *testEnv) mustCreate(t *testing.T, ctx context.Context, mutate func(*domain.ProductInput)) *domain.Product {
	t.Helper()
	input := validInput()
	if mutate != nil {
		mutate(&input)
	}
	product, err := env.svc.Create(ctx, input)
	require.NoError(t, err)
	return product
}

func TestCreateProduct(t *testing.T) {
	env := newTestEnv(t)
	ctx := actorContext(env)

	product, err := env.svc.Create(ctx, validInput())
	require.NoError(t, err)

	assert.Equal(t, "USB-C Cable", product.Name)
	assert.EqualValues(t, 1999, product.PriceCents)
	assert.EqualValues(t, 42, product.Stock)
	assert.True(t, product.IsActive)
	assert.NotNil(t, product.CreatedBy)
	assert.Equal(t, env.clock.Now(), product.CreatedAt)
	assert.Equal(t, product.CreatedAt, product.UpdatedAt)

	stored, err := env.svc.Get(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.Name, stored.Name)
}

func TestCreateProductRequiresActor(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Create(context.Background(), validInput())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	var count int64
	require.NoError(t, env.db.Model(&domain.Product{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateProductReportsEveryInvalidField(t *testing.T) {
	env := newTestEnv(t)
	ctx := actorContext(env)

	_, err := env.svc.Create(ctx, domain.ProductInput{
		Name:        "ab",
		Description: "",
		Category:    "",
		Price:       "12.999",
		Stock:       -1,
	})
	require.Error(t, err)

	verrs, ok := err.(*validation.Errors)
	require.True(t, ok)

	fields := make([]string, 0, len(verrs.Fields))
	for _, fe := range verrs.Fields {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"name", "description", "category", "price", "stock"}, fields)

	var count int64
	require.NoError(t, env.db.Model(&domain.Product{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateProductRejectsBadName(t *testing.T) {
	env := newTestEnv(t)
	ctx := actorContext(env)

	_, err := env.svc.Create(ctx, func() domain.ProductInput {
		in := validInput()
		in.Name = "cable <script>"
		return in
	}())
	require.Error(t, err)

	verrs, ok := err.(*validation.Errors)
	require.True(t, ok)
	require.Len(t, verrs.Fields, 1)
	assert.Equal(t, "name", verrs.Fields[0].Field)
	assert.Equal(t, "invalid_characters", verrs.Fields[0].Code)
}

func TestCreateProductPriceBounds(t *testing.T) {
	env := newTestEnv(t)
	ctx := actorContext(env)

	for _, price := range []string{"0", "0.00", "-5.00", "10000000.00", "abc", ""} {
		_, err := env.svc.Create(ctx, func() domain.ProductInput {
			in := validInput()
			in.Price = price
			return in
		}())
		require.Error(t, err, "price=%q", price)

		verrs, ok := err.(*validation.Errors)
		require.True(t, ok, "price=%q", price)
		assert.Equal(t, "price", verrs.Fields[0].Field)
	}

	// boundary value is accepted
	product := env.mustCreate(t, ctx, func(in *domain.ProductInput) {
		in.Price = "9999999.99"
	})
	assert.EqualValues(t, 999_999_999, product.PriceCents)
}

func TestUpdateProduct(t *testing.T) {
	env := newTestEnv(t)
	ctx := actorContext(env)

	product := env.mustCreate(t, ctx, nil)
	createdAt := product.CreatedAt
	env.clock.Advance(2 * time.Hour)

	updated, err := env.svc.Update(ctx, product.ID, domain.ProductInput{
		Name:        "USB-C Cable v2",
		Description: "Braided 3m charging cable",
		Category:    "electronics",
		Price:       "24.50",
		Stock:       10,
		IsActive:    false,
	})
	require.NoError(t, err)

	assert.Equal(t, "USB-C Cable v2", updated.Name)
	assert.EqualValues(t, 2450, updated.PriceCents)
	assert.False(t, updated.IsActive)
	assert.Equal(t, createdAt, updated.CreatedAt)
	assert.Equal(t, env.clock.Now(), updated.UpdatedAt)
}

func TestUpdateMissingProduct(t *testing.T) {
	env := newTestEnv(t)
	ctx := actorContext(env)

	_, err := env.svc.Update(ctx, env.node.Generate(), validInput())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteProduct(t *testing.T) {
	env := newTestEnv(t)
	ctx := actorContext(env)

	product := env.mustCreate(t, ctx, nil)
	require.NoError(t, env.svc.Delete(ctx, product.ID))

	_, err := env.svc.Get(ctx, product.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteMissingProduct(t *testing.T) {
	env := newTestEnv(t)
	ctx := actorContext(env)

	err := env.svc.Delete(ctx, env.node.Generate())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteRequiresActor(t *testing.T) {
	env := newTestEnv(t)
	product := env.mustCreate(t, actorContext(env), nil)

	err := env.svc.Delete(context.Background(), product.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestListPageTextSearch(t *testing.T) {
	env := newTestEnv(t)
	ctx := actorContext(env)

	env.mustCreate(t, ctx, func(in *domain.ProductInput) {
		in.Name = "Wireless Mouse"
		in.Description = "Ergonomic shape"
	})
	env.mustCreate(t, ctx, func(in *domain.ProductInput) {
		in.Name = "Keyboard"
		in.Description = "Includes wireless dongle"
	})
	env.mustCreate(t, ctx, func(in *domain.ProductInput) {
		in.Name = "Desk Lamp"
		in.Description = "Warm light"
		in.Category = "home"
	})

	// matches name or description, case-insensitively
	page, err := env.svc.ListPage(ctx, domain.ListQuery{Query: "WIRELESS", Page: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "Keyboard", page[0].Name)
	assert.Equal(t, "Wireless Mouse", page[1].Name)

	// matches against category too
	page, err = env.svc.ListPage(ctx, domain.ListQuery{Query: "home", Page: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Desk Lamp", page[0].Name)
}

func TestListPageCombinesFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := actorContext(env)

	env.mustCreate(t, ctx, func(in *domain.ProductInput) {
		in.Name = "Cable Red"
	})
	env.mustCreate(t, ctx, func(in *domain.ProductInput) {
		in.Name = "Cable Blue"
		in.IsActive = false
	})
	env.mustCreate(t, ctx, func(in *domain.ProductInput) {
		in.Name = "Cable Mount"
		in.Category = "accessories"
	})

	page, err := env.svc.ListPage(ctx, domain.ListQuery{
		Query:    "cable",
		Category: "electronics",
		Status:   "active",
		Page:     1,
	})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Cable Red", page[0].Name)
}

func TestListPagePriceSortBreaksTiesByID(t *testing.T) {
	env := newTestEnv(t)
	ctx := actorContext(env)

	first := env.mustCreate(t, ctx, func(in *domain.ProductInput) {
		in.Name = "Zeta"
		in.Price = "10.00"
	})
	second := env.mustCreate(t, ctx, func(in *domain.ProductInput) {
		in.Name = "Alpha"
		in.Price = "10.00"
	})

	page, err := env.svc.ListPage(ctx, domain.ListQuery{SortBy: "price-asc", Page: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, first.ID, page[0].ID)
	assert.Equal(t, second.ID, page[1].ID)
}

func TestListPageUnknownSortFallsBackToName(t *testing.T) {
	env := newTestEnv(t)
	ctx := actorContext(env)

	env.mustCreate(t, ctx, func(in *domain.ProductInput) { in.Name = "Bravo" })
	env.mustCreate(t, ctx, func(in *domain.ProductInput) { in.Name = "Alpha" })

	page, err := env.svc.ListPage(ctx, domain.ListQuery{SortBy: "nonsense", Page: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "Alpha", page[0].Name)
	assert.Equal(t, "Bravo", page[1].Name)
}

func TestListPagePagination(t *testing.T) {
	env := newTestEnv(t)
	ctx := actorContext(env)

	for i := 0; i < 25; i++ {
		env.mustCreate(t, ctx, func(in *domain.ProductInput) {
			in.Name = fmt.Sprintf("Widget %03d", i)
		})
	}

	page, err := env.svc.ListPage(ctx, domain.ListQuery{Page: 3})
	require.NoError(t, err)
	assert.Len(t, page, 5)
	assert.Equal(t, "Widget 020", page[0].Name)

	// past the last page is empty, not an error
	page, err = env.svc.ListPage(ctx, domain.ListQuery{Page: 4})
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestCountPages(t *testing.T) {
	env := newTestEnv(t)
	ctx := actorContext(env)

	pages, err := env.svc.CountPages(ctx, domain.ListQuery{})
	require.NoError(t, err)
	assert.Zero(t, pages)

	for i := 0; i < 21; i++ {
		env.mustCreate(t, ctx, func(in *domain.ProductInput) {
			in.Name = fmt.Sprintf("Widget %03d", i)
		})
	}

	pages, err = env.svc.CountPages(ctx, domain.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 3, pages)
}

func TestCategories(t *testing.T) {
	env := newTestEnv(t)
	ctx := actorContext(env)

	env.mustCreate(t, ctx, func(in *domain.ProductInput) { in.Category = "home" })
	env.mustCreate(t, ctx, func(in *domain.ProductInput) { in.Category = "electronics" })
	env.mustCreate(t, ctx, func(in *domain.ProductInput) { in.Category = "electronics" })
	env.mustCreate(t, ctx, func(in *domain.ProductInput) {
		in.Category = "garden"
		in.IsActive = false
	})

	categories, err := env.svc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"electronics", "home"}, categories)
}
