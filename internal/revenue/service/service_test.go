package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/acmelabs/backoffice/internal/revenue/domain"
	"github.com/acmelabs/backoffice/internal/revenue/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

const revenueDDL = `
CREATE TABLE revenue (
	month TEXT PRIMARY KEY,
	revenue_cents INTEGER NOT NULL
);`

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Exec(revenueDDL).Error)
	return db
}

func TestListReturnsRows(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&domain.Revenue{Month: "Jan", RevenueCents: 200000}).Error)
	require.NoError(t, db.Create(&domain.Revenue{Month: "Feb", RevenueCents: 180000}).Error)

	svc := New(Params{Log: zaptest.NewLogger(t), Repo: repository.New(db)})

	rows, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestListMarksStoreUnavailable(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Exec(`DROP TABLE revenue`).Error)

	svc := New(Params{Log: zaptest.NewLogger(t), Repo: repository.New(db)})

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
