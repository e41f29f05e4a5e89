package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/acmelabs/backoffice/internal/customer/domain"
	"github.com/acmelabs/backoffice/internal/customer/repository"
	invoicedomain "github.com/acmelabs/backoffice/internal/invoice/domain"
	"github.com/acmelabs/backoffice/pkg/money"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

const schemaDDL = `
CREATE TABLE customers (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	image_url TEXT,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE invoices (
	id INTEGER PRIMARY KEY,
	customer_id INTEGER NOT NULL REFERENCES customers(id),
	amount_cents INTEGER NOT NULL,
	status TEXT NOT NULL,
	date DATETIME NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

type testEnv struct {
	svc  domain.Service
	db   *gorm.DB
	node *snowflake.Node
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Exec(schemaDDL).Error)

	node, err := snowflake.NewNode(4)
	require.NoError(t, err)

	svc := New(Params{
		Log:  zaptest.NewLogger(t),
		Repo: repository.New(db),
	})

	return &testEnv{svc: svc, db: db, node: node}
}

func (env *testEnv) addCustomer(t *testing.T, name, email string) snowflake.ID {
	t.Helper()
	customer := &domain.Customer{
		ID:       env.node.Generate(),
		Name:     name,
		Email:    email,
		ImageURL: "/customers/" + name + ".png",
	}
	require.NoError(t, env.db.Create(customer).Error)
	return customer.ID
}

func (env *testEnv) addInvoice(t *testing.T, customerID snowflake.ID, cents int64, status string) {
	t.Helper()
	invoice := &invoicedomain.Invoice{
		ID:          env.node.Generate(),
		CustomerID:  customerID,
		AmountCents: money.Cents(cents),
		Status:      status,
		Date:        time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, env.db.Create(invoice).Error)
}

func TestListCustomers(t *testing.T) {
	env := newTestEnv(t)
	env.addCustomer(t, "Globex", "ap@globex.test")
	env.addCustomer(t, "Acme", "billing@acme.test")

	fields, err := env.svc.List(context.Background())
	require.NoError(t, err)

	require.Len(t, fields, 2)
	assert.Equal(t, "Acme", fields[0].Name)
	assert.Equal(t, "Globex", fields[1].Name)
}

func TestListFilteredAggregates(t *testing.T) {
	env := newTestEnv(t)
	acme := env.addCustomer(t, "Acme", "billing@acme.test")
	globex := env.addCustomer(t, "Globex", "ap@globex.test")

	env.addInvoice(t, acme, 10_000, invoicedomain.StatusPaid)
	env.addInvoice(t, acme, 2_550, invoicedomain.StatusPending)
	env.addInvoice(t, globex, 500, invoicedomain.StatusPaid)

	rows, err := env.svc.ListFiltered(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "Acme", rows[0].Name)
	assert.EqualValues(t, 2, rows[0].TotalInvoices)
	assert.Equal(t, "$25.50", rows[0].TotalPending)
	assert.Equal(t, "$100.00", rows[0].TotalPaid)

	assert.Equal(t, "Globex", rows[1].Name)
	assert.EqualValues(t, 1, rows[1].TotalInvoices)
	assert.Equal(t, "$0.00", rows[1].TotalPending)
}

func TestListFilteredMatchesEmail(t *testing.T) {
	env := newTestEnv(t)
	env.addCustomer(t, "Acme", "billing@acme.test")
	env.addCustomer(t, "Globex", "ap@globex.test")

	rows, err := env.svc.ListFiltered(context.Background(), "GLOBEX.TEST")
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "Globex", rows[0].Name)
	// a customer without invoices still appears, zeroed
	assert.Zero(t, rows[0].TotalInvoices)
	assert.Equal(t, "$0.00", rows[0].TotalPaid)
}
