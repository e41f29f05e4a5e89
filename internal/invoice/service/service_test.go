package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/acmelabs/backoffice/internal/actorctx"
	"github.com/acmelabs/backoffice/internal/clock"
	"github.com/acmelabs/backoffice/internal/config"
	customerdomain "github.com/acmelabs/backoffice/internal/customer/domain"
	customerrepo "github.com/acmelabs/backoffice/internal/customer/repository"
	"github.com/acmelabs/backoffice/internal/invoice/domain"
	"github.com/acmelabs/backoffice/internal/invoice/repository"
	"github.com/acmelabs/backoffice/internal/validation"
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
	svc   domain.Service
	db    *gorm.DB
	clock *clock.FakeClock
	node  *snowflake.Node
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Exec(schemaDDL).Error)

	node, err := snowflake.NewNode(3)
	require.NoError(t, err)

	fc := clock.NewFakeClock(time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC))
	svc := New(Params{
		Log:       zaptest.NewLogger(t),
		Repo:      repository.New(db),
		Customers: customerrepo.New(db),
		GenID:     node,
		Clock:     fc,
		Dashboard: config.NewStaticDashboardConfigHolder(config.DefaultDashboardConfig()),
	})

	return &testEnv{svc: svc, db: db, clock: fc, node: node}
}

func (env *testEnv) addCustomer(t *testing.T, name, email string) snowflake.ID {
	t.Helper()
	customer := &customerdomain.Customer{
		ID:       env.node.Generate(),
		Name:     name,
		Email:    email,
		ImageURL: "/customers/" + name + ".png",
	}
	require.NoError(t, env.db.Create(customer).Error)
	return customer.ID
}

func actorContext(env *testEnv) context.Context {
	return actorctx.WithActorID(context.Background(), env.node.Generate())
}

func TestCreateInvoice(t *testing.T) {
	env := newTestEnv(t)
	ctx := actorContext(env)
	customerID := env.addCustomer(t, "Acme", "billing@acme.test")

	invoice, err := env.svc.Create(ctx, domain.InvoiceInput{
		CustomerID: customerID.String(),
		Amount:     "250.75",
		Status:     domain.StatusPending,
	})
	require.NoError(t, err)

	assert.Equal(t, customerID, invoice.CustomerID)
	assert.EqualValues(t, 25075, invoice.AmountCents)
	assert.Equal(t, domain.StatusPending, invoice.Status)
	assert.Equal(t, env.clock.Now(), invoice.Date)
}

func TestCreateInvoiceRequiresActor(t *testing.T) {
	env := newTestEnv(t)
	customerID := env.addCustomer(t, "Acme", "billing@acme.test")

	_, err := env.svc.Create(context.Background(), domain.InvoiceInput{
		CustomerID: customerID.String(),
		Amount:     "10.00",
		Status:     domain.StatusPaid,
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestCreateInvoiceReportsEveryInvalidField(t *testing.T) {
	env := newTestEnv(t)
	ctx := actorContext(env)

	_, err := env.svc.Create(ctx, domain.InvoiceInput{
		CustomerID: "",
		Amount:     "-3",
		Status:     "overdue",
	})
	require.Error(t, err)

	verrs, ok := err.(*validation.Errors)
	require.True(t, ok)

	fields := make([]string, 0, len(verrs.Fields))
	for _, fe := range verrs.Fields {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"customer_id", "amount", "status"}, fields)
}

func TestCreateInvoiceUnknownCustomer(t *testing.T) {
	env := newTestEnv(t)
	ctx := actorContext(env)

	_, err := env.svc.Create(ctx, domain.InvoiceInput{
		CustomerID: env.node.Generate().String(),
		Amount:     "10.00",
		Status:     domain.StatusPaid,
	})
	require.Error(t, err)

	verrs, ok := err.(*validation.Errors)
	require.True(t, ok)
	require.Len(t, verrs.Fields, 1)
	assert.Equal(t, "customer_id", verrs.Fields[0].Field)
}

func TestUpdateInvoice(t *testing.T) {
	env := newTestEnv(t)
	ctx := actorContext(env)
	customerID := env.addCustomer(t, "Acme", "billing@acme.test")

	invoice, err := env.svc.Create(ctx, domain.InvoiceInput{
		CustomerID: customerID.String(),
		Amount:     "100.00",
		Status:     domain.StatusPending,
	})
	require.NoError(t, err)

	env.clock.Advance(time.Hour)
	updated, err := env.svc.Update(ctx, invoice.ID, domain.InvoiceInput{
		CustomerID: customerID.String(),
		Amount:     "150.00",
		Status:     domain.StatusPaid,
	})
	require.NoError(t, err)

	assert.EqualValues(t, 15000, updated.AmountCents)
	assert.Equal(t, domain.StatusPaid, updated.Status)
	assert.Equal(t, invoice.Date, updated.Date)
	assert.Equal(t, env.clock.Now(), updated.UpdatedAt)
}

func TestDeleteMissingInvoice(t *testing.T) {
	env := newTestEnv(t)
	err := env.svc.Delete(actorContext(env), env.node.Generate())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetInvoiceForm(t *testing.T) {
	env := newTestEnv(t)
	ctx := actorContext(env)
	customerID := env.addCustomer(t, "Acme", "billing@acme.test")

	invoice, err := env.svc.Create(ctx, domain.InvoiceInput{
		CustomerID: customerID.String(),
		Amount:     "19.99",
		Status:     domain.StatusPending,
	})
	require.NoError(t, err)

	form, err := env.svc.Get(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, "19.99", form.Amount)
	assert.Equal(t, customerID, form.CustomerID)
}

func TestLatestInvoices(t *testing.T) {
	env := newTestEnv(t)
	ctx := actorContext(env)
	customerID := env.addCustomer(t, "Acme", "billing@acme.test")

	for i := 0; i < 7; i++ {
		_, err := env.svc.Create(ctx, domain.InvoiceInput{
			CustomerID: customerID.String(),
			Amount:     fmt.Sprintf("%d.00", (i+1)*10),
			Status:     domain.StatusPending,
		})
		require.NoError(t, err)
		env.clock.Advance(24 * time.Hour)
	}

	latest, err := env.svc.Latest(ctx)
	require.NoError(t, err)

	require.Len(t, latest, 5)
	assert.Equal(t, "$70.00", latest[0].Amount)
	assert.Equal(t, "Acme", latest[0].Name)
	assert.Equal(t, "$30.00", latest[4].Amount)
}

func TestListFilteredByCustomerAndStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := actorContext(env)
	acme := env.addCustomer(t, "Acme", "billing@acme.test")
	globex := env.addCustomer(t, "Globex", "ap@globex.test")

	_, err := env.svc.Create(ctx, domain.InvoiceInput{
		CustomerID: acme.String(), Amount: "10.00", Status: domain.StatusPaid,
	})
	require.NoError(t, err)
	_, err = env.svc.Create(ctx, domain.InvoiceInput{
		CustomerID: globex.String(), Amount: "20.00", Status: domain.StatusPending,
	})
	require.NoError(t, err)

	rows, err := env.svc.ListFiltered(ctx, "globex", 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Globex", rows[0].Name)
	assert.Equal(t, "$20.00", rows[0].Amount)

	rows, err = env.svc.ListFiltered(ctx, "PAID", 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Acme", rows[0].Name)
}

func TestCountInvoicePages(t *testing.T) {
	env := newTestEnv(t)
	ctx := actorContext(env)
	customerID := env.addCustomer(t, "Acme", "billing@acme.test")

	for i := 0; i < 11; i++ {
		_, err := env.svc.Create(ctx, domain.InvoiceInput{
			CustomerID: customerID.String(),
			Amount:     "5.00",
			Status:     domain.StatusPending,
		})
		require.NoError(t, err)
	}

	pages, err := env.svc.CountPages(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 2, pages)

	pages, err = env.svc.CountPages(ctx, "no-such-customer")
	require.NoError(t, err)
	assert.Zero(t, pages)
}

func TestInvoiceCardData(t *testing.T) {
	env := newTestEnv(t)
	ctx := actorContext(env)
	acme := env.addCustomer(t, "Acme", "billing@acme.test")
	env.addCustomer(t, "Globex", "ap@globex.test")

	_, err := env.svc.Create(ctx, domain.InvoiceInput{
		CustomerID: acme.String(), Amount: "100.00", Status: domain.StatusPaid,
	})
	require.NoError(t, err)
	_, err = env.svc.Create(ctx, domain.InvoiceInput{
		CustomerID: acme.String(), Amount: "40.50", Status: domain.StatusPending,
	})
	require.NoError(t, err)

	cards, err := env.svc.CardData(ctx)
	require.NoError(t, err)

	assert.EqualValues(t, 2, cards.NumberOfInvoices)
	assert.EqualValues(t, 2, cards.NumberOfCustomers)
	assert.Equal(t, "$100.00", cards.TotalPaid)
	assert.Equal(t, "$40.50", cards.TotalPending)
}
