package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/acmelabs/backoffice/internal/actorctx"
	"github.com/acmelabs/backoffice/internal/clock"
	"github.com/acmelabs/backoffice/internal/config"
	customerdomain "github.com/acmelabs/backoffice/internal/customer/domain"
	"github.com/acmelabs/backoffice/internal/invoice/domain"
	"github.com/acmelabs/backoffice/internal/validation"
	"github.com/acmelabs/backoffice/pkg/money"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Largest storable amount, $92,233,720,368,547.75.
const amountMaxCents = money.Cents(9_223_372_036_854_775)

type Params struct {
	fx.In

	Log       *zap.Logger
	Repo      domain.Repository
	Customers customerdomain.Repository
	GenID     *snowflake.Node
	Clock     clock.Clock
	Dashboard *config.DashboardConfigHolder
}

type service struct {
	log       *zap.Logger
	repo      domain.Repository
	customers customerdomain.Repository
	genID     *snowflake.Node
	clock     clock.Clock
	dashboard *config.DashboardConfigHolder
}

// New constructs the invoice service.
func New(p Params) domain.Service {
	return &service{
		log:       p.Log,
		repo:      p.Repo,
		customers: p.Customers,
		genID:     p.GenID,
		clock:     p.Clock,
		dashboard: p.Dashboard,
	}
}

func storeErr(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}

// validateInput checks every field and reports all failures together.
func (s *service) validateInput(ctx context.Context, input domain.InvoiceInput) (snowflake.ID, money.Cents, error) {
	errs := &validation.Errors{}

	var customerID snowflake.ID
	if strings.TrimSpace(input.CustomerID) == "" {
		errs.Add("customer_id", "required", "Please select a customer.")
	} else {
		parsed, err := snowflake.ParseString(strings.TrimSpace(input.CustomerID))
		if err != nil {
			errs.Add("customer_id", "invalid", "Please select a customer.")
		} else {
			exists, err := s.customers.Exists(ctx, parsed)
			if err != nil {
				return 0, 0, storeErr(err)
			}
			if !exists {
				errs.Add("customer_id", "unknown", "Please select a customer.")
			}
			customerID = parsed
		}
	}

	cents, err := money.ParseDollars(input.Amount)
	switch {
	case err != nil:
		errs.Add("amount", "invalid", "Please enter a valid amount with at most 2 decimal places.")
	case cents <= 0:
		errs.Add("amount", "not_positive", "Please enter an amount greater than $0.")
	case cents > amountMaxCents:
		errs.Add("amount", "too_large", "Amount exceeds the maximum allowed value.")
	}

	if input.Status != domain.StatusPending && input.Status != domain.StatusPaid {
		errs.Add("status", "invalid", "Please select an invoice status.")
	}

	if errs.Empty() {
		return customerID, cents, nil
	}
	return 0, 0, errs
}

func (s *service) Create(ctx context.Context, input domain.InvoiceInput) (*domain.Invoice, error) {
	if _, ok := actorctx.ActorIDFromContext(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	customerID, cents, err := s.validateInput(ctx, input)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	invoice := &domain.Invoice{
		ID:          s.genID.Generate(),
		CustomerID:  customerID,
		AmountCents: cents,
		Status:      input.Status,
		Date:        now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, invoice); err != nil {
		s.log.Error("failed to create invoice", zap.Error(err))
		return nil, storeErr(err)
	}

	s.log.Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("status", invoice.Status),
	)
	return invoice, nil
}

func (s *service) Update(ctx context.Context, id snowflake.ID, input domain.InvoiceInput) (*domain.Invoice, error) {
	if _, ok := actorctx.ActorIDFromContext(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	customerID, cents, err := s.validateInput(ctx, input)
	if err != nil {
		return nil, err
	}

	invoice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}

	invoice.CustomerID = customerID
	invoice.AmountCents = cents
	invoice.Status = input.Status
	invoice.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, invoice); err != nil {
		s.log.Error("failed to update invoice", zap.Error(err))
		return nil, storeErr(err)
	}

	s.log.Info("invoice updated", zap.String("invoice_id", invoice.ID.String()))
	return invoice, nil
}

func (s *service) Delete(ctx context.Context, id snowflake.ID) error {
	if _, ok := actorctx.ActorIDFromContext(ctx); !ok {
		return domain.ErrUnauthorized
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		s.log.Error("failed to delete invoice", zap.Error(err))
		return storeErr(err)
	}

	s.log.Info("invoice deleted", zap.String("invoice_id", id.String()))
	return nil
}

func (s *service) Get(ctx context.Context, id snowflake.ID) (*domain.InvoiceForm, error) {
	invoice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	return &domain.InvoiceForm{
		ID:         invoice.ID,
		CustomerID: invoice.CustomerID,
		Amount:     invoice.AmountCents.Dollars(),
		Status:     invoice.Status,
	}, nil
}

func (s *service) Latest(ctx context.Context) ([]domain.LatestInvoice, error) {
	rows, err := s.repo.Latest(ctx, s.dashboard.Get().LatestInvoices)
	if err != nil {
		s.log.Error("failed to load latest invoices", zap.Error(err))
		return nil, storeErr(err)
	}

	latest := make([]domain.LatestInvoice, 0, len(rows))
	for _, row := range rows {
		latest = append(latest, domain.LatestInvoice{
			ID:       row.ID,
			Name:     row.Name,
			Email:    row.Email,
			ImageURL: row.ImageURL,
			Amount:   money.Cents(row.AmountCents).Format(),
		})
	}
	return latest, nil
}

func (s *service) ListFiltered(ctx context.Context, query string, page int) ([]domain.TableRow, error) {
	pageSize := s.dashboard.Get().PageSize
	if page < 1 {
		page = 1
	}

	rows, err := s.repo.FindFiltered(ctx, query, pageSize, (page-1)*pageSize)
	if err != nil {
		s.log.Error("failed to list invoices", zap.Error(err))
		return nil, storeErr(err)
	}

	table := make([]domain.TableRow, 0, len(rows))
	for _, row := range rows {
		table = append(table, domain.TableRow{
			ID:       row.ID,
			Name:     row.Name,
			Email:    row.Email,
			ImageURL: row.ImageURL,
			Amount:   money.Cents(row.AmountCents).Format(),
			Date:     money.FormatDate(row.Date),
			Status:   row.Status,
		})
	}
	return table, nil
}

func (s *service) CountPages(ctx context.Context, query string) (int, error) {
	pageSize := s.dashboard.Get().PageSize

	total, err := s.repo.CountFiltered(ctx, query)
	if err != nil {
		s.log.Error("failed to count invoices", zap.Error(err))
		return 0, storeErr(err)
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize)), nil
}

func (s *service) CardData(ctx context.Context) (*domain.CardData, error) {
	g, gctx := errgroup.WithContext(ctx)

	var (
		invoiceCount  int64
		customerCount int64
		totals        *domain.StatusTotals
	)

	g.Go(func() error {
		var err error
		invoiceCount, err = s.repo.Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		customerCount, err = s.customers.Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		totals, err = s.repo.Totals(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Error("failed to gather invoice card data", zap.Error(err))
		return nil, storeErr(err)
	}

	return &domain.CardData{
		NumberOfInvoices:  invoiceCount,
		NumberOfCustomers: customerCount,
		TotalPaid:         money.Cents(totals.PaidCents).Format(),
		TotalPending:      money.Cents(totals.PendingCents).Format(),
	}, nil
}
