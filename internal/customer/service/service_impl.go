package service

import (
	"context"
	"fmt"

	"github.com/acmelabs/backoffice/internal/customer/domain"
	"github.com/acmelabs/backoffice/pkg/money"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log  *zap.Logger
	Repo domain.Repository
}

type service struct {
	log  *zap.Logger
	repo domain.Repository
}

// New constructs the customer service.
func New(p Params) domain.Service {
	return &service{log: p.Log, repo: p.Repo}
}

func (s *service) List(ctx context.Context) ([]domain.Field, error) {
	fields, err := s.repo.Fields(ctx)
	if err != nil {
		s.log.Error("failed to list customers", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return fields, nil
}

func (s *service) ListFiltered(ctx context.Context, query string) ([]domain.TableRow, error) {
	aggregates, err := s.repo.Aggregates(ctx, query)
	if err != nil {
		s.log.Error("failed to load customer aggregates", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	rows := make([]domain.TableRow, 0, len(aggregates))
	for _, a := range aggregates {
		rows = append(rows, domain.TableRow{
			ID:            a.ID,
			Name:          a.Name,
			Email:         a.Email,
			ImageURL:      a.ImageURL,
			TotalInvoices: a.TotalInvoices,
			TotalPending:  money.Cents(a.TotalPendingCents).Format(),
			TotalPaid:     money.Cents(a.TotalPaidCents).Format(),
		})
	}
	return rows, nil
}
