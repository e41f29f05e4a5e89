package service

import (
	"context"
	"fmt"

	"github.com/acmelabs/backoffice/internal/revenue/domain"
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

// New constructs the revenue service.
func New(p Params) domain.Service {
	return &service{log: p.Log, repo: p.Repo}
}

func (s *service) List(ctx context.Context) ([]domain.Revenue, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("failed to load revenue", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return rows, nil
}
