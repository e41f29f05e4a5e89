package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/acmelabs/backoffice/internal/config"
	productdomain "github.com/acmelabs/backoffice/internal/product/domain"
	"github.com/acmelabs/backoffice/internal/report/domain"
	"github.com/acmelabs/backoffice/pkg/money"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Params struct {
	fx.In

	Log       *zap.Logger
	Products  productdomain.Repository
	Dashboard *config.DashboardConfigHolder
}

type service struct {
	log       *zap.Logger
	products  productdomain.Repository
	dashboard *config.DashboardConfigHolder
}

// New constructs the report service.
func New(p Params) domain.Service {
	return &service{
		log:       p.Log,
		products:  p.Products,
		dashboard: p.Dashboard,
	}
}

// The reports read through the product repository, so its store
// sentinel marks unavailable reads here too.
func storeErr(err error) error {
	return fmt.Errorf("%w: %v", productdomain.ErrStoreUnavailable, err)
}

func (s *service) CategoryHistogram(ctx context.Context) ([]domain.CategoryBucket, error) {
	counts, err := s.products.CountByCategory(ctx)
	if err != nil {
		s.log.Error("failed to build category histogram", zap.Error(err))
		return nil, storeErr(err)
	}

	buckets := make([]domain.CategoryBucket, 0, len(counts))
	for _, c := range counts {
		buckets = append(buckets, domain.CategoryBucket{Category: c.Category, Count: c.Count})
	}
	return buckets, nil
}

func (s *service) LowStockAlerts(ctx context.Context) ([]domain.LowStockAlert, error) {
	threshold := int64(s.dashboard.Get().LowStockThreshold)

	products, err := s.products.FindLowStock(ctx, threshold)
	if err != nil {
		s.log.Error("failed to load low stock products", zap.Error(err))
		return nil, storeErr(err)
	}

	alerts := make([]domain.LowStockAlert, 0, len(products))
	for _, p := range products {
		severity := domain.SeverityLowStock
		if p.Stock == 0 {
			severity = domain.SeverityOutOfStock
		}
		alerts = append(alerts, domain.LowStockAlert{
			ID:       p.ID,
			Name:     p.Name,
			Category: p.Category,
			Stock:    p.Stock,
			Severity: severity,
		})
	}
	return alerts, nil
}

func (s *service) PriceExtremes(ctx context.Context) (*domain.PriceExtremes, error) {
	limit := s.dashboard.Get().PriceListSize

	g, gctx := errgroup.WithContext(ctx)

	var top, bottom []productdomain.Product
	g.Go(func() error {
		var err error
		top, err = s.products.FindByPrice(gctx, true, limit)
		return err
	})
	g.Go(func() error {
		var err error
		bottom, err = s.products.FindByPrice(gctx, false, limit)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Error("failed to load price extremes", zap.Error(err))
		return nil, storeErr(err)
	}

	return &domain.PriceExtremes{
		MostExpensive:  priceEntries(top),
		LeastExpensive: priceEntries(bottom),
	}, nil
}

func priceEntries(products []productdomain.Product) []domain.PriceEntry {
	entries := make([]domain.PriceEntry, 0, len(products))
	for _, p := range products {
		entries = append(entries, domain.PriceEntry{
			ID:       p.ID,
			Name:     p.Name,
			Category: p.Category,
			Price:    p.PriceCents.Format(),
		})
	}
	return entries
}

func (s *service) MonthlyCreationTrend(ctx context.Context) ([]domain.TrendPoint, error) {
	products, err := s.products.ActiveCreationTimes(ctx)
	if err != nil {
		s.log.Error("failed to load creation times", zap.Error(err))
		return nil, storeErr(err)
	}

	type bucket struct {
		year  int
		month time.Month
	}
	counts := make(map[bucket]int64, len(products))
	for _, p := range products {
		created := p.CreatedAt.UTC()
		counts[bucket{created.Year(), created.Month()}]++
	}

	keys := make([]bucket, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	points := make([]domain.TrendPoint, 0, len(keys))
	for _, k := range keys {
		points = append(points, domain.TrendPoint{
			Month: money.FormatMonth(k.year, k.month),
			Count: counts[k],
		})
	}
	return points, nil
}

func (s *service) CardData(ctx context.Context) (*domain.CardData, error) {
	g, gctx := errgroup.WithContext(ctx)

	var (
		activeCount    int64
		categories     []string
		inventoryValue int64
	)

	g.Go(func() error {
		var err error
		activeCount, err = s.products.CountActive(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.products.DistinctCategories(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		inventoryValue, err = s.products.SumInventoryValue(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Error("failed to gather card data", zap.Error(err))
		return nil, storeErr(err)
	}

	return &domain.CardData{
		ActiveProducts: activeCount,
		Categories:     int64(len(categories)),
		InventoryValue: money.Cents(inventoryValue).Format(),
	}, nil
}
