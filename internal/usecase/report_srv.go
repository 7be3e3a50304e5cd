package usecase

import (
	"context"
	"encoding/json"
	"time"

	"storefront-api/internal/data/entity"
	"storefront-api/internal/data/repository"
	"storefront-api/internal/dto/response"
	"storefront-api/pkg/cache"
	"storefront-api/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type ReportService interface {
	GetReport(ctx context.Context) (*response.ReportResponse, error)
}

type reportService struct {
	repo   *repository.Repository
	cache  cache.Cache
	config utils.ReportConfig
	log    *zap.Logger
	now    func() time.Time
}

func NewReportService(repo *repository.Repository, c cache.Cache, config utils.ReportConfig, log *zap.Logger) ReportService {
	if config.RecentLimit <= 0 {
		config.RecentLimit = 5
	}
	return &reportService{
		repo:   repo,
		cache:  c,
		config: config,
		log:    log.With(zap.String("service", "report")),
		now:    time.Now,
	}
}

// GetReport aggregates dashboard counters. A fresh copy is served from cache for CacheTTL.
func (s *reportService) GetReport(ctx context.Context) (*response.ReportResponse, error) {
	if s.config.CacheTTL > 0 {
		if raw, found, err := s.cache.Get(ctx, cache.KeyReport); err == nil && found {
			var cached response.ReportResponse
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	report, err := s.build(ctx)
	if err != nil {
		return nil, err
	}

	if s.config.CacheTTL > 0 {
		if raw, err := json.Marshal(report); err == nil {
			if err := s.cache.Set(ctx, cache.KeyReport, string(raw), s.config.CacheTTL); err != nil {
				s.log.Warn("Failed to cache report", zap.Error(err))
			}
		}
	}
	return report, nil
}

func (s *reportService) build(ctx context.Context) (*response.ReportResponse, error) {
	var (
		report       response.ReportResponse
		recentUsers  []*entity.User
		recentOrders []*entity.Order
	)

	now := s.now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	delivered := entity.OrderStatusDelivered

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		report.Users, err = s.repo.User.CountAll(gctx)
		return wrap("count users", err)
	})
	g.Go(func() (err error) {
		report.Orders, err = s.repo.Order.Count(gctx, entity.OrderFilter{})
		return wrap("count orders", err)
	})
	g.Go(func() (err error) {
		report.Products, err = s.repo.Product.Count(gctx, entity.ProductFilter{})
		return wrap("count products", err)
	})
	g.Go(func() (err error) {
		report.Categories, err = s.repo.Category.CountAll(gctx)
		return wrap("count categories", err)
	})
	g.Go(func() (err error) {
		report.TodayOrders, err = s.repo.Order.CountPlacedBetween(gctx, dayStart, dayStart.AddDate(0, 0, 1))
		return wrap("count today orders", err)
	})
	g.Go(func() (err error) {
		report.DeliveredOrders, err = s.repo.Order.Count(gctx, entity.OrderFilter{Status: &delivered})
		return wrap("count delivered orders", err)
	})
	g.Go(func() (err error) {
		recentUsers, err = s.repo.User.FindAll(gctx, s.config.RecentLimit, 0)
		return wrap("recent users", err)
	})
	g.Go(func() (err error) {
		recentOrders, err = s.repo.Order.FindAll(gctx, entity.OrderFilter{}, s.config.RecentLimit, 0)
		return wrap("recent orders", err)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.RecentUsers = response.UsersToResponse(recentUsers)
	report.RecentOrders = response.OrdersToResponse(recentOrders)
	return &report, nil
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return upstream(op, err)
}
