package analytics

import (
	"context"
	"fmt"

	"intellidash/domain"
	"intellidash/pkg/logger"

	"github.com/shopspring/decimal"
)

// AnalyticsRepository contract interface
type AnalyticsRepository interface {
	CompletedRevenue(ctx context.Context) (decimal.Decimal, error)
	CountOrders(ctx context.Context) (int64, error)
	CountOrdersByStatus(ctx context.Context, status domain.OrderStatus) (int64, error)
	CountUsers(ctx context.Context) (int64, error)
	SalesPerCategory(ctx context.Context) ([]domain.CategorySales, error)
	MonthlyRevenueTrend(ctx context.Context) ([]domain.MonthlyRevenue, error)
}

type analyticsService struct {
	analyticsRepo AnalyticsRepository
}

func NewAnalyticsService(analyticsRepo AnalyticsRepository) *analyticsService {
	return &analyticsService{
		analyticsRepo: analyticsRepo,
	}
}

// TotalRevenue is the revenue of completed orders.
func (s *analyticsService) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("context error: %w", err)
	}

	revenue, err := s.analyticsRepo.CompletedRevenue(ctx)
	if err != nil {
		logger.Error("failed to get total revenue", "error", err)
		return decimal.Zero, err
	}

	return revenue, nil
}

func (s *analyticsService) TotalOrders(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	count, err := s.analyticsRepo.CountOrders(ctx)
	if err != nil {
		logger.Error("failed to count orders", "error", err)
		return 0, err
	}

	return count, nil
}

func (s *analyticsService) TotalCustomers(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	count, err := s.analyticsRepo.CountUsers(ctx)
	if err != nil {
		logger.Error("failed to count customers", "error", err)
		return 0, err
	}

	return count, nil
}

// AverageOrderValue divides completed revenue by the number of completed
// orders, and is zero when there are none.
func (s *analyticsService) AverageOrderValue(ctx context.Context) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("context error: %w", err)
	}

	revenue, err := s.analyticsRepo.CompletedRevenue(ctx)
	if err != nil {
		logger.Error("failed to get completed revenue", "error", err)
		return decimal.Zero, err
	}

	completed, err := s.analyticsRepo.CountOrdersByStatus(ctx, domain.OrderStatusCompleted)
	if err != nil {
		logger.Error("failed to count completed orders", "error", err)
		return decimal.Zero, err
	}

	if completed == 0 {
		return decimal.Zero, nil
	}

	return revenue.Div(decimal.NewFromInt(completed)), nil
}

func (s *analyticsService) SalesPerCategory(ctx context.Context) ([]domain.CategorySales, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	sales, err := s.analyticsRepo.SalesPerCategory(ctx)
	if err != nil {
		logger.Error("failed to get sales per category", "error", err)
		return nil, err
	}
	if sales == nil {
		sales = []domain.CategorySales{}
	}

	return sales, nil
}

func (s *analyticsService) MonthlyRevenueTrend(ctx context.Context) ([]domain.MonthlyRevenue, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	trend, err := s.analyticsRepo.MonthlyRevenueTrend(ctx)
	if err != nil {
		logger.Error("failed to get monthly revenue trend", "error", err)
		return nil, err
	}
	if trend == nil {
		trend = []domain.MonthlyRevenue{}
	}

	return trend, nil
}
