package postgres

import (
	"context"
	"fmt"

	"intellidash/domain"
	"intellidash/pkg/database"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const lineTotal = "order_items.price_at_purchase * order_items.quantity"

// AnalyticsRepository computes dashboard aggregates. Every method is read-only
// and runs on the request session when ctx carries one.
type AnalyticsRepository struct {
	DB *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{
		DB: db,
	}
}

// CompletedRevenue sums line totals over completed orders.
func (r *AnalyticsRepository) CompletedRevenue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal

	err := database.Conn(ctx, r.DB).
		Model(&domain.OrderItem{}).
		Select("COALESCE(SUM(" + lineTotal + "), 0)").
		Joins("JOIN orders ON orders.order_id = order_items.order_id").
		Where("orders.status = ?", domain.OrderStatusCompleted).
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum completed revenue: %w", err)
	}

	return total, nil
}

func (r *AnalyticsRepository) CountOrders(ctx context.Context) (int64, error) {
	var count int64

	if err := database.Conn(ctx, r.DB).Model(&domain.Order{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}

	return count, nil
}

func (r *AnalyticsRepository) CountOrdersByStatus(ctx context.Context, status domain.OrderStatus) (int64, error) {
	var count int64

	err := database.Conn(ctx, r.DB).
		Model(&domain.Order{}).
		Where("status = ?", status).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count %s orders: %w", status, err)
	}

	return count, nil
}

func (r *AnalyticsRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64

	if err := database.Conn(ctx, r.DB).Model(&domain.User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	return count, nil
}

type categorySalesRow struct {
	Category   *string
	TotalSales decimal.Decimal
}

// SalesPerCategory sums line totals per product category across all orders,
// largest first.
func (r *AnalyticsRepository) SalesPerCategory(ctx context.Context) ([]domain.CategorySales, error) {
	var rows []categorySalesRow

	err := database.Conn(ctx, r.DB).
		Model(&domain.Product{}).
		Select("products.category AS category, SUM(" + lineTotal + ") AS total_sales").
		Joins("JOIN order_items ON order_items.product_id = products.product_id").
		Group("products.category").
		Order("total_sales DESC").
		Order("products.category ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum sales per category: %w", err)
	}

	sales := make([]domain.CategorySales, 0, len(rows))
	for _, row := range rows {
		sales = append(sales, domain.CategorySales{
			Category:   row.Category,
			TotalSales: row.TotalSales,
		})
	}

	return sales, nil
}

type monthlyRevenueRow struct {
	Month   string
	Revenue decimal.Decimal
}

// MonthlyRevenueTrend groups completed revenue by YYYY-MM, oldest first.
// Months without completed revenue are absent rather than zero-filled.
func (r *AnalyticsRepository) MonthlyRevenueTrend(ctx context.Context) ([]domain.MonthlyRevenue, error) {
	conn := database.Conn(ctx, r.DB)
	month := monthLabel(conn.Dialector.Name(), "orders.created_at")

	var rows []monthlyRevenueRow
	err := conn.
		Model(&domain.Order{}).
		Select(month + " AS month, SUM(" + lineTotal + ") AS revenue").
		Joins("JOIN order_items ON order_items.order_id = orders.order_id").
		Where("orders.status = ?", domain.OrderStatusCompleted).
		Group("month").
		Order("month ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute monthly revenue: %w", err)
	}

	trend := make([]domain.MonthlyRevenue, 0, len(rows))
	for _, row := range rows {
		trend = append(trend, domain.MonthlyRevenue{
			Month:   row.Month,
			Revenue: row.Revenue,
		})
	}

	return trend, nil
}
