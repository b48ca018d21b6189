package domain

import "github.com/shopspring/decimal"

// CategorySales is the summed line revenue for one product category.
// Products without a category share the nil bucket.
type CategorySales struct {
	Category   *string         `json:"category"`
	TotalSales decimal.Decimal `json:"total_sales"`
}

// MonthlyRevenue is completed-order revenue for a calendar month labelled YYYY-MM.
type MonthlyRevenue struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}
