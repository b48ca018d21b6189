package graph

import (
	"context"
	"fmt"
	"time"

	"intellidash/domain"
	"intellidash/pkg/logger"
	"intellidash/pkg/metrics"

	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"
)

type ProductService interface {
	GetAllProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id int64) (*domain.Product, error)
}

type UserService interface {
	GetAllUsers(ctx context.Context) ([]domain.User, error)
}

type AnalyticsService interface {
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
	TotalOrders(ctx context.Context) (int64, error)
	TotalCustomers(ctx context.Context) (int64, error)
	AverageOrderValue(ctx context.Context) (decimal.Decimal, error)
	SalesPerCategory(ctx context.Context) ([]domain.CategorySales, error)
	MonthlyRevenueTrend(ctx context.Context) ([]domain.MonthlyRevenue, error)
}

type NLQueryService interface {
	Query(ctx context.Context, prompt string) (domain.NLQueryResult, error)
}

type Services struct {
	Product   ProductService
	User      UserService
	Analytics AnalyticsService
	NLQuery   NLQueryService
}

// NewSchema builds the query-only dashboard schema.
func NewSchema(svc Services) (graphql.Schema, error) {
	r := &resolver{svc: svc}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type:    listOf(productType),
				Resolve: instrument("products", r.products),
			},
			"users": &graphql.Field{
				Type:    listOf(userType),
				Resolve: instrument("users", r.users),
			},
			"product": &graphql.Field{
				Type: graphql.NewNonNull(productType),
				Args: graphql.FieldConfigArgument{
					"productId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: instrument("product", r.product),
			},
			"totalRevenue": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.Float),
				Resolve: instrument("totalRevenue", r.totalRevenue),
			},
			"totalOrders": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.Int),
				Resolve: instrument("totalOrders", r.totalOrders),
			},
			"totalCustomers": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.Int),
				Resolve: instrument("totalCustomers", r.totalCustomers),
			},
			"averageOrderValue": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.Float),
				Resolve: instrument("averageOrderValue", r.averageOrderValue),
			},
			"salesPerCategory": &graphql.Field{
				Type:    listOf(salesByCategoryType),
				Resolve: instrument("salesPerCategory", r.salesPerCategory),
			},
			"monthlyRevenueTrend": &graphql.Field{
				Type:    listOf(monthlyRevenueType),
				Resolve: instrument("monthlyRevenueTrend", r.monthlyRevenueTrend),
			},
			"queryNaturalLanguage": &graphql.Field{
				Type: graphql.NewNonNull(JSON),
				Args: graphql.FieldConfigArgument{
					"prompt": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: instrument("queryNaturalLanguage", r.queryNaturalLanguage),
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{Query: query})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("failed to build graphql schema: %w", err)
	}

	return schema, nil
}

func listOf(t graphql.Type) graphql.Output {
	return graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t)))
}

func instrument(field string, fn graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		start := time.Now()
		value, err := fn(p)
		metrics.GraphQLResolverDuration.WithLabelValues(field).Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.GraphQLResolverErrors.WithLabelValues(field).Inc()
			logger.Warn("graphql resolver failed", "field", field, "error", err)
		}
		return value, err
	}
}
