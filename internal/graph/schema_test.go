package graph

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"intellidash/domain"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProducts struct{ products []domain.Product }

func (f *fakeProducts) GetAllProducts(context.Context) ([]domain.Product, error) {
	return f.products, nil
}

func (f *fakeProducts) GetProductByID(_ context.Context, id int64) (*domain.Product, error) {
	for _, p := range f.products {
		if int64(p.ProductID) == id {
			return &p, nil
		}
	}
	return nil, &domain.NotFoundError{Entity: "product", ID: id}
}

type fakeUsers struct{ users []domain.User }

func (f *fakeUsers) GetAllUsers(context.Context) ([]domain.User, error) {
	return f.users, nil
}

type fakeAnalytics struct {
	err error
}

func (f *fakeAnalytics) TotalRevenue(context.Context) (decimal.Decimal, error) {
	return decimal.RequireFromString("1050.75"), f.err
}

func (f *fakeAnalytics) TotalOrders(context.Context) (int64, error) { return 12, f.err }

func (f *fakeAnalytics) TotalCustomers(context.Context) (int64, error) { return 5, f.err }

func (f *fakeAnalytics) AverageOrderValue(context.Context) (decimal.Decimal, error) {
	return decimal.RequireFromString("87.5"), f.err
}

func (f *fakeAnalytics) SalesPerCategory(context.Context) ([]domain.CategorySales, error) {
	return []domain.CategorySales{
		{Category: strPtr("Electronics"), TotalSales: decimal.RequireFromString("900.10")},
		{Category: strPtr("Books"), TotalSales: decimal.RequireFromString("150.65")},
		{Category: nil, TotalSales: decimal.RequireFromString("12")},
	}, f.err
}

func (f *fakeAnalytics) MonthlyRevenueTrend(context.Context) ([]domain.MonthlyRevenue, error) {
	return []domain.MonthlyRevenue{
		{Month: "2024-01", Revenue: decimal.RequireFromString("400")},
		{Month: "2024-02", Revenue: decimal.RequireFromString("650.75")},
	}, f.err
}

func strPtr(s string) *string { return &s }

type fakeNLQuery struct {
	result domain.NLQueryResult
	err    error
	prompt string
}

func (f *fakeNLQuery) Query(_ context.Context, prompt string) (domain.NLQueryResult, error) {
	f.prompt = prompt
	return f.result, f.err
}

func newTestSchema(t *testing.T, nl *fakeNLQuery) graphql.Schema {
	t.Helper()

	country := "Germany"
	age := 31
	schema, err := NewSchema(Services{
		Product: &fakeProducts{products: []domain.Product{
			{ProductID: 1, Name: "Lamp", Category: strPtr("Home & Kitchen"), Price: decimal.RequireFromString("19.99"), CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
			{ProductID: 2, Name: "Mystery Box", Price: decimal.RequireFromString("3")},
		}},
		User: &fakeUsers{users: []domain.User{
			{UserID: 7, Email: "a@example.com", Country: &country, Age: &age},
			{UserID: 8, Email: "b@example.com"},
		}},
		Analytics: &fakeAnalytics{},
		NLQuery:   nl,
	})
	require.NoError(t, err)

	return schema
}

func exec(t *testing.T, schema graphql.Schema, query string, vars map[string]interface{}) *graphql.Result {
	t.Helper()
	return Execute(context.Background(), schema, query, vars, "")
}

func TestAggregateFields(t *testing.T) {
	result := exec(t, newTestSchema(t, &fakeNLQuery{}), `{
		totalRevenue
		totalOrders
		totalCustomers
		averageOrderValue
		salesPerCategory { category totalSales }
		monthlyRevenueTrend { month revenue }
	}`, nil)
	require.Empty(t, result.Errors)

	data := result.Data.(map[string]interface{})
	assert.Equal(t, 1050.75, data["totalRevenue"])
	assert.Equal(t, 12, data["totalOrders"])
	assert.Equal(t, 5, data["totalCustomers"])
	assert.Equal(t, 87.5, data["averageOrderValue"])

	sales := data["salesPerCategory"].([]interface{})
	require.Len(t, sales, 3)
	assert.Equal(t, map[string]interface{}{"category": "Electronics", "totalSales": 900.1}, sales[0])
	assert.Equal(t, map[string]interface{}{"category": nil, "totalSales": 12.0}, sales[2])

	trend := data["monthlyRevenueTrend"].([]interface{})
	require.Len(t, trend, 2)
	assert.Equal(t, map[string]interface{}{"month": "2024-02", "revenue": 650.75}, trend[1])
}

func TestProductsAndUsers(t *testing.T) {
	result := exec(t, newTestSchema(t, &fakeNLQuery{}), `{
		products { productId name category price createdAt }
		users { userId email country age }
	}`, nil)
	require.Empty(t, result.Errors)

	data := result.Data.(map[string]interface{})
	products := data["products"].([]interface{})
	require.Len(t, products, 2)
	product := products[0].(map[string]interface{})
	assert.Equal(t, 1, product["productId"])
	assert.Equal(t, "Home & Kitchen", product["category"])
	assert.Equal(t, 19.99, product["price"])
	assert.Equal(t, "2024-01-02T03:04:05Z", product["createdAt"])

	uncategorized := products[1].(map[string]interface{})
	assert.Contains(t, uncategorized, "category")
	assert.Nil(t, uncategorized["category"])

	users := data["users"].([]interface{})
	require.Len(t, users, 2)
	assert.Equal(t, "Germany", users[0].(map[string]interface{})["country"])
	assert.Equal(t, 31, users[0].(map[string]interface{})["age"])
	assert.Nil(t, users[1].(map[string]interface{})["country"])
}

func TestProductByID(t *testing.T) {
	schema := newTestSchema(t, &fakeNLQuery{})
	query := `query($id: Int!) { product(productId: $id) { name } }`

	result := exec(t, schema, query, map[string]interface{}{"id": 1})
	require.Empty(t, result.Errors)
	assert.Equal(t, "Lamp", result.Data.(map[string]interface{})["product"].(map[string]interface{})["name"])

	result = exec(t, schema, query, map[string]interface{}{"id": 404})
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "product with ID 404 not found", result.Errors[0].Message)
}

func TestProductByNonPositiveIDIsNotFound(t *testing.T) {
	schema := newTestSchema(t, &fakeNLQuery{})
	query := `query($id: Int!) { product(productId: $id) { name } }`

	for _, id := range []int{0, -3} {
		result := exec(t, schema, query, map[string]interface{}{"id": id})
		require.Len(t, result.Errors, 1, "id %d", id)
		assert.Equal(t, fmt.Sprintf("product with ID %d not found", id), result.Errors[0].Message)
	}
}

func TestQueryNaturalLanguage(t *testing.T) {
	rows := []map[string]any{{"category": "Books", "n": 3}}
	nl := &fakeNLQuery{result: domain.NLQuerySuccess{Data: rows}}

	result := exec(t, newTestSchema(t, nl), `{ queryNaturalLanguage(prompt: "books?") }`, nil)
	require.Empty(t, result.Errors)
	assert.Equal(t, "books?", nl.prompt)

	got := result.Data.(map[string]interface{})["queryNaturalLanguage"].(map[string]interface{})
	assert.Equal(t, "books?", got["prompt"])
	assert.Equal(t, rows, got["result"])
}

func TestQueryNaturalLanguageFailure(t *testing.T) {
	nl := &fakeNLQuery{result: domain.NLQueryFailure{Message: "model unavailable"}}

	result := exec(t, newTestSchema(t, nl), `{ queryNaturalLanguage(prompt: "books?") }`, nil)
	require.Empty(t, result.Errors)

	got := result.Data.(map[string]interface{})["queryNaturalLanguage"]
	assert.Equal(t, map[string]interface{}{"error": "model unavailable"}, got)
}

func TestQueryNaturalLanguageEmptyPrompt(t *testing.T) {
	nl := &fakeNLQuery{err: domain.ErrEmptyPrompt}

	result := exec(t, newTestSchema(t, nl), `{ queryNaturalLanguage(prompt: "  ") }`, nil)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, "prompt cannot be empty")
}

func TestResolverErrorsSurface(t *testing.T) {
	schema, err := NewSchema(Services{
		Product:   &fakeProducts{},
		User:      &fakeUsers{},
		Analytics: &fakeAnalytics{err: errors.New("database unavailable")},
		NLQuery:   &fakeNLQuery{},
	})
	require.NoError(t, err)

	result := exec(t, schema, `{ totalOrders }`, nil)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "database unavailable", result.Errors[0].Message)
}

func TestJSONScalarIsExposed(t *testing.T) {
	result := exec(t, newTestSchema(t, &fakeNLQuery{}), `{ __type(name: "JSON") { name kind } }`, nil)
	require.Empty(t, result.Errors)
	assert.Equal(t, map[string]interface{}{"name": "JSON", "kind": "SCALAR"}, result.Data.(map[string]interface{})["__type"])
}

func TestParseJSONLiteral(t *testing.T) {
	literal := ast.NewObjectValue(&ast.ObjectValue{Fields: []*ast.ObjectField{
		ast.NewObjectField(&ast.ObjectField{
			Name:  ast.NewName(&ast.Name{Value: "tags"}),
			Value: ast.NewListValue(&ast.ListValue{Values: []ast.Value{ast.NewStringValue(&ast.StringValue{Value: "a"})}}),
		}),
		ast.NewObjectField(&ast.ObjectField{
			Name:  ast.NewName(&ast.Name{Value: "ok"}),
			Value: ast.NewBooleanValue(&ast.BooleanValue{Value: true}),
		}),
	}})

	assert.Equal(t, map[string]interface{}{
		"tags": []interface{}{"a"},
		"ok":   true,
	}, parseJSONLiteral(literal))
}
