package graph

import (
	"fmt"

	"intellidash/domain"

	"github.com/graphql-go/graphql"
)

type resolver struct {
	svc Services
}

func (r *resolver) products(p graphql.ResolveParams) (interface{}, error) {
	products, err := r.svc.Product.GetAllProducts(p.Context)
	if err != nil {
		return nil, err
	}

	out := make([]interface{}, 0, len(products))
	for _, product := range products {
		out = append(out, productValue(product))
	}
	return out, nil
}

func (r *resolver) users(p graphql.ResolveParams) (interface{}, error) {
	users, err := r.svc.User.GetAllUsers(p.Context)
	if err != nil {
		return nil, err
	}

	out := make([]interface{}, 0, len(users))
	for _, user := range users {
		out = append(out, userValue(user))
	}
	return out, nil
}

func (r *resolver) product(p graphql.ResolveParams) (interface{}, error) {
	id, _ := p.Args["productId"].(int)

	product, err := r.svc.Product.GetProductByID(p.Context, int64(id))
	if err != nil {
		return nil, err
	}
	return productValue(*product), nil
}

func (r *resolver) totalRevenue(p graphql.ResolveParams) (interface{}, error) {
	revenue, err := r.svc.Analytics.TotalRevenue(p.Context)
	if err != nil {
		return nil, err
	}
	return revenue.InexactFloat64(), nil
}

func (r *resolver) totalOrders(p graphql.ResolveParams) (interface{}, error) {
	count, err := r.svc.Analytics.TotalOrders(p.Context)
	if err != nil {
		return nil, err
	}
	return int(count), nil
}

func (r *resolver) totalCustomers(p graphql.ResolveParams) (interface{}, error) {
	count, err := r.svc.Analytics.TotalCustomers(p.Context)
	if err != nil {
		return nil, err
	}
	return int(count), nil
}

func (r *resolver) averageOrderValue(p graphql.ResolveParams) (interface{}, error) {
	avg, err := r.svc.Analytics.AverageOrderValue(p.Context)
	if err != nil {
		return nil, err
	}
	return avg.InexactFloat64(), nil
}

func (r *resolver) salesPerCategory(p graphql.ResolveParams) (interface{}, error) {
	sales, err := r.svc.Analytics.SalesPerCategory(p.Context)
	if err != nil {
		return nil, err
	}

	out := make([]interface{}, 0, len(sales))
	for _, s := range sales {
		out = append(out, salesByCategoryValue(s))
	}
	return out, nil
}

func (r *resolver) monthlyRevenueTrend(p graphql.ResolveParams) (interface{}, error) {
	trend, err := r.svc.Analytics.MonthlyRevenueTrend(p.Context)
	if err != nil {
		return nil, err
	}

	out := make([]interface{}, 0, len(trend))
	for _, m := range trend {
		out = append(out, monthlyRevenueValue(m))
	}
	return out, nil
}

// queryNaturalLanguage answers {"result", "prompt"} on success and
// {"error"} when the agent failed.
func (r *resolver) queryNaturalLanguage(p graphql.ResolveParams) (interface{}, error) {
	prompt, _ := p.Args["prompt"].(string)

	result, err := r.svc.NLQuery.Query(p.Context, prompt)
	if err != nil {
		return nil, err
	}

	switch res := result.(type) {
	case domain.NLQuerySuccess:
		return map[string]interface{}{
			"result": res.Data,
			"prompt": prompt,
		}, nil
	case domain.NLQueryFailure:
		return map[string]interface{}{
			"error": res.Message,
		}, nil
	default:
		return nil, fmt.Errorf("unexpected natural language result %T", result)
	}
}
