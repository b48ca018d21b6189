package graph

import (
	"intellidash/domain"

	"github.com/graphql-go/graphql"
)

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ProductType",
	Fields: graphql.Fields{
		"productId": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"category":  &graphql.Field{Type: graphql.String},
		"price":     &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"createdAt": &graphql.Field{Type: graphql.DateTime},
	},
})

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "UserType",
	Fields: graphql.Fields{
		"userId":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"email":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"country":   &graphql.Field{Type: graphql.String},
		"age":       &graphql.Field{Type: graphql.Int},
		"gender":    &graphql.Field{Type: graphql.String},
		"createdAt": &graphql.Field{Type: graphql.DateTime},
	},
})

var salesByCategoryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "SalesByCategory",
	Fields: graphql.Fields{
		"category":   &graphql.Field{Type: graphql.String},
		"totalSales": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
	},
})

var monthlyRevenueType = graphql.NewObject(graphql.ObjectConfig{
	Name: "MonthlyRevenue",
	Fields: graphql.Fields{
		"month":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"revenue": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
	},
})

// Decimals leave the API as float64.

func productValue(p domain.Product) map[string]interface{} {
	return map[string]interface{}{
		"productId": int(p.ProductID),
		"name":      p.Name,
		"category":  optionalString(p.Category),
		"price":     p.Price.InexactFloat64(),
		"createdAt": p.CreatedAt,
	}
}

func userValue(u domain.User) map[string]interface{} {
	value := map[string]interface{}{
		"userId":    int(u.UserID),
		"email":     u.Email,
		"createdAt": u.CreatedAt,
		"country":   optionalString(u.Country),
		"age":       nil,
		"gender":    optionalString(u.Gender),
	}
	if u.Age != nil {
		value["age"] = *u.Age
	}

	return value
}

func salesByCategoryValue(s domain.CategorySales) map[string]interface{} {
	return map[string]interface{}{
		"category":   optionalString(s.Category),
		"totalSales": s.TotalSales.InexactFloat64(),
	}
}

func monthlyRevenueValue(m domain.MonthlyRevenue) map[string]interface{} {
	return map[string]interface{}{
		"month":   m.Month,
		"revenue": m.Revenue.InexactFloat64(),
	}
}

// optionalString keeps a typed nil pointer from reaching the String scalar.
func optionalString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
