package graph

import (
	"context"

	"github.com/graphql-go/graphql"
)

func Execute(ctx context.Context, schema graphql.Schema, query string, variables map[string]interface{}, operationName string) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  query,
		VariableValues: variables,
		OperationName:  operationName,
		Context:        ctx,
	})
}
