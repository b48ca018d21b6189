package rest

import (
	"context"
	"encoding/json"
	"net/http"

	"intellidash/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/graphql-go/graphql"
	"github.com/labstack/echo/v4"
)

// Executor runs one GraphQL operation.
type Executor func(ctx context.Context, query string, variables map[string]interface{}, operationName string) *graphql.Result

type GraphQLHandler struct {
	execute   Executor
	validator *validator.Validate
}

func NewGraphQLHandler(execute Executor, validate *validator.Validate) *GraphQLHandler {
	return &GraphQLHandler{
		execute:   execute,
		validator: validate,
	}
}

type GraphQLRequest struct {
	Query         string                 `json:"query" validate:"required"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

// Query serves POST with a JSON body and GET with query parameters.
func (h *GraphQLHandler) Query(c echo.Context) error {
	var req GraphQLRequest

	if c.Request().Method == http.MethodGet {
		req.Query = c.QueryParam("query")
		req.OperationName = c.QueryParam("operationName")
		if raw := c.QueryParam("variables"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
				return c.JSON(http.StatusBadRequest, ResponseError{Message: "variables must be a JSON object"})
			}
		}
	} else if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request body"})
	}

	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "query is required"})
	}

	result := h.execute(c.Request().Context(), req.Query, req.Variables, req.OperationName)
	if result.HasErrors() {
		logger.Debug("graphql request finished with errors", "operation", req.OperationName, "errors", len(result.Errors))
	}

	return c.JSON(http.StatusOK, result)
}
