package router

import (
	"intellidash/internal/rest"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRootRoutes(e *echo.Echo, handler *rest.RootHandler) {
	e.GET("/", handler.Welcome)
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// SetupGraphQLRoutes mounts the GraphQL endpoint. session runs before the
// handler so every resolver shares one read-only transaction.
func SetupGraphQLRoutes(e *echo.Echo, handler *rest.GraphQLHandler, session echo.MiddlewareFunc) {
	e.POST("/graphql", handler.Query, session)
	e.GET("/graphql", handler.Query, session)
}
