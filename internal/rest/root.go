package rest

import (
	"context"
	"net/http"
	"time"

	"intellidash/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type RootHandler struct {
	db      Pinger
	timeout time.Duration
}

func NewRootHandler(db Pinger) *RootHandler {
	return &RootHandler{
		db:      db,
		timeout: 5 * time.Second,
	}
}

func (h *RootHandler) Welcome(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Welcome to the IntelliDash API!",
	})
}

func (h *RootHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		logger.Error("health check failed", "error", err)
		return c.JSON(http.StatusServiceUnavailable, ResponseError{Message: "database unavailable"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]string{
		"database": "up",
	}))
}
