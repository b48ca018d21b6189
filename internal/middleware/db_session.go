package middleware

import (
	"net/http"

	"intellidash/pkg/database"
	"intellidash/pkg/logger"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// DBSession opens one read-only transaction per request and releases it
// once the handler returns, whatever the outcome.
func DBSession(db *gorm.DB) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			tx, err := database.BeginReadOnly(req.Context(), db)
			if err != nil {
				logger.Error("failed to open database session", "error", err)
				return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable").SetInternal(err)
			}
			defer func() {
				if err := database.Release(tx); err != nil {
					logger.Warn("failed to release database session", "error", err)
				}
			}()

			c.SetRequest(req.WithContext(database.WithSession(req.Context(), tx)))

			return next(c)
		}
	}
}
