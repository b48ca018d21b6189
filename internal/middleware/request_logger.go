package middleware

import (
	"strconv"
	"time"

	"intellidash/pkg/logger"
	"intellidash/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// RequestLogger logs each request and records its latency.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			elapsed := time.Since(start)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			metrics.HTTPRequestDuration.
				WithLabelValues(req.Method, route, strconv.Itoa(res.Status)).
				Observe(elapsed.Seconds())

			logger.InfoContext(req.Context(), "request",
				"request_id", res.Header().Get(echo.HeaderXRequestID),
				"method", req.Method,
				"path", req.URL.Path,
				"status", res.Status,
				"latency_ms", elapsed.Milliseconds(),
			)

			return nil
		}
	}
}
