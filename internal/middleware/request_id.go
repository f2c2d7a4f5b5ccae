package middleware

import (
	"context"

	"movieReco/business/recommender"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestID tags every request with a trace id, reusing the caller's
// X-Request-ID when present, so log lines from one request can be correlated
// across the pipeline.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = uuid.NewString()
			}

			ctx := context.WithValue(c.Request().Context(), recommender.TraceIDKey, rid)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set(echo.HeaderXRequestID, rid)

			return next(c)
		}
	}
}
