package middleware

import (
	"context"
	"strconv"
	"time"

	"catalog/internal/common"
	"catalog/internal/observability/metrics"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestLogger assigns a request id, logs each request through zap, and records HTTP metrics.
func RequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			requestID := req.Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)
			c.SetRequest(req.WithContext(context.WithValue(req.Context(), common.RequestIDKey, requestID)))

			err := next(c)
			if err != nil {
				// Let the error handler write the response so the final status is logged.
				c.Error(err)
			}

			status := c.Response().Status
			duration := time.Since(start)
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			metrics.ObserveHTTPRequest(req.Method, route, strconv.Itoa(status), duration)

			fields := []zap.Field{
				zap.String("request_id", requestID),
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Int("status", status),
				zap.Duration("duration", duration),
				zap.String("remote_ip", c.RealIP()),
			}
			if actor, ok := common.GetActorFromContext(c.Request().Context()); ok {
				fields = append(fields, zap.Int64("actor_id", actor.ID()))
			}
			switch {
			case status >= 500:
				logger.Error("request failed", append(fields, zap.Error(err))...)
			case status >= 400:
				logger.Warn("request rejected", fields...)
			default:
				logger.Info("request completed", fields...)
			}
			return nil
		}
	}
}
