package middleware

import (
	"strconv"
	"time"

	"user-service/internal/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Observe 記錄 access log 與 HTTP 延遲指標
// 錯誤在此交給 ErrorHandler，確保記錄到最終狀態碼
func Observe(log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}
			latency := time.Since(start)

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			status := c.Response().Status
			metrics.RecordHTTPRequestDuration(c.Request().Method, path, strconv.Itoa(status), latency)

			log.Info("request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", status),
				zap.Duration("latency", latency),
				zap.Int64("bytes_out", c.Response().Size),
			)
			return nil
		}
	}
}
