// File: internal/handler/health.go
package handler

import (
	"net/http"
	"time"

	"user-service/internal/api"
	"user-service/internal/cache"
	"user-service/internal/database"

	"github.com/labstack/echo/v4"
)

// isoMillis 與 JavaScript toISOString 相同的格式
const isoMillis = "2006-01-02T15:04:05.000Z"

const readyProbeKey = "health:ready"

var now = time.Now

// HealthHandler 存活檢查，不觸及任何外部資源
// @Summary     Liveness check
// @Description 回傳 ok 與目前時間
// @Tags        health
// @Produce     json
// @Success     200 {object} api.HealthResponse
// @Router      /health [get]
func HealthHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, api.HealthResponse{
			Status:    "ok",
			Timestamp: now().UTC().Format(isoMillis),
		})
	}
}

// ReadyHandler 就緒檢查：Ping 資料庫，若有設定快取則寫入探測 key
// @Summary     Readiness check
// @Description 檢查資料庫與快取連線是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} api.ReadyResponse
// @Failure     503 {object} api.ErrorResponse
// @Router      /health/ready [get]
func ReadyHandler(db database.DB, cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := db.Ping(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: "database unhealthy"})
		}
		if cch != nil {
			if err := cch.Set(ctx, readyProbeKey, now().Unix(), 10*time.Second).Err(); err != nil {
				return c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: "cache unhealthy"})
			}
		}
		return c.JSON(http.StatusOK, api.ReadyResponse{Status: "ready"})
	}
}
