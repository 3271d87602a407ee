// File: internal/handler/users/users.go
package users

import (
	"strconv"
	"time"

	"user-service/internal/api"

	"github.com/labstack/echo/v4"
)

// activeWindow 啟用中使用者的建立時間範圍
const activeWindow = 30 * 24 * time.Hour

var now = time.Now

// parseID 解析 path 參數 id；失敗時回傳要寫給用戶端的錯誤
// users.id 為 SERIAL (int4)，超出 32 位元範圍視為無效
func parseID(c echo.Context) (int, *api.ErrorResponse) {
	raw := c.Param("id")
	if raw == "" {
		return 0, &api.ErrorResponse{Error: "User ID is required"}
	}
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, &api.ErrorResponse{Error: "Invalid user ID"}
	}
	return int(id), nil
}
