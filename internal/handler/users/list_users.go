// File: internal/handler/users/list_users.go
package users

import (
	"net/http"

	"user-service/internal/api"
	"user-service/internal/store"

	"github.com/labstack/echo/v4"
)

// ListUsersHandler 列出所有使用者（不含密碼）
// @Summary     List users
// @Description 回傳全部使用者，依 id 排序
// @Tags        users
// @Produce     json
// @Success     200 {array}  api.UserSummary
// @Failure     500 {object} api.ErrorResponse
// @Router      /api/users [get]
func ListUsersHandler(users store.UserStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := users.ListUsers(c.Request().Context())
		if err != nil {
			return err
		}
		resp := make([]api.UserSummary, 0, len(list))
		for i := range list {
			resp = append(resp, api.NewUserSummary(&list[i]))
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// ListActiveUsersHandler 列出啟用中且 30 天內建立的使用者
// @Summary     List active users
// @Description 回傳 isActive 為 true 且 createdAt 在最近 30 天內的使用者
// @Tags        users
// @Produce     json
// @Success     200 {array}  api.UserResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /api/users/active-users [get]
func ListActiveUsersHandler(users store.UserStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		since := now().Add(-activeWindow)
		list, err := users.ListActiveUsers(c.Request().Context(), since)
		if err != nil {
			return err
		}
		resp := make([]api.UserResponse, 0, len(list))
		for i := range list {
			resp = append(resp, api.NewUserResponse(&list[i]))
		}
		return c.JSON(http.StatusOK, resp)
	}
}
