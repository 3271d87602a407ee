// File: internal/handler/users/get_user.go
package users

import (
	"net/http"

	"user-service/internal/api"
	"user-service/internal/store"

	"github.com/labstack/echo/v4"
)

// GetUserHandler 透過使用者 ID 取得使用者資訊
// @Summary     Get a user by ID
// @Description 透過 ID 查詢並回傳使用者詳細資料
// @Tags        users
// @Produce     json
// @Param       id   path      int  true  "使用者 ID"
// @Success     200  {object}  api.UserResponse
// @Failure     400  {object}  api.ErrorResponse  "參數錯誤"
// @Failure     404  {object}  api.ErrorResponse  "使用者不存在"
// @Failure     500  {object}  api.ErrorResponse  "伺服器錯誤"
// @Router      /api/users/{id} [get]
func GetUserHandler(users store.UserStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, bad := parseID(c)
		if bad != nil {
			return c.JSON(http.StatusBadRequest, bad)
		}

		user, err := users.GetUserByID(c.Request().Context(), id)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, api.NewUserResponse(user))
	}
}
