// File: internal/handler/users/delete_user.go
package users

import (
	"net/http"

	"user-service/internal/store"

	"github.com/labstack/echo/v4"
)

// DeleteUserHandler 刪除指定 ID 的使用者
// @Summary     Delete a user by ID
// @Description 根據使用者 ID 永久刪除使用者
// @Tags        users
// @Param       id   path      int  true  "使用者 ID"
// @Success     204  "No Content"
// @Failure     400  {object}  api.ErrorResponse  "參數錯誤"
// @Failure     404  {object}  api.ErrorResponse  "使用者不存在"
// @Failure     500  {object}  api.ErrorResponse  "伺服器錯誤"
// @Router      /api/users/{id} [delete]
func DeleteUserHandler(users store.UserStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, bad := parseID(c)
		if bad != nil {
			return c.JSON(http.StatusBadRequest, bad)
		}

		if err := users.DeleteUser(c.Request().Context(), id); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	}
}
