// File: internal/handler/users/update_user.go
package users

import (
	"net/http"

	"user-service/internal/api"
	"user-service/internal/store"

	"github.com/labstack/echo/v4"
)

// UpdateUserHandler 部分更新指定使用者
// @Summary     Update a user by ID
// @Description 只更新請求中提供的欄位（name 可給 null 清除）；空物件只會刷新 updatedAt
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       id   path     int                   true "使用者 ID"
// @Param       body body     api.UpdateUserRequest true "要更新的欄位"
// @Success     200  {object} api.UpdatedUserResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     409  {object} api.ErrorResponse "email 已存在"
// @Failure     500  {object} api.ErrorResponse
// @Router      /api/users/{id} [put]
func UpdateUserHandler(users store.UserStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, bad := parseID(c)
		if bad != nil {
			return c.JSON(http.StatusBadRequest, bad)
		}

		var req api.UpdateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		}

		updated, err := users.UpdateUser(c.Request().Context(), id, req.Patch())
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, api.NewUpdatedUserResponse(updated))
	}
}
