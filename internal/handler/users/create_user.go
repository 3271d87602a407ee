// File: internal/handler/users/create_user.go
package users

import (
	"net/http"

	"user-service/internal/api"
	"user-service/internal/model"
	"user-service/internal/store"

	"github.com/labstack/echo/v4"
)

// CreateUserHandler 建立新使用者
// @Summary     Create a new user
// @Description 建立使用者帳號；email 與 password 為必填，email 不可重複
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       body body     api.CreateUserRequest true "使用者資料"
// @Success     201  {object} api.UserResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     409  {object} api.ErrorResponse "email 已存在"
// @Failure     500  {object} api.ErrorResponse
// @Router      /api/users [post]
func CreateUserHandler(users store.UserStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Email and password are required"})
		}

		// TODO: 寫入前以 bcrypt 雜湊密碼，目前仍為明文
		created, err := users.CreateUser(c.Request().Context(), &model.User{
			Email:    req.Email,
			Name:     req.Name,
			Password: req.Password,
		})
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, api.NewUserResponse(created))
	}
}
