package router

import (
	"user-service/internal/cache"
	"user-service/internal/database"
	"user-service/internal/handler"
	"user-service/internal/handler/users"
	"user-service/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Setup 註冊所有路由
// cch 為 nil 時就緒檢查不檢查快取
func Setup(e *echo.Echo, db database.DB, userStore store.UserStore, cch cache.Cache) {
	// 健康檢查
	e.GET("/health", handler.HealthHandler())
	e.GET("/health/ready", handler.ReadyHandler(db, cch))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Users CRUD
	apiUsers := e.Group("/api/users")
	apiUsers.POST("", users.CreateUserHandler(userStore))
	apiUsers.GET("", users.ListUsersHandler(userStore))
	apiUsers.GET("/active-users", users.ListActiveUsersHandler(userStore))
	apiUsers.GET("/:id", users.GetUserHandler(userStore))
	apiUsers.PUT("/:id", users.UpdateUserHandler(userStore))
	apiUsers.DELETE("/:id", users.DeleteUserHandler(userStore))
}
