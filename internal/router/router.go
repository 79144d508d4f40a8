// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"

	"quotehub/internal/database"
	"quotehub/internal/handler"
	"quotehub/internal/handler/users"
)

// Setup registers all routes.
func Setup(e *echo.Echo, db database.DB) {
	e.GET("/ping", handler.PingHandler(db))

	apiUsers := e.Group("/users")
	apiUsers.POST("", users.CreateUserHandler(db))
	apiUsers.GET("", users.ListUsersHandler(db))
	apiUsers.GET("/filter", users.FilterUsersHandler(db))
	apiUsers.GET("/:user_id", users.GetUserHandler(db))
	apiUsers.PUT("/:user_id", users.UpdateUserHandler(db))
	apiUsers.DELETE("/:user_id", users.DeleteUserHandler(db))
	apiUsers.PUT("/:user_id/quotes", users.UpdateUserQuoteHandler(db))
	apiUsers.DELETE("/:user_id/quotes", users.DeleteUserQuoteHandler(db))
}
