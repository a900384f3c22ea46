package router

import (
	"github.com/deppfellow/social-scores/internal/handler"
	"github.com/deppfellow/social-scores/internal/middleware"
	"github.com/labstack/echo/v4"
)

func registerAuthRoutes(v1 *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	auth := v1.Group("/auth", m.RateLimit.AuthLimiter())
	auth.POST("/register", h.Auth.Register())
	auth.POST("/token", h.Auth.Token())
}

func registerSupervisorRoutes(v1 *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	supervisors := v1.Group("/supervisors", m.Auth.RequireAuth)
	supervisors.GET("", h.Supervisor.List(), m.Auth.RequireAdmin)
	supervisors.GET("/me", h.Supervisor.Me())
	supervisors.PUT("/me/password", h.Supervisor.ChangePassword())
}

func registerUserRoutes(v1 *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	users := v1.Group("/users", m.Auth.RequireAuth)
	users.POST("", h.User.Create())
	users.GET("", h.User.List())
	users.GET("/:user_id", h.User.Get())
	users.DELETE("/:user_id", h.User.Delete())
	users.POST("/:user_id/social-networks", h.SocialNetwork.Create())
	users.GET("/:user_id/social-networks", h.SocialNetwork.List())
}

func registerSocialNetworkRoutes(v1 *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	networks := v1.Group("/social-networks", m.Auth.RequireAuth)
	networks.DELETE("/:social_network_id", h.SocialNetwork.Delete())
	networks.POST("/:social_network_id/scores", h.Score.Create())
	networks.GET("/:social_network_id/scores", h.Score.List())
	networks.GET("/:social_network_id/scores/export", h.Score.Export())
}
