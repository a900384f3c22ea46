// Package router builds the Echo instance: global middleware in order,
// the error handler and the route table.
package router

import (
	"github.com/deppfellow/social-scores/internal/handler"
	"github.com/deppfellow/social-scores/internal/middleware"
	"github.com/deppfellow/social-scores/internal/server"
	"github.com/deppfellow/social-scores/internal/service"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

func NewRouter(s *server.Server, h *handler.Handlers, services *service.Services) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s, services.Auth)
	return newRouter(h, middlewares)
}

func newRouter(h *handler.Handlers, middlewares *middleware.Middlewares) *echo.Echo {
	router := echo.New()
	router.HideBanner = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		echoMiddleware.BodyLimit("1M"),
	)

	registerSystemRoutes(router, h)

	v1 := router.Group("/api/v1")
	registerAuthRoutes(v1, h, middlewares)
	registerSupervisorRoutes(v1, h, middlewares)
	registerUserRoutes(v1, h, middlewares)
	registerSocialNetworkRoutes(v1, h, middlewares)

	return router
}
