package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/social-scores/internal/middleware"
	"github.com/deppfellow/social-scores/internal/server"
	"github.com/labstack/echo/v4"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

type HealthHandler struct {
	Handler
	checks map[string]func(ctx context.Context) error
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	checks := map[string]func(ctx context.Context) error{}
	if s.DB != nil {
		checks["database"] = s.DB.Ping
	}
	if s.Redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return s.Redis.Ping(ctx).Err()
		}
	}
	return &HealthHandler{
		Handler: NewHandler(s),
		checks:  checks,
	}
}

type checkResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]checkResult `json:"checks"`
}

// CheckHealth runs the configured dependency checks. Any failing check
// turns the response into a 503.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	cfg := h.server.Config.Observability.HealthChecks
	response := healthResponse{
		Status:      statusHealthy,
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]checkResult),
	}

	if cfg.Enabled {
		for _, name := range cfg.Checks {
			check, ok := h.checks[name]
			if !ok {
				continue
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), cfg.Timeout)
			checkStart := time.Now()
			err := check(ctx)
			cancel()
			elapsed := time.Since(checkStart)

			if err != nil {
				response.Status = statusUnhealthy
				response.Checks[name] = checkResult{
					Status:       statusUnhealthy,
					ResponseTime: elapsed.String(),
					Error:        err.Error(),
				}
				logger.Error().Err(err).Str("check", name).Dur("response_time", elapsed).Msg("health check failed")
				h.recordFailure(name, elapsed, err)
				continue
			}

			response.Checks[name] = checkResult{
				Status:       statusHealthy,
				ResponseTime: elapsed.String(),
			}
			logger.Debug().Str("check", name).Dur("response_time", elapsed).Msg("health check passed")
		}
	}

	if response.Status != statusHealthy {
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("service unhealthy")
		return c.JSON(http.StatusServiceUnavailable, response)
	}
	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) recordFailure(check string, elapsed time.Duration, err error) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}
	app.RecordCustomEvent("HealthCheckError", map[string]any{
		"check_type":       check,
		"operation":        "health_check",
		"error_type":       check + "_unhealthy",
		"response_time_ms": elapsed.Milliseconds(),
		"error_message":    err.Error(),
	})
}
