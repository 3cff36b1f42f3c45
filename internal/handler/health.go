package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/catalog/internal/middleware"
	"github.com/deppfellow/catalog/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// HealthCheckTimeout bounds each dependency ping.
const HealthCheckTimeout = 5 * time.Second

type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

type healthCheck struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]healthCheck `json:"checks"`
}

// CheckHealth pings the database and Redis. Only the database decides the
// overall status: Redis carries package sync, which callers never wait on.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := healthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]healthCheck),
	}

	dbCheck := h.check(c.Request().Context(), "database", func(ctx context.Context) error {
		return h.server.DB.Pool.Ping(ctx)
	})
	response.Checks["database"] = dbCheck
	if dbCheck.Status != "healthy" {
		response.Status = "unhealthy"
	}

	if h.server.Redis != nil {
		response.Checks["redis"] = h.check(c.Request().Context(), "redis", func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		})
	}

	status := http.StatusOK
	if response.Status != "healthy" {
		status = http.StatusServiceUnavailable
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
	} else {
		logger.Debug().Dur("total_duration", time.Since(start)).Msg("health check passed")
	}

	if err := c.JSON(status, response); err != nil {
		return errors.Wrap(err, "failed to write health response")
	}
	return nil
}

func (h *HealthHandler) check(ctx context.Context, name string, ping func(context.Context) error) healthCheck {
	ctx, cancel := context.WithTimeout(ctx, HealthCheckTimeout)
	defer cancel()

	start := time.Now()
	err := ping(ctx)
	elapsed := time.Since(start)

	if err == nil {
		return healthCheck{Status: "healthy", ResponseTime: elapsed.String()}
	}

	h.server.Logger.Error().
		Err(err).
		Str("check", name).
		Dur("response_time", elapsed).
		Msg("health check failed")

	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", map[string]interface{}{
			"check_type":       name,
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})
	}

	return healthCheck{Status: "unhealthy", ResponseTime: elapsed.String(), Error: err.Error()}
}
