package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// Pinger reports whether a dependency of the health check is reachable.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]Pinger
	log    *logrus.Logger
}

func NewHealthHandler(checks map[string]Pinger, log *logrus.Logger) *HealthHandler {
	return &HealthHandler{
		checks: checks,
		log:    log,
	}
}

func (h *HealthHandler) Check() echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(h.checks))
		for name, ping := range h.checks {
			if err := ping(ctx); err != nil {
				h.log.WithFields(logrus.Fields{"dependency": name, "error": err}).Warn("Health check failed")
				results[name] = "unhealthy"
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "healthy"
		}

		state := "ok"
		if status != http.StatusOK {
			state = "degraded"
		}

		return c.JSON(status, echo.Map{
			"status":       state,
			"dependencies": results,
			"time":         time.Now().UTC().Format(time.RFC3339),
		})
	}
}
