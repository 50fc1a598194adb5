package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Pinger reports whether the database answers
type Pinger func(ctx context.Context) error

type HealthController struct {
	ping Pinger
}

func NewHealthController(ping Pinger) *HealthController {
	return &HealthController{ping: ping}
}

func (hc *HealthController) Health(c echo.Context) error {
	body := map[string]interface{}{
		"status":    "OK",
		"message":   "Coffee Shop API is running",
		"timestamp": time.Now().UTC(),
	}
	if hc.ping == nil {
		return c.JSON(http.StatusOK, body)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := hc.ping(ctx); err != nil {
		zap.L().Error("Health check ping failed", zap.Error(err))
		body["status"] = "DEGRADED"
		body["database"] = "unreachable"
		return c.JSON(http.StatusServiceUnavailable, body)
	}
	body["database"] = "connected"
	return c.JSON(http.StatusOK, body)
}
