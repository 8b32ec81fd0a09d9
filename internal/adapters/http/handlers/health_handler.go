package handlers

import (
	"context"
	"os"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger is an optional backing service the health check pings
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger
type PingFunc func(ctx context.Context) error

// Ping calls f
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthHandler handles health check endpoints
type HealthHandler struct {
	appMode   string
	dataFiles []string
	services  map[string]Pinger
}

// NewHealthHandler creates a new health handler. services may be empty.
func NewHealthHandler(appMode string, dataFiles []string, services map[string]Pinger) *HealthHandler {
	return &HealthHandler{
		appMode:   appMode,
		dataFiles: dataFiles,
		services:  services,
	}
}

// HealthCheck handles health check
// @Summary Health check
// @Description Check the data documents and configured backing services
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	healthy := true
	checks := fiber.Map{"api": "healthy"}

	dataStatus := "healthy"
	for _, path := range h.dataFiles {
		if _, err := os.Stat(path); err != nil {
			dataStatus = "unhealthy"
			healthy = false
		}
	}
	checks["data"] = dataStatus

	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.services))
	for name := range h.services {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		status := "healthy"
		if err := h.services[name].Ping(ctx); err != nil {
			status = "unhealthy"
			healthy = false
		}
		checks[name] = status
	}

	status, code := "ok", fiber.StatusOK
	if !healthy {
		status, code = "degraded", fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status": status,
		"mode":   h.appMode,
		"checks": checks,
	})
}
