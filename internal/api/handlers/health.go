// Package handlers implements HTTP handlers for the loss-valuation API.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const readyTimeout = 2 * time.Second

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse is the body of the liveness and readiness checks.
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// HealthHandler serves the liveness and readiness checks.
type HealthHandler struct {
	store   Pinger
	version string
}

// NewHealthHandler creates a HealthHandler that reports version on
// liveness and pings s on readiness.
func NewHealthHandler(s Pinger, version string) *HealthHandler {
	return &HealthHandler{store: s, version: version}
}

// Healthz returns 200 while the process is serving.
func (h *HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok", Version: h.version})
}

// Readyz returns 200 when appraisals can be read and written, 503 when the
// database does not answer within readyTimeout.
func (h *HealthHandler) Readyz(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readyTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Status: "unavailable",
			Checks: map[string]string{"database": "unreachable"},
		})
	}
	return c.JSON(http.StatusOK, HealthResponse{
		Status: "ready",
		Checks: map[string]string{"database": "ok"},
	})
}
