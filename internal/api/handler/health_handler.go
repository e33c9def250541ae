package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthHandler handles GET /health, the liveness probe.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Counter is any store able to report how many records it holds.
type Counter interface {
	Count() int
}

// ReadinessHandler handles GET /health/ready. The service is ready once every
// store it depends on has been wired; the response reports their sizes.
type ReadinessHandler struct {
	stores  map[string]Counter
	started time.Time
}

func NewReadinessHandler(stores map[string]Counter) *ReadinessHandler {
	return &ReadinessHandler{stores: stores, started: time.Now()}
}

type storeStatus struct {
	Status  string `json:"status"`
	Records int    `json:"records"`
}

type readinessResponse struct {
	Status string                 `json:"status"`
	Uptime string                 `json:"uptime"`
	Stores map[string]storeStatus `json:"stores"`
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	stores := make(map[string]storeStatus, len(h.stores))
	healthy := len(h.stores) > 0

	for name, s := range h.stores {
		if s == nil {
			stores[name] = storeStatus{Status: "missing"}
			healthy = false
			continue
		}
		stores[name] = storeStatus{Status: "ok", Records: s.Count()}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status: status,
		Uptime: time.Since(h.started).Round(time.Second).String(),
		Stores: stores,
	})
}
