package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jewelry-erp/backend/internal/infrastructure/logger"
	"github.com/jewelry-erp/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// HealthData is the body of /health and /ready. Checks maps each readiness
// check to "ok" or "error".
type HealthData struct {
	Status  string            `json:"status"`
	Version string            `json:"version,omitempty"`
	Uptime  string            `json:"uptime,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// ReadinessCheck probes one dependency the API needs to serve traffic
type ReadinessCheck func(ctx context.Context) error

// SystemHandler serves the liveness and readiness probes
type SystemHandler struct {
	BaseHandler
	version   string
	startTime time.Time
	timeout   time.Duration
	checks    map[string]ReadinessCheck
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(version string) *SystemHandler {
	return &SystemHandler{
		version:   version,
		startTime: time.Now(),
		timeout:   2 * time.Second,
		checks:    make(map[string]ReadinessCheck),
	}
}

// AddCheck registers a readiness check under name
func (h *SystemHandler) AddCheck(name string, check ReadinessCheck) *SystemHandler {
	h.checks[name] = check
	return h
}

// Health godoc
//
//	@Summary	Liveness probe
//	@Tags		system
//	@Produce	json
//	@Success	200	{object}	APIResponse[HealthData]
//	@Router		/health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, HealthData{
		Status:  "healthy",
		Version: h.version,
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
	})
}

// Ready godoc
//
//	@Summary		Readiness probe
//	@Description	Runs every dependency check; any failure answers 503
//	@Tags			system
//	@Produce		json
//	@Success		200	{object}	APIResponse[HealthData]
//	@Failure		503	{object}	APIResponse[HealthData]
//	@Router			/ready [get]
func (h *SystemHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	data := HealthData{Status: "ready", Version: h.version, Checks: make(map[string]string, len(names))}
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			logger.GetGinLogger(c).Warn("Readiness check failed", zap.String("check", name), zap.Error(err))
			data.Checks[name] = "error"
			data.Status = "unavailable"
			continue
		}
		data.Checks[name] = "ok"
	}

	if data.Status != "ready" {
		c.JSON(http.StatusServiceUnavailable, dto.Response{Success: false, Data: data})
		return
	}
	h.Success(c, data)
}
