// Package handler provides HTTP handlers for the bacmon API.
package handler

import (
	"net/http"
	"sort"
	"time"

	"github.com/bacmon/bacmon/internal/api/models"
	"github.com/bacmon/bacmon/internal/api/response"
	"github.com/bacmon/bacmon/internal/featureflags"
	"github.com/bacmon/bacmon/internal/monitor"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	registry  *monitor.Registry
	flags     *featureflags.Service
	metrics   *monitor.Metrics
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(version, buildTime string, registry *monitor.Registry, flags *featureflags.Service, metrics *monitor.Metrics) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		registry:  registry,
		flags:     flags,
		metrics:   metrics,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	// All state is in-process; ready as soon as the registry is wired.
	if h.registry == nil {
		response.ServiceUnavailable(w, r, "session registry not initialized")
		return
	}
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	}
	response.JSON(w, r, http.StatusOK, health)
}

// SystemStatus handles GET /v1/ops/status - subsystem and monitor status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	now := models.Timestamp(time.Now())

	monitorInfo := h.metrics.SnapshotMap()
	monitorInfo["sessions"] = h.registry.Len()

	status := models.SystemStatus{
		Status: models.HealthStatusOK,
		Time:   now,
		Subsystems: []models.SubsystemStatus{
			{Name: "monitor", Status: models.HealthStatusOK},
			{Name: "feature-flags", Status: models.HealthStatusOK},
		},
		Monitor:     monitorInfo,
		ActiveFlags: h.activeFlags(r),
	}
	response.JSON(w, r, http.StatusOK, status)
}

// activeFlags returns the keys of enabled boolean flags, sorted.
func (h *OpsHandler) activeFlags(r *http.Request) []string {
	var active []string
	for key, flag := range h.flags.GetAllFlags(r.Context()) {
		if flag.BoolValue(false) {
			active = append(active, key)
		}
	}
	sort.Strings(active)
	return active
}
