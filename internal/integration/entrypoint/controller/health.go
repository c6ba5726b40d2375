// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthProbes are the checks reported by GET /health. Any of them may be nil.
type HealthProbes struct {
	Database func() bool
	// Cache is nil when the fallback cache is disabled.
	Cache func() bool
	// PendingSyncJobs reports the persist jobs still queued.
	PendingSyncJobs func() int
	// RecordSource reports where the Record Store was last hydrated from.
	RecordSource func() string
}

// HealthController handles health check endpoints.
type HealthController struct {
	probes HealthProbes
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status          string `json:"status"`
	Database        string `json:"database"`
	Cache           string `json:"cache"`
	RecordSource    string `json:"record_source,omitempty"`
	PendingSyncJobs int    `json:"pending_sync_jobs"`
	Timestamp       string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
func NewHealthController(probes HealthProbes) *HealthController {
	return &HealthController{probes: probes}
}

// Check handles GET /health requests. A missing database degrades the status
// but still answers 200.
func (h *HealthController) Check(c *gin.Context) {
	response := HealthResponse{
		Status:    "ok",
		Database:  probeStatus(h.probes.Database),
		Cache:     probeStatus(h.probes.Cache),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if response.Database != "connected" {
		response.Status = "degraded"
	}
	if h.probes.PendingSyncJobs != nil {
		response.PendingSyncJobs = h.probes.PendingSyncJobs()
	}
	if h.probes.RecordSource != nil {
		response.RecordSource = h.probes.RecordSource()
	}

	c.JSON(http.StatusOK, response)
}

func probeStatus(probe func() bool) string {
	switch {
	case probe == nil:
		return "disabled"
	case probe():
		return "connected"
	default:
		return "disconnected"
	}
}
