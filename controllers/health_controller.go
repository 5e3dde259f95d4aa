package controllers

import (
	"net/http"
	"time"
)

// HealthController reports liveness
type HealthController struct {
	started time.Time
}

// NewHealthController creates a new health controller
func NewHealthController() *HealthController {
	return &HealthController{started: time.Now()}
}

// Show handles GET /health
func (hc *HealthController) Show(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "boardhook",
		"uptime":  time.Since(hc.started).Round(time.Second).String(),
	})
}
