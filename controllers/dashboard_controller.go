package controllers

import (
	"net/http"

	"github.com/blogem/boardhook/models"
	"github.com/blogem/boardhook/services"
	"github.com/blogem/boardhook/userctx"
)

const dashboardRecentEvents = 5

// DashboardController handles dashboard-related requests
type DashboardController struct {
	services *services.Services
}

// NewDashboardController creates a new dashboard controller
func NewDashboardController(services *services.Services) *DashboardController {
	return &DashboardController{
		services: services,
	}
}

// DashboardData is the landing summary of the signed-in user
type DashboardData struct {
	User          models.Profile                        `json:"user"`
	Webhooks      map[string]models.WebhookRegistration `json:"webhooks"`
	Version       int64                                 `json:"version"`
	RecentEvents  []models.Event                        `json:"recentEvents"`
	RetainedCount int                                   `json:"retainedCount"`
}

// Index handles GET /api/dashboard
func (c *DashboardController) Index(w http.ResponseWriter, r *http.Request) {
	user := userctx.GetUser(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Missing or invalid Authorization header")
		return
	}

	webhooks, err := c.services.Subscriptions.List(r.Context(), user.Email)
	if err != nil {
		handleError(w, err)
		return
	}

	page := c.services.Subscriptions.Events(r.Context(), user.Email, 0)
	recent := page.Events
	if len(recent) > dashboardRecentEvents {
		recent = recent[:dashboardRecentEvents]
	}

	writeJSON(w, http.StatusOK, DashboardData{
		User:          user.Profile(),
		Webhooks:      webhooks,
		Version:       page.Version,
		RecentEvents:  recent,
		RetainedCount: len(page.Events),
	})
}
