package controllers

import (
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/blogem/boardhook/models"
	"github.com/blogem/boardhook/services"
)

// WebhookController receives Trello deliveries and manages registrations
type WebhookController struct {
	authService         services.AuthService
	ingestService       services.IngestService
	subscriptionService services.SubscriptionService
}

// NewWebhookController creates a new webhook controller
func NewWebhookController(services *services.Services) *WebhookController {
	return &WebhookController{
		authService:         services.Auth,
		ingestService:       services.Ingest,
		subscriptionService: services.Subscriptions,
	}
}

// registrationResponse carries the Trello webhook id as "id" next to the stored record
type registrationResponse struct {
	ID string `json:"id"`
	models.WebhookRegistration
}

// Receive handles HEAD and POST on the public callback URL. Trello verifies
// the URL with HEAD and retries any delivery that is not answered with 200,
// so every HEAD and POST is acknowledged whatever happens to the event.
func (wc *WebhookController) Receive(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodHead:
		w.WriteHeader(http.StatusOK)
	case http.MethodPost:
		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Printf("Webhook: failed to read body: %v", err)
			w.WriteHeader(http.StatusOK)
			return
		}
		wc.ingestService.Ingest(r.Context(), body)
		w.WriteHeader(http.StatusOK)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// Register handles POST /api/webhooks/register
func (wc *WebhookController) Register(w http.ResponseWriter, r *http.Request) {
	var form models.WebhookForm
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	cred, err := credential(r, wc.authService)
	if err != nil {
		handleError(w, err)
		return
	}

	registration, err := wc.subscriptionService.Register(r.Context(), tenantOf(r), cred, &form)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, registrationResponse{ID: registration.WebhookID, WebhookRegistration: *registration})
}

// Unregister handles DELETE /api/webhooks/{id}
func (wc *WebhookController) Unregister(w http.ResponseWriter, r *http.Request) {
	cred, err := credential(r, wc.authService)
	if err != nil {
		handleError(w, err)
		return
	}

	if err := wc.subscriptionService.Unregister(r.Context(), tenantOf(r), cred, chi.URLParam(r, "id")); err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// List handles GET /api/webhooks/list
func (wc *WebhookController) List(w http.ResponseWriter, r *http.Request) {
	registrations, err := wc.subscriptionService.List(r.Context(), tenantOf(r))
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, registrations)
}

// Events handles GET /api/webhooks/events. The optional since parameter is
// accepted for forward compatibility; the full window is always returned.
func (wc *WebhookController) Events(w http.ResponseWriter, r *http.Request) {
	var since int64
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "since must be an integer")
			return
		}
		since = parsed
	}

	writeJSON(w, http.StatusOK, wc.subscriptionService.Events(r.Context(), tenantOf(r), since))
}
