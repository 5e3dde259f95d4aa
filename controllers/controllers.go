package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/blogem/boardhook/authenticator"
	"github.com/blogem/boardhook/services"
	"github.com/blogem/boardhook/trello"
	"github.com/blogem/boardhook/userctx"
)

// Controllers holds all controller instances
type Controllers struct {
	Auth      *AuthController
	Dashboard *DashboardController
	Boards    *BoardController
	Cards     *CardController
	Webhooks  *WebhookController
	Health    *HealthController
}

// NewControllers creates and initializes all controller instances.
// provider may be nil when single sign-on is not configured.
func NewControllers(services *services.Services, provider authenticator.Provider, maxUploadBytes int64) *Controllers {
	return &Controllers{
		Auth:      NewAuthController(services, provider),
		Dashboard: NewDashboardController(services),
		Boards:    NewBoardController(services),
		Cards:     NewCardController(services, maxUploadBytes),
		Webhooks:  NewWebhookController(services),
		Health:    NewHealthController(),
	}
}

// writeJSON renders data as a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// writeError renders {"error": message}
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// handleError maps service and upstream errors to responses. Trello errors
// are relayed with Trello's own status and body.
func handleError(w http.ResponseWriter, err error) {
	var apiErr *trello.APIError
	if errors.As(err, &apiErr) {
		var body interface{} = string(apiErr.Body)
		if json.Valid(apiErr.Body) {
			body = json.RawMessage(apiErr.Body)
		}
		writeJSON(w, apiErr.StatusCode, map[string]interface{}{"error": body})
		return
	}

	switch {
	case errors.Is(err, services.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("Request failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// decodeJSON reads the request body into dst. An empty body leaves dst untouched.
func decodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// credential resolves the Trello credential of the authenticated user
func credential(r *http.Request, auth services.AuthService) (trello.Credential, error) {
	user := userctx.GetUser(r.Context())
	if user == nil {
		return trello.Credential{}, &services.Error{Kind: services.ErrUnauthorized, Message: "Missing or invalid Authorization header"}
	}
	return auth.Credential(user)
}

// tenantOf returns the event log owner for the authenticated user
func tenantOf(r *http.Request) string {
	if user := userctx.GetUser(r.Context()); user != nil {
		return user.Email
	}
	return userctx.GetUserEmail(r.Context())
}
