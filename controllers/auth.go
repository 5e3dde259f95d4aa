package controllers

import (
	"crypto/rand"
	"encoding/base64"
	"log"
	"net/http"
	"net/url"
	"strings"

	"gitea.com/go-chi/session"

	"github.com/blogem/boardhook/authenticator"
	"github.com/blogem/boardhook/models"
	"github.com/blogem/boardhook/services"
	"github.com/blogem/boardhook/userctx"
)

const oidcStateKey = "oidc_state"

// AuthController handles account and Trello connection endpoints
type AuthController struct {
	authService services.AuthService
	provider    authenticator.Provider
}

// NewAuthController creates a new auth controller
func NewAuthController(services *services.Services, provider authenticator.Provider) *AuthController {
	return &AuthController{
		authService: services.Auth,
		provider:    provider,
	}
}

// Register handles POST /api/auth/register
func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var form models.RegisterForm
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	result, err := ac.authService.Register(r.Context(), &form)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Login handles POST /api/auth/login
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var form models.LoginForm
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	result, err := ac.authService.Login(r.Context(), &form)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Me handles GET /api/auth/me
func (ac *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	user := userctx.GetUser(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Missing or invalid Authorization header")
		return
	}
	writeJSON(w, http.StatusOK, user.Profile())
}

// ConnectTrello handles POST /api/auth/connect-trello
func (ac *AuthController) ConnectTrello(w http.ResponseWriter, r *http.Request) {
	var body struct {
		TrelloToken string `json:"trelloToken"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	result, err := ac.authService.ConnectTrello(r.Context(), userctx.GetUser(r.Context()), body.TrelloToken)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Avatar handles POST /api/auth/avatar
func (ac *AuthController) Avatar(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Avatar string `json:"avatar"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := ac.authService.UpdateAvatar(r.Context(), userctx.GetUser(r.Context()), body.Avatar); err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "avatar": body.Avatar})
}

// Config handles GET /api/auth/config
func (ac *AuthController) Config(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ac.authService.Config())
}

// OIDCLogin starts single sign-on
func (ac *AuthController) OIDCLogin(w http.ResponseWriter, r *http.Request) {
	if ac.provider == nil {
		writeError(w, http.StatusNotFound, "Single sign-on is not configured")
		return
	}

	state, err := generateRandomState()
	if err != nil {
		handleError(w, err)
		return
	}

	// Save the state in the session to validate in callback
	sess := session.GetSession(r)
	if err := sess.Set(oidcStateKey, state); err != nil {
		handleError(w, err)
		return
	}

	http.Redirect(w, r, ac.provider.GetAuthURL(state), http.StatusTemporaryRedirect)
}

// OIDCCallback finishes single sign-on. With APP_URL set the bearer token is
// handed to the browser app in the URL fragment, otherwise returned as JSON.
func (ac *AuthController) OIDCCallback(w http.ResponseWriter, r *http.Request) {
	if ac.provider == nil {
		writeError(w, http.StatusNotFound, "Single sign-on is not configured")
		return
	}

	sess := session.GetSession(r)
	storedState, _ := sess.Get(oidcStateKey).(string)
	if storedState == "" {
		writeError(w, http.StatusBadRequest, "State not found in session")
		return
	}
	if r.URL.Query().Get("state") != storedState {
		writeError(w, http.StatusBadRequest, "Invalid state parameter")
		return
	}
	_ = sess.Delete(oidcStateKey)

	token, err := ac.provider.ExchangeCode(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Failed to exchange authorization code for a token")
		return
	}

	claims, err := ac.provider.GetClaims(r.Context(), token)
	if err != nil {
		log.Printf("Failed to verify ID token: %v", err)
		writeError(w, http.StatusUnauthorized, "Failed to verify ID token")
		return
	}

	result, err := ac.authService.SignInWithClaims(r.Context(), claims)
	if err != nil {
		handleError(w, err)
		return
	}

	appURL := strings.TrimRight(ac.authService.Config().AppURL, "/")
	if appURL == "" {
		writeJSON(w, http.StatusOK, result)
		return
	}
	http.Redirect(w, r, appURL+"/#token="+url.QueryEscape(result.Token), http.StatusSeeOther)
}

// generateRandomState generates a random state value for CSRF protection
func generateRandomState() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
