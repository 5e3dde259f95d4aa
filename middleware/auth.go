package middleware

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/blogem/boardhook/models"
	"github.com/blogem/boardhook/services"
	"github.com/blogem/boardhook/userctx"
)

// RequireAuth ensures the request carries a valid bearer token for an existing account.
// If not, it answers 401 with a JSON error body.
func RequireAuth(auth services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := auth.Authenticate(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				if errors.Is(err, services.ErrUnauthorized) {
					writeError(w, http.StatusUnauthorized, err.Error())
					return
				}
				log.Printf("Failed to authenticate request: %v", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			next.ServeHTTP(w, r.WithContext(userctx.SetUser(r.Context(), user)))
		})
	}
}

// SingleTenant treats every request as the shared global account. Used when
// the deployment runs without accounts and one Trello token from the environment.
func SingleTenant(trelloToken string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := &models.User{
				Email:       models.GlobalTenant,
				Name:        "Shared board",
				TrelloToken: trelloToken,
			}
			next.ServeHTTP(w, r.WithContext(userctx.SetUser(r.Context(), user)))
		})
	}
}

// BodyLimit limits request bodies to maxBytes
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if maxBytes > 0 && r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
