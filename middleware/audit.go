package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/blogem/boardhook/models"
	"github.com/blogem/boardhook/repositories"
	"github.com/blogem/boardhook/userctx"
)

const auditTimeout = 5 * time.Second

// fields never written to the audit log
var redactedFields = map[string]bool{
	"password":    true,
	"trelloToken": true,
	"token":       true,
}

// AuditLogger middleware records every POST/PUT/DELETE request. Mount it
// after RequireAuth so the entry carries the account email.
func AuditLogger(auditRepo repositories.AuditRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if auditRepo == nil {
				next.ServeHTTP(w, r)
				return
			}

			// Only log mutation operations
			if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodDelete {
				entry := &models.AuditLogEntry{
					Timestamp: time.Now().UTC(),
					RequestID: chimiddleware.GetReqID(r.Context()),
					UserEmail: userctx.GetUserEmail(r.Context()),
					Method:    r.Method,
					Path:      r.URL.Path,
					UserAgent: r.UserAgent(),
					IPAddress: getIPAddress(r),
					FormData:  captureFormData(r),
				}

				// Log asynchronously to avoid blocking request
				go func() {
					ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
					defer cancel()
					if err := auditRepo.Create(ctx, entry); err != nil {
						log.Printf("Failed to create audit log: %v", err)
					}
				}()
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getIPAddress extracts IP address from request, checking X-Forwarded-For first
func getIPAddress(r *http.Request) string {
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		ips := strings.Split(forwarded, ",")
		return strings.TrimSpace(ips[0])
	}

	realIP := r.Header.Get("X-Real-IP")
	if realIP != "" {
		return realIP
	}

	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}

// captureFormData captures url-encoded form fields as a JSON string. JSON and
// multipart bodies are left unread for the handlers.
func captureFormData(r *http.Request) string {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		return ""
	}
	if err := r.ParseForm(); err != nil {
		return ""
	}

	formMap := make(map[string]interface{})
	for key, values := range r.PostForm {
		switch {
		case redactedFields[key]:
			formMap[key] = "[redacted]"
		case len(values) == 1:
			formMap[key] = values[0]
		default:
			formMap[key] = values
		}
	}
	if len(formMap) == 0 {
		return ""
	}

	jsonData, err := json.Marshal(formMap)
	if err != nil {
		return ""
	}
	return string(jsonData)
}
