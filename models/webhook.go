package models

import (
	"strings"
	"time"
)

// WebhookRegistration records a Trello webhook a tenant created for one board
type WebhookRegistration struct {
	WebhookID   string    `json:"webhookId"`
	CallbackURL string    `json:"callbackURL"`
	BoardID     string    `json:"boardId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// WebhookForm represents the register webhook request body
type WebhookForm struct {
	CallbackURL string `json:"callbackURL"`
	BoardID     string `json:"boardId"`
}

// Validate validates the register webhook form
func (f *WebhookForm) Validate() []string {
	if strings.TrimSpace(f.CallbackURL) == "" || strings.TrimSpace(f.BoardID) == "" {
		return []string{"callbackURL and boardId are required"}
	}
	return nil
}

// Subscription is the webhook object Trello returns on creation
type Subscription struct {
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
	IDModel     string `json:"idModel"`
	CallbackURL string `json:"callbackURL"`
	Active      bool   `json:"active"`
}
