package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/blogem/boardhook/models"
	"github.com/blogem/boardhook/repositories"
	"github.com/blogem/boardhook/trello"
)

// SubscriptionService manages webhook registrations and serves the event log to pollers
type SubscriptionService interface {
	Register(ctx context.Context, tenantID string, cred trello.Credential, form *models.WebhookForm) (*models.WebhookRegistration, error)
	Unregister(ctx context.Context, tenantID string, cred trello.Credential, webhookID string) error
	List(ctx context.Context, tenantID string) (map[string]models.WebhookRegistration, error)
	Events(ctx context.Context, tenantID string, lastKnownVersion int64) models.EventPage
}

// subscriptionService implements SubscriptionService
type subscriptionService struct {
	webhooks    repositories.WebhookRepository
	tenants     repositories.TenantRegistry
	events      repositories.EventLog
	api         trello.API
	multiTenant bool
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(
	webhooks repositories.WebhookRepository,
	tenants repositories.TenantRegistry,
	events repositories.EventLog,
	api trello.API,
	multiTenant bool,
) SubscriptionService {
	return &subscriptionService{
		webhooks:    webhooks,
		tenants:     tenants,
		events:      events,
		api:         api,
		multiTenant: multiTenant,
	}
}

// Register creates the Trello webhook, records it for the tenant and routes the
// board's future events to the tenant. A board already routed to someone else
// is taken over (last writer wins).
func (s *subscriptionService) Register(ctx context.Context, tenantID string, cred trello.Credential, form *models.WebhookForm) (*models.WebhookRegistration, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return nil, invalidInput(errs...)
	}
	callbackURL := strings.TrimSpace(form.CallbackURL)
	boardID := strings.TrimSpace(form.BoardID)

	sub, err := s.api.CreateSubscription(ctx, cred, callbackURL, boardID)
	if err != nil {
		return nil, err
	}

	registration := &models.WebhookRegistration{
		WebhookID:   sub.ID,
		CallbackURL: callbackURL,
		BoardID:     boardID,
		CreatedAt:   timeNow().UTC(),
	}
	if err := s.webhooks.Save(ctx, tenantID, registration); err != nil {
		s.discardSubscription(ctx, cred, sub.ID)
		return nil, fmt.Errorf("failed to save webhook registration: %w", err)
	}

	if s.multiTenant {
		if previous, found, err := s.tenants.LookupTenant(ctx, boardID); err == nil && found && previous != tenantID {
			log.Printf("Board %s was routed to %s, now routed to %s", boardID, previous, tenantID)
		}
		if err := s.tenants.MapResource(ctx, boardID, tenantID); err != nil {
			if removeErr := s.webhooks.Remove(ctx, tenantID, boardID); removeErr != nil {
				log.Printf("Failed to remove webhook registration for board=%s user=%s: %v", boardID, tenantID, removeErr)
			}
			s.discardSubscription(ctx, cred, sub.ID)
			return nil, fmt.Errorf("failed to route board events: %w", err)
		}
	}

	log.Printf("Webhook %s registered for board=%s user=%s", sub.ID, boardID, tenantID)
	return registration, nil
}

// discardSubscription deletes a webhook that could not be recorded locally;
// without a local record it could never be unregistered.
func (s *subscriptionService) discardSubscription(ctx context.Context, cred trello.Credential, webhookID string) {
	if err := s.api.DeleteSubscription(ctx, cred, webhookID); err != nil {
		log.Printf("Failed to delete unrecorded webhook %s: %v", webhookID, err)
	}
}

// Unregister deletes the Trello webhook, the tenant's registration record and
// the board routing. A webhook Trello no longer knows is treated as already
// deleted so the local records never outlive it.
func (s *subscriptionService) Unregister(ctx context.Context, tenantID string, cred trello.Credential, webhookID string) error {
	webhookID = strings.TrimSpace(webhookID)
	if webhookID == "" {
		return invalidInput("webhook id is required")
	}

	registration, err := s.webhooks.FindByWebhookID(ctx, tenantID, webhookID)
	if err != nil {
		return fmt.Errorf("failed to look up webhook: %w", err)
	}

	if err := s.api.DeleteSubscription(ctx, cred, webhookID); err != nil {
		var apiErr *trello.APIError
		if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
			return err
		}
		log.Printf("Webhook %s already gone upstream, cleaning up local records", webhookID)
	}

	if registration == nil {
		return nil
	}

	if err := s.webhooks.Remove(ctx, tenantID, registration.BoardID); err != nil {
		return fmt.Errorf("failed to remove webhook registration: %w", err)
	}

	if s.multiTenant {
		owner, found, err := s.tenants.LookupTenant(ctx, registration.BoardID)
		if err != nil {
			return fmt.Errorf("failed to look up board routing: %w", err)
		}
		// Another tenant may have registered the board since; leave their routing alone
		if found && owner == tenantID {
			if err := s.tenants.UnmapResource(ctx, registration.BoardID); err != nil {
				return fmt.Errorf("failed to clear board routing: %w", err)
			}
		}
	}

	log.Printf("Webhook %s unregistered for board=%s user=%s", webhookID, registration.BoardID, tenantID)
	return nil
}

// List returns the tenant's registrations keyed by board id
func (s *subscriptionService) List(ctx context.Context, tenantID string) (map[string]models.WebhookRegistration, error) {
	return s.webhooks.List(ctx, tenantID)
}

// Events returns the tenant's version and retained events
func (s *subscriptionService) Events(ctx context.Context, tenantID string, lastKnownVersion int64) models.EventPage {
	return s.events.ReadSince(ctx, tenantID, lastKnownVersion)
}
