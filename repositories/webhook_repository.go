package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/blogem/boardhook/kvstore"
	"github.com/blogem/boardhook/models"
)

// WebhookRepository stores each tenant's webhook registrations, one per board
type WebhookRepository interface {
	Save(ctx context.Context, tenantID string, registration *models.WebhookRegistration) error
	Remove(ctx context.Context, tenantID, boardID string) error
	List(ctx context.Context, tenantID string) (map[string]models.WebhookRegistration, error)
	FindByWebhookID(ctx context.Context, tenantID, webhookID string) (*models.WebhookRegistration, error)
}

// webhookRepository implements WebhookRepository on the keyed store
type webhookRepository struct {
	kv kvstore.Store
}

// NewWebhookRepository creates a new webhook repository
func NewWebhookRepository(kv kvstore.Store) WebhookRepository {
	return &webhookRepository{kv: kv}
}

func webhooksKey(tenantID string) string { return "registered_webhooks:" + tenantID }

// Save stores the registration under its board id, replacing an older one for the same board
func (r *webhookRepository) Save(ctx context.Context, tenantID string, registration *models.WebhookRegistration) error {
	if r.kv == nil {
		return nil
	}
	payload, err := json.Marshal(registration)
	if err != nil {
		return fmt.Errorf("failed to encode webhook registration: %w", err)
	}
	if err := r.kv.HSet(ctx, webhooksKey(tenantID), registration.BoardID, string(payload)); err != nil {
		return fmt.Errorf("failed to save webhook for board %s: %w", registration.BoardID, err)
	}
	return nil
}

// Remove deletes the registration for a board; removing a missing one is a no-op
func (r *webhookRepository) Remove(ctx context.Context, tenantID, boardID string) error {
	if r.kv == nil {
		return nil
	}
	if err := r.kv.HDel(ctx, webhooksKey(tenantID), boardID); err != nil {
		return fmt.Errorf("failed to remove webhook for board %s: %w", boardID, err)
	}
	return nil
}

// List returns the tenant's registrations keyed by board id
func (r *webhookRepository) List(ctx context.Context, tenantID string) (map[string]models.WebhookRegistration, error) {
	result := make(map[string]models.WebhookRegistration)
	if r.kv == nil {
		return result, nil
	}

	data, err := r.kv.HGetAll(ctx, webhooksKey(tenantID))
	if err != nil {
		return nil, fmt.Errorf("failed to list webhooks: %w", err)
	}
	for boardID, raw := range data {
		var registration models.WebhookRegistration
		if err := json.Unmarshal([]byte(raw), &registration); err != nil {
			log.Printf("Skipping undecodable webhook registration %s/%s: %v", tenantID, boardID, err)
			continue
		}
		result[boardID] = registration
	}
	return result, nil
}

// FindByWebhookID returns the registration with the given Trello webhook id, or nil
func (r *webhookRepository) FindByWebhookID(ctx context.Context, tenantID, webhookID string) (*models.WebhookRegistration, error) {
	registrations, err := r.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	for _, registration := range registrations {
		if registration.WebhookID == webhookID {
			found := registration
			return &found, nil
		}
	}
	return nil, nil
}
