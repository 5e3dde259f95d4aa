package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/blogem/boardhook/models"
	"github.com/blogem/boardhook/repositories"
)

// IngestOutcome says what happened to one webhook delivery
type IngestOutcome string

const (
	// OutcomeAppended means the event landed in a log
	OutcomeAppended IngestOutcome = "appended"
	// OutcomeUnrouted means no tenant owns the board; the event was dropped
	OutcomeUnrouted IngestOutcome = "unrouted"
	// OutcomeFailed means the delivery could not be decoded or stored
	OutcomeFailed IngestOutcome = "failed"
)

// IngestResult describes a processed delivery. It is for logs and tests only;
// the sender is always acknowledged with 200.
type IngestResult struct {
	Outcome  IngestOutcome
	TenantID string
	BoardID  string
	Event    *models.Event
	Err      error
}

// IngestService turns webhook deliveries into event log entries
type IngestService interface {
	Ingest(ctx context.Context, body []byte) IngestResult
}

// ingestService implements IngestService
type ingestService struct {
	tenants     repositories.TenantRegistry
	events      repositories.EventLog
	multiTenant bool
}

// NewIngestService creates a new ingest service. In single-tenant mode every
// event goes to the global log and the registry is never consulted.
func NewIngestService(tenants repositories.TenantRegistry, events repositories.EventLog, multiTenant bool) IngestService {
	return &ingestService{
		tenants:     tenants,
		events:      events,
		multiTenant: multiTenant,
	}
}

// Ingest normalizes a change notification and appends it to the owning
// tenant's log. It never returns an error: the sender retries anything that is
// not a 2xx, and retrying a payload we cannot use helps nobody.
func (s *ingestService) Ingest(ctx context.Context, body []byte) IngestResult {
	var payload models.WebhookPayload
	if len(body) > 0 {
		if err := json.Unmarshal(body, &payload); err != nil {
			log.Printf("Webhook: ignoring undecodable payload (%d bytes): %v", len(body), err)
			return IngestResult{Outcome: OutcomeFailed, Err: fmt.Errorf("failed to decode webhook payload: %w", err)}
		}
	}

	event, boardID := models.NormalizeWebhook(&payload, timeNow())
	result := IngestResult{BoardID: boardID, Event: &event}

	tenantID := models.GlobalTenant
	if s.multiTenant {
		if boardID == "" {
			log.Printf("Webhook [%s]: no board identified, dropping", event.Type)
			result.Outcome = OutcomeUnrouted
			return result
		}

		owner, found, err := s.tenants.LookupTenant(ctx, boardID)
		if err != nil {
			log.Printf("Webhook store error for board=%s: %v", boardID, err)
			result.Outcome = OutcomeFailed
			result.Err = err
			return result
		}
		if !found {
			log.Printf("Webhook [%s]: no user mapping for board=%s", event.Type, boardID)
			result.Outcome = OutcomeUnrouted
			return result
		}
		tenantID = owner
	}
	result.TenantID = tenantID

	if err := s.events.Append(ctx, tenantID, &event); err != nil {
		log.Printf("Webhook store error for board=%s user=%s: %v", boardID, tenantID, err)
		result.Outcome = OutcomeFailed
		result.Err = err
		return result
	}

	log.Printf("Webhook [%s] → user=%s: card=%q listBefore=%q listAfter=%q",
		event.Type, tenantID, strOrEmpty(event.Card), strOrEmpty(event.ListBefore), strOrEmpty(event.ListAfter))
	result.Outcome = OutcomeAppended
	return result
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
