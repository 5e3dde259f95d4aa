package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"

	"github.com/blogem/boardhook/kvstore"
	"github.com/blogem/boardhook/models"
)

// EventLog is the bounded, newest-first event list of a tenant plus its
// cumulative version counter
type EventLog interface {
	Append(ctx context.Context, tenantID string, event *models.Event) error
	ReadSince(ctx context.Context, tenantID string, lastKnownVersion int64) models.EventPage
}

func eventsKey(tenantID string) string  { return "webhook_events:" + tenantID }
func versionKey(tenantID string) string { return "board_version:" + tenantID }

// eventLog implements EventLog on the keyed store
type eventLog struct {
	kv kvstore.Store
}

// NewEventLog creates a new event log. With a nil store appends are only
// logged and reads return an empty page.
func NewEventLog(kv kvstore.Store) EventLog {
	return &eventLog{kv: kv}
}

// Append stores the event at the head of the tenant's list, trims the list to
// models.MaxEvents and bumps the version by one. The version is only bumped
// once the event itself has been written.
func (l *eventLog) Append(ctx context.Context, tenantID string, event *models.Event) error {
	if l.kv == nil {
		log.Printf("No store configured, webhook event logged only: tenant=%s type=%s card=%s",
			tenantID, event.Type, deref(event.Card))
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	if err := l.kv.LPush(ctx, eventsKey(tenantID), string(payload)); err != nil {
		return fmt.Errorf("failed to append event for %s: %w", tenantID, err)
	}

	// An untrimmed list is corrected by the next append; the event is stored, so it still counts
	if err := l.kv.LTrim(ctx, eventsKey(tenantID), 0, models.MaxEvents-1); err != nil {
		log.Printf("Failed to trim event log for %s: %v", tenantID, err)
	}

	if _, err := l.kv.Incr(ctx, versionKey(tenantID)); err != nil {
		return fmt.Errorf("failed to bump version for %s: %w", tenantID, err)
	}

	return nil
}

// ReadSince returns the current version and the whole retained window,
// whatever lastKnownVersion is; callers diff on their side. Store failures
// yield an empty page, which means "no data yet", not "no events".
func (l *eventLog) ReadSince(ctx context.Context, tenantID string, lastKnownVersion int64) models.EventPage {
	if l.kv == nil {
		return models.EmptyEventPage()
	}

	rawVersion, found, err := l.kv.Get(ctx, versionKey(tenantID))
	if err != nil {
		log.Printf("Failed to read version for %s: %v", tenantID, err)
		return models.EmptyEventPage()
	}
	var version int64
	if found {
		version, err = strconv.ParseInt(rawVersion, 10, 64)
		if err != nil {
			log.Printf("Corrupt version for %s: %q", tenantID, rawVersion)
			return models.EmptyEventPage()
		}
	}

	entries, err := l.kv.LRange(ctx, eventsKey(tenantID), 0, models.MaxEvents-1)
	if err != nil {
		log.Printf("Failed to read events for %s: %v", tenantID, err)
		return models.EmptyEventPage()
	}

	page := models.EventPage{Version: version, Events: make([]models.Event, 0, len(entries))}
	for _, entry := range entries {
		var event models.Event
		if err := json.Unmarshal([]byte(entry), &event); err != nil {
			log.Printf("Skipping undecodable event for %s: %v", tenantID, err)
			continue
		}
		page.Events = append(page.Events, event)
	}
	return page
}

func deref(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}
