package models

import (
	"encoding/json"
	"time"
)

// GlobalTenant identifies the single shared event log used when the service
// runs without accounts. Account emails always contain '@', so it never
// collides with a real tenant.
const GlobalTenant = "_global"

// MaxEvents is the number of events retained per log
const MaxEvents = 100

// UnknownActor is recorded when the webhook does not name who made the change
const UnknownActor = "unknown"

// Event is one normalized board change. It is never modified after creation.
type Event struct {
	ID            int64           `json:"id"` // creation time in ms, display ordering only
	Timestamp     string          `json:"timestamp"`
	Type          string          `json:"type"`
	MemberCreator string          `json:"memberCreator"`
	Card          *string         `json:"card"`
	ListBefore    *string         `json:"listBefore"`
	ListAfter     *string         `json:"listAfter"`
	Board         *string         `json:"board"`
	Text          *string         `json:"text"`
	Raw           json.RawMessage `json:"raw"`
}

// EventPage is what a poller receives: the cumulative version and the retained window
type EventPage struct {
	Version int64   `json:"version"`
	Events  []Event `json:"events"`
}

// EmptyEventPage is returned when no data is available yet
func EmptyEventPage() EventPage {
	return EventPage{Version: 0, Events: []Event{}}
}

// WebhookPayload is the body Trello POSTs to the callback URL. Both parts
// stay raw so a mistyped field cannot hide the others.
type WebhookPayload struct {
	Action json.RawMessage `json:"action"`
	Model  json.RawMessage `json:"model"`
}

// NormalizeWebhook turns a webhook payload into an Event and reports the id of
// the board it belongs to ("" when none can be identified). Every field is
// extracted on its own; a missing or mistyped field only leaves that field empty.
func NormalizeWebhook(payload *WebhookPayload, now time.Time) (Event, string) {
	raw := json.RawMessage(`{}`)
	var action, model map[string]json.RawMessage
	if payload != nil {
		if len(payload.Action) > 0 && string(payload.Action) != "null" {
			raw = append(json.RawMessage(nil), payload.Action...)
		}
		action = object(payload.Action)
		model = object(payload.Model)
	}
	data := object(action["data"])

	now = now.UTC()
	event := Event{
		ID:            now.UnixMilli(),
		Timestamp:     now.Format("2006-01-02T15:04:05.000Z"),
		Type:          stringField(action, "type"),
		MemberCreator: stringField(object(action["memberCreator"]), "fullName"),
		Card:          optional(nestedString(data, "card", "name")),
		ListBefore:    optional(nestedString(data, "listBefore", "name")),
		ListAfter:     optional(nestedString(data, "listAfter", "name")),
		Board:         optional(nestedString(data, "board", "name")),
		Text:          optional(stringField(data, "text")),
		Raw:           raw,
	}
	if event.Type == "" {
		event.Type = "unknown"
	}
	if event.MemberCreator == "" {
		event.MemberCreator = UnknownActor
	}
	if event.Board == nil {
		event.Board = optional(stringField(model, "name"))
	}

	boardID := nestedString(data, "board", "id")
	if boardID == "" {
		boardID = stringField(model, "id")
	}
	return event, boardID
}

// object decodes a JSON object; anything else yields nil
func object(raw json.RawMessage) map[string]json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}
	return fields
}

// stringField returns obj[key] when it is a JSON string
func stringField(obj map[string]json.RawMessage, key string) string {
	value, ok := obj[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return ""
	}
	return s
}

func nestedString(obj map[string]json.RawMessage, key, field string) string {
	return stringField(object(obj[key]), field)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Summary renders the event the way notifications show it, e.g. "updateCard: Fix bug → Done"
func (e *Event) Summary() string {
	msg := e.Type
	if e.Card != nil {
		msg += ": " + *e.Card
	}
	if e.ListAfter != nil {
		msg += " → " + *e.ListAfter
	}
	return msg
}
