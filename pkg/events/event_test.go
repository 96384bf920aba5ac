package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewBaseEvent(t *testing.T) {
	aggregateID := uuid.New()
	at := time.Date(2025, 12, 17, 19, 0, 0, 0, time.FixedZone("IST", 5*3600+1800))

	event := NewBaseEvent("reminders.reminder.created", aggregateID, "Reminder", at)

	if event.EventID() == uuid.Nil {
		t.Error("expected non-nil event ID")
	}
	if event.EventType() != "reminders.reminder.created" {
		t.Errorf("expected event type %q, got %q", "reminders.reminder.created", event.EventType())
	}
	if event.AggregateID() != aggregateID {
		t.Errorf("expected aggregate ID %v, got %v", aggregateID, event.AggregateID())
	}
	if event.AggregateType() != "Reminder" {
		t.Errorf("expected aggregate type %q, got %q", "Reminder", event.AggregateType())
	}
	if event.OccurredAt().Location() != time.UTC {
		t.Errorf("expected occurredAt in UTC, got %v", event.OccurredAt().Location())
	}
	if !event.OccurredAt().Equal(at) {
		t.Errorf("expected occurredAt %v, got %v", at, event.OccurredAt())
	}
}

func TestBaseEventImplementsDomainEvent(t *testing.T) {
	var _ DomainEvent = BaseEvent{}
}

func TestBaseEventJSONEnvelope(t *testing.T) {
	type alertCreated struct {
		BaseEvent
		UserID string `json:"user_id"`
	}

	evt := alertCreated{
		BaseEvent: NewBaseEvent("alerts.rate_alert.created", uuid.New(), "RateAlert", time.Now()),
		UserID:    "user-1",
	}

	data, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{"event_id", "event_type", "aggregate_id", "aggregate_type", "occurred_at", "user_id"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("expected key %q in serialised event", key)
		}
	}
}

func TestEventCollector(t *testing.T) {
	var c EventCollector
	if len(c.DomainEvents()) != 0 {
		t.Fatal("expected empty collector")
	}

	c.Record(NewBaseEvent("a", uuid.New(), "X", time.Now()))
	c.Record(NewBaseEvent("b", uuid.New(), "X", time.Now()))

	if got := len(c.DomainEvents()); got != 2 {
		t.Fatalf("expected 2 events, got %d", got)
	}

	// A copy taken before a transition must not see later events.
	snapshot := c
	c.Record(NewBaseEvent("c", uuid.New(), "X", time.Now()))
	if got := len(snapshot.DomainEvents()); got != 2 {
		t.Fatalf("expected snapshot to keep 2 events, got %d", got)
	}
	snapshot.Record(NewBaseEvent("d", uuid.New(), "X", time.Now()))
	if got := c.DomainEvents()[2].EventType(); got != "c" {
		t.Fatalf("expected original third event c, got %q", got)
	}

	events := c.DomainEvents()
	events[0] = nil
	if c.DomainEvents()[0] == nil {
		t.Fatal("DomainEvents must return a copy")
	}
}
