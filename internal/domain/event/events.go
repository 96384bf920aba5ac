package event

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/truecost/mortgage-service/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

const (
	TypeRateAlertCreated = "alerts.rate_alert.created"
	TypeReminderCreated  = "reminders.reminder.created"
	TypeReminderNotified = "reminders.reminder.notified"
	AggregateRateAlert   = "RateAlert"
	AggregateReminder    = "Reminder"
)

// RateAlertCreated is raised when a user registers a target rate.
type RateAlertCreated struct {
	events.BaseEvent
	UserID     string          `json:"user_id"`
	TargetRate decimal.Decimal `json:"target_rate"`
}

func NewRateAlertCreated(alertID uuid.UUID, userID string, target decimal.Decimal, at time.Time) RateAlertCreated {
	return RateAlertCreated{
		BaseEvent:  events.NewBaseEvent(TypeRateAlertCreated, alertID, AggregateRateAlert, at),
		UserID:     userID,
		TargetRate: target,
	}
}

// ReminderCreated is raised when an EMI reminder is scheduled.
type ReminderCreated struct {
	events.BaseEvent
	UserID string           `json:"user_id"`
	Title  string           `json:"title"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
	DueAt  time.Time        `json:"due_at"`
}

func NewReminderCreated(
	reminderID uuid.UUID, userID, title string, amount *decimal.Decimal, dueAt time.Time, at time.Time,
) ReminderCreated {
	return ReminderCreated{
		BaseEvent: events.NewBaseEvent(TypeReminderCreated, reminderID, AggregateReminder, at),
		UserID:    userID,
		Title:     title,
		Amount:    amount,
		DueAt:     dueAt.UTC(),
	}
}

// ReminderNotified is raised the first time a reminder is marked notified.
// Repeated marks do not raise it again.
type ReminderNotified struct {
	events.BaseEvent
	UserID string    `json:"user_id"`
	DueAt  time.Time `json:"due_at"`
}

func NewReminderNotified(reminderID uuid.UUID, userID string, dueAt time.Time, at time.Time) ReminderNotified {
	return ReminderNotified{
		BaseEvent: events.NewBaseEvent(TypeReminderNotified, reminderID, AggregateReminder, at),
		UserID:    userID,
		DueAt:     dueAt.UTC(),
	}
}
