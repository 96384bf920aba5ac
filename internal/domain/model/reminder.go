package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/truecost/mortgage-service/internal/domain/event"
	"github.com/truecost/mortgage-service/internal/domain/valueobject"
	"github.com/truecost/mortgage-service/pkg/events"
)

// DefaultReminderTitle is used when a reminder is created without a title.
const DefaultReminderTitle = "EMI Reminder"

// Reminder is a scheduled EMI payment reminder. The only permitted state
// change is the one-way notified transition.
type Reminder struct {
	events.EventCollector
	dueAt     valueobject.UTCInstant
	createdAt time.Time
	amount    *decimal.Decimal
	userID    string
	title     string
	id        uuid.UUID
	notified  bool
}

// NewReminder schedules a reminder. An empty title falls back to
// DefaultReminderTitle; amount may be nil.
func NewReminder(
	userID, title string,
	amount *decimal.Decimal,
	dueAt valueobject.UTCInstant,
	now time.Time,
) (Reminder, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Reminder{}, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if dueAt.IsZero() {
		return Reminder{}, fmt.Errorf("%w: due_at is required", ErrValidation)
	}
	if strings.TrimSpace(title) == "" {
		title = DefaultReminderTitle
	}
	if err := checkLength("user id", userID); err != nil {
		return Reminder{}, err
	}
	if err := checkLength("title", title); err != nil {
		return Reminder{}, err
	}

	r := Reminder{
		id:        uuid.New(),
		userID:    userID,
		title:     title,
		amount:    amount,
		dueAt:     dueAt,
		createdAt: now.UTC(),
	}
	r.Record(event.NewReminderCreated(r.id, r.userID, r.title, r.amount, r.dueAt.Time(), r.createdAt))
	return r, nil
}

// ReconstructReminder rebuilds a reminder from persisted state without raising events.
func ReconstructReminder(
	id uuid.UUID,
	userID, title string,
	amount *decimal.Decimal,
	dueAt valueobject.UTCInstant,
	notified bool,
	createdAt time.Time,
) Reminder {
	return Reminder{
		id:        id,
		userID:    userID,
		title:     title,
		amount:    amount,
		dueAt:     dueAt,
		notified:  notified,
		createdAt: createdAt.UTC(),
	}
}

func (r Reminder) ID() uuid.UUID                 { return r.id }
func (r Reminder) UserID() string                { return r.userID }
func (r Reminder) Title() string                 { return r.title }
func (r Reminder) Amount() *decimal.Decimal      { return r.amount }
func (r Reminder) DueAt() valueobject.UTCInstant { return r.dueAt }
func (r Reminder) Notified() bool                { return r.notified }
func (r Reminder) CreatedAt() time.Time          { return r.createdAt }

// IsDue reports whether the reminder should be surfaced at now: its due time
// has passed and it has not been marked notified.
func (r Reminder) IsDue(now valueobject.UTCInstant) bool {
	return !r.notified && r.dueAt.NotAfter(now)
}

// MarkNotified flags the reminder as notified. Marking an already-notified
// reminder is a no-op and raises no event.
func (r Reminder) MarkNotified(now time.Time) Reminder {
	if r.notified {
		return r
	}
	r.notified = true
	r.Record(event.NewReminderNotified(r.id, r.userID, r.dueAt.Time(), now))
	return r
}
