package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/truecost/mortgage-service/internal/domain/event"
	"github.com/truecost/mortgage-service/internal/domain/model"
	"github.com/truecost/mortgage-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// AlertRepository persists and lists rate alerts.
type AlertRepository interface {
	Save(ctx context.Context, alert model.RateAlert) error
	// ListRecent returns at most limit alerts, newest first.
	ListRecent(ctx context.Context, limit int) ([]model.RateAlert, error)
}

// ReminderUpdateFunc transforms a stored reminder inside the repository's
// transaction. Returning an error aborts the update.
type ReminderUpdateFunc func(current model.Reminder) (model.Reminder, error)

// ReminderRepository persists and queries EMI reminders.
type ReminderRepository interface {
	Save(ctx context.Context, reminder model.Reminder) error
	// ListAll returns every reminder ordered by due time ascending.
	ListAll(ctx context.Context) ([]model.Reminder, error)
	// ListDue returns un-notified reminders due at or before now, ascending.
	ListDue(ctx context.Context, now valueobject.UTCInstant) ([]model.Reminder, error)
	// Update loads the reminder, applies fn and writes the result back
	// atomically, returning the value fn produced. Returns model.ErrNotFound
	// when id does not exist.
	Update(ctx context.Context, id uuid.UUID, fn ReminderUpdateFunc) (model.Reminder, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// External service ports
// ---------------------------------------------------------------------------

// RateSource supplies the prevailing mortgage rate in percent.
type RateSource interface {
	CurrentRate(ctx context.Context) (decimal.Decimal, error)
}

// NewsItem is one government housing announcement.
type NewsItem struct {
	Title string
	Date  string
}

// Agent is a directory entry for a mortgage agent.
type Agent struct {
	Name    string
	Phone   string
	Company string
}

// ContentCatalog serves the informational listings.
type ContentCatalog interface {
	GovernmentNews(ctx context.Context) ([]NewsItem, error)
	Agents(ctx context.Context) ([]Agent, error)
}
