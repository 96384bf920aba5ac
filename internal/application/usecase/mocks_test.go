package usecase_test

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/truecost/mortgage-service/internal/domain/event"
	"github.com/truecost/mortgage-service/internal/domain/model"
	"github.com/truecost/mortgage-service/internal/domain/port"
	"github.com/truecost/mortgage-service/internal/domain/valueobject"
)

// --- Mock implementations ---

type mockAlertRepository struct {
	saveFunc       func(ctx context.Context, alert model.RateAlert) error
	listRecentFunc func(ctx context.Context, limit int) ([]model.RateAlert, error)
	savedAlerts    []model.RateAlert
	lastLimit      int
}

func (m *mockAlertRepository) Save(ctx context.Context, alert model.RateAlert) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, alert)
	}
	m.savedAlerts = append(m.savedAlerts, alert)
	return nil
}

func (m *mockAlertRepository) ListRecent(ctx context.Context, limit int) ([]model.RateAlert, error) {
	m.lastLimit = limit
	if m.listRecentFunc != nil {
		return m.listRecentFunc(ctx, limit)
	}
	out := make([]model.RateAlert, 0, len(m.savedAlerts))
	for i := len(m.savedAlerts) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.savedAlerts[i])
	}
	return out, nil
}

// mockReminderRepository keeps reminders in memory so state transitions can
// be observed across calls.
type mockReminderRepository struct {
	saveFunc   func(ctx context.Context, r model.Reminder) error
	listFunc   func(ctx context.Context) ([]model.Reminder, error)
	updateFunc func(ctx context.Context, id uuid.UUID, fn port.ReminderUpdateFunc) (model.Reminder, error)
	reminders  map[uuid.UUID]model.Reminder
	dueQueries []valueobject.UTCInstant
}

func newMockReminderRepository(seed ...model.Reminder) *mockReminderRepository {
	m := &mockReminderRepository{reminders: make(map[uuid.UUID]model.Reminder)}
	for _, r := range seed {
		m.reminders[r.ID()] = r
	}
	return m
}

func (m *mockReminderRepository) Save(ctx context.Context, r model.Reminder) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, r)
	}
	m.reminders[r.ID()] = r
	return nil
}

func (m *mockReminderRepository) sorted() []model.Reminder {
	out := make([]model.Reminder, 0, len(m.reminders))
	for _, r := range m.reminders {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DueAt().Time().Before(out[j].DueAt().Time())
	})
	return out
}

func (m *mockReminderRepository) ListAll(ctx context.Context) ([]model.Reminder, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return m.sorted(), nil
}

func (m *mockReminderRepository) ListDue(ctx context.Context, now valueobject.UTCInstant) ([]model.Reminder, error) {
	m.dueQueries = append(m.dueQueries, now)
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	var out []model.Reminder
	for _, r := range m.sorted() {
		if r.IsDue(now) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockReminderRepository) Update(
	ctx context.Context,
	id uuid.UUID,
	fn port.ReminderUpdateFunc,
) (model.Reminder, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, fn)
	}
	current, ok := m.reminders[id]
	if !ok {
		return model.Reminder{}, model.ErrNotFound
	}
	next, err := fn(current)
	if err != nil {
		return model.Reminder{}, err
	}
	// Store without pending events, as a database round trip would.
	m.reminders[id] = model.ReconstructReminder(
		next.ID(), next.UserID(), next.Title(), next.Amount(), next.DueAt(), next.Notified(), next.CreatedAt(),
	)
	return next, nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

type mockRateSource struct {
	currentRateFunc func(ctx context.Context) (decimal.Decimal, error)
	rate            decimal.Decimal
	calls           int
}

func (m *mockRateSource) CurrentRate(ctx context.Context) (decimal.Decimal, error) {
	m.calls++
	if m.currentRateFunc != nil {
		return m.currentRateFunc(ctx)
	}
	return m.rate, nil
}

type mockCatalog struct {
	news   []port.NewsItem
	agents []port.Agent
	err    error
}

func (m *mockCatalog) GovernmentNews(ctx context.Context) ([]port.NewsItem, error) {
	return m.news, m.err
}

func (m *mockCatalog) Agents(ctx context.Context) ([]port.Agent, error) {
	return m.agents, m.err
}

var (
	_ port.AlertRepository    = (*mockAlertRepository)(nil)
	_ port.ReminderRepository = (*mockReminderRepository)(nil)
	_ port.EventPublisher     = (*mockEventPublisher)(nil)
	_ port.RateSource         = (*mockRateSource)(nil)
	_ port.ContentCatalog     = (*mockCatalog)(nil)
)
