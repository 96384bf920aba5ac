package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/truecost/mortgage-service/internal/application/dto"
	"github.com/truecost/mortgage-service/internal/domain/event"
	"github.com/truecost/mortgage-service/internal/domain/model"
	"github.com/truecost/mortgage-service/internal/domain/port"
	"github.com/truecost/mortgage-service/internal/domain/valueobject"
)

// Clock returns the current time. Use cases default to time.Now.
type Clock func() time.Time

func clockOrDefault(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}

// parseDecimal parses a required numeric field.
func parseDecimal(field, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: %s is required", model.ErrValidation, field)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %s must be a valid number", model.ErrValidation, field)
	}
	return d, nil
}

// parseWhole parses a required integral field; "20" and "20.0" are accepted,
// "20.5" is not.
func parseWhole(field, raw string) (int, error) {
	d, err := parseDecimal(field, raw)
	if err != nil {
		return 0, err
	}
	if !d.IsInteger() || d.Abs().GreaterThan(decimal.NewFromInt(1_000_000)) {
		return 0, fmt.Errorf("%w: %s must be a whole number", model.ErrValidation, field)
	}
	return int(d.IntPart()), nil
}

var (
	minCreditScore = decimal.NewFromInt(-1_000_000)
	maxCreditScore = decimal.NewFromInt(1_000_000)
)

// parseCreditScore accepts any whole number. Scores far outside the bureau
// range are clamped; every tier boundary lies well inside the clamp.
func parseCreditScore(raw string) (valueobject.CreditScore, error) {
	d, err := parseDecimal("cibilScore", raw)
	if err != nil {
		return 0, err
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("%w: cibilScore must be a whole number", model.ErrValidation)
	}
	switch {
	case d.LessThan(minCreditScore):
		d = minCreditScore
	case d.GreaterThan(maxCreditScore):
		d = maxCreditScore
	}
	return valueobject.CreditScore(d.IntPart()), nil
}

// publishEvents forwards domain events after the write has committed. The
// write has already succeeded, so a broker failure is logged, not returned.
func publishEvents(ctx context.Context, publisher port.EventPublisher, logger *slog.Logger, events []event.DomainEvent) {
	if publisher == nil || len(events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		logger.ErrorContext(ctx, "publish domain events",
			"error", err,
			"count", len(events),
			"event_type", events[0].EventType(),
		)
	}
}

func toAlertResponse(a model.RateAlert) dto.AlertResponse {
	return dto.AlertResponse{
		ID:         a.ID().String(),
		UserID:     a.UserID(),
		TargetRate: a.TargetRate(),
	}
}

func toReminderResponse(r model.Reminder) dto.ReminderResponse {
	return dto.ReminderResponse{
		ID:       r.ID().String(),
		UserID:   r.UserID(),
		Title:    r.Title(),
		Amount:   r.Amount(),
		DueAt:    r.DueAt(),
		Notified: r.Notified(),
	}
}

func toReminderList(reminders []model.Reminder) dto.ReminderListResponse {
	out := make([]dto.ReminderResponse, 0, len(reminders))
	for _, r := range reminders {
		out = append(out, toReminderResponse(r))
	}
	return dto.ReminderListResponse{Reminders: out, Count: len(out)}
}
