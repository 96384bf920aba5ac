package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/truecost/mortgage-service/internal/application/dto"
	"github.com/truecost/mortgage-service/internal/domain/model"
	"github.com/truecost/mortgage-service/internal/domain/port"
)

// MarkReminderNotifiedUseCase flags a reminder as delivered.
type MarkReminderNotifiedUseCase struct {
	reminderRepo port.ReminderRepository
	publisher    port.EventPublisher
	logger       *slog.Logger
	now          Clock
}

// NewMarkReminderNotifiedUseCase wires dependencies.
func NewMarkReminderNotifiedUseCase(
	reminderRepo port.ReminderRepository,
	publisher port.EventPublisher,
	logger *slog.Logger,
	now Clock,
) *MarkReminderNotifiedUseCase {
	return &MarkReminderNotifiedUseCase{
		reminderRepo: reminderRepo,
		publisher:    publisher,
		logger:       loggerOrDefault(logger),
		now:          clockOrDefault(now),
	}
}

// Execute marks the reminder notified. Repeating the call is harmless.
// An id that is not a UUID cannot exist and reports model.ErrNotFound.
func (uc *MarkReminderNotifiedUseCase) Execute(ctx context.Context, rawID string) (dto.ReminderResponse, error) {
	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return dto.ReminderResponse{}, fmt.Errorf("%w: reminder %q", model.ErrNotFound, rawID)
	}

	updated, err := uc.reminderRepo.Update(ctx, id, func(current model.Reminder) (model.Reminder, error) {
		return current.MarkNotified(uc.now()), nil
	})
	if err != nil {
		return dto.ReminderResponse{}, fmt.Errorf("mark reminder notified: %w", err)
	}

	publishEvents(ctx, uc.publisher, uc.logger, updated.DomainEvents())

	return toReminderResponse(updated), nil
}
