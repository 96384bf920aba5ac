package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/truecost/mortgage-service/internal/application/dto"
	"github.com/truecost/mortgage-service/internal/domain/model"
	"github.com/truecost/mortgage-service/internal/domain/port"
	"github.com/truecost/mortgage-service/internal/domain/valueobject"
)

// CreateReminderUseCase schedules an EMI reminder.
type CreateReminderUseCase struct {
	reminderRepo port.ReminderRepository
	publisher    port.EventPublisher
	logger       *slog.Logger
	now          Clock
}

// NewCreateReminderUseCase wires dependencies.
func NewCreateReminderUseCase(
	reminderRepo port.ReminderRepository,
	publisher port.EventPublisher,
	logger *slog.Logger,
	now Clock,
) *CreateReminderUseCase {
	return &CreateReminderUseCase{
		reminderRepo: reminderRepo,
		publisher:    publisher,
		logger:       loggerOrDefault(logger),
		now:          clockOrDefault(now),
	}
}

// Execute parses the due time, persists the reminder and returns its id.
func (uc *CreateReminderUseCase) Execute(
	ctx context.Context,
	req dto.CreateReminderRequest,
) (dto.ReminderResponse, error) {
	if strings.TrimSpace(req.UserID) == "" || strings.TrimSpace(req.DueAt) == "" {
		return dto.ReminderResponse{}, fmt.Errorf("%w: missing uuid or due_at", model.ErrValidation)
	}

	dueAt, err := valueobject.ParseUTCInstant(req.DueAt)
	if err != nil {
		return dto.ReminderResponse{}, fmt.Errorf(
			"%w: invalid due_at format, use ISO format (e.g. 2025-12-17T19:00:00Z or with timezone offset)",
			model.ErrValidation)
	}

	var amount *decimal.Decimal
	if strings.TrimSpace(req.Amount) != "" {
		a, err := parseDecimal("amount", req.Amount)
		if err != nil {
			return dto.ReminderResponse{}, err
		}
		amount = &a
	}

	reminder, err := model.NewReminder(req.UserID, req.Title, amount, dueAt, uc.now())
	if err != nil {
		return dto.ReminderResponse{}, fmt.Errorf("create reminder: %w", err)
	}
	if err := uc.reminderRepo.Save(ctx, reminder); err != nil {
		return dto.ReminderResponse{}, fmt.Errorf("save reminder: %w", err)
	}

	publishEvents(ctx, uc.publisher, uc.logger, reminder.DomainEvents())

	return toReminderResponse(reminder), nil
}
