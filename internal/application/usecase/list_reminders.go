package usecase

import (
	"context"
	"fmt"

	"github.com/truecost/mortgage-service/internal/application/dto"
	"github.com/truecost/mortgage-service/internal/domain/port"
	"github.com/truecost/mortgage-service/internal/domain/valueobject"
)

// ListRemindersUseCase returns every reminder by due time.
type ListRemindersUseCase struct {
	reminderRepo port.ReminderRepository
}

// NewListRemindersUseCase wires dependencies.
func NewListRemindersUseCase(reminderRepo port.ReminderRepository) *ListRemindersUseCase {
	return &ListRemindersUseCase{reminderRepo: reminderRepo}
}

// Execute lists all reminders, due_at ascending.
func (uc *ListRemindersUseCase) Execute(ctx context.Context) (dto.ReminderListResponse, error) {
	reminders, err := uc.reminderRepo.ListAll(ctx)
	if err != nil {
		return dto.ReminderListResponse{}, fmt.Errorf("list reminders: %w", err)
	}
	return toReminderList(reminders), nil
}

// ListDueRemindersUseCase returns reminders whose due time has passed and
// that have not been marked notified.
type ListDueRemindersUseCase struct {
	reminderRepo port.ReminderRepository
	now          Clock
}

// NewListDueRemindersUseCase wires dependencies.
func NewListDueRemindersUseCase(reminderRepo port.ReminderRepository, now Clock) *ListDueRemindersUseCase {
	return &ListDueRemindersUseCase{reminderRepo: reminderRepo, now: clockOrDefault(now)}
}

// Execute lists reminders due at or before the current instant.
func (uc *ListDueRemindersUseCase) Execute(ctx context.Context) (dto.ReminderListResponse, error) {
	now := valueobject.NewUTCInstant(uc.now())
	reminders, err := uc.reminderRepo.ListDue(ctx, now)
	if err != nil {
		return dto.ReminderListResponse{}, fmt.Errorf("list due reminders: %w", err)
	}
	return toReminderList(reminders), nil
}
