package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truecost/mortgage-service/internal/application/dto"
	"github.com/truecost/mortgage-service/internal/application/usecase"
	"github.com/truecost/mortgage-service/internal/domain/event"
	"github.com/truecost/mortgage-service/internal/domain/model"
	"github.com/truecost/mortgage-service/internal/domain/port"
	"github.com/truecost/mortgage-service/internal/domain/valueobject"
	"github.com/truecost/mortgage-service/pkg/testutil"
)

func reminderAt(t *testing.T, userID string, dueAt time.Time, notified bool) model.Reminder {
	t.Helper()
	return model.ReconstructReminder(
		uuid.New(), userID, model.DefaultReminderTitle, nil,
		valueobject.NewUTCInstant(dueAt), notified, testutil.FixedNow.Add(-48*time.Hour),
	)
}

func TestCreateReminder_Execute(t *testing.T) {
	t.Run("normalizes offset due time to UTC", func(t *testing.T) {
		repo := newMockReminderRepository()
		publisher := &mockEventPublisher{}
		uc := usecase.NewCreateReminderUseCase(repo, publisher, nil, testutil.FixedClock())

		resp, err := uc.Execute(context.Background(), dto.CreateReminderRequest{
			UserID: testutil.TestUserID1,
			Title:  "HDFC EMI",
			Amount: "25000.50",
			DueAt:  "2025-12-18T00:30:00+05:30",
		})

		require.NoError(t, err)
		require.NotEmpty(t, resp.ID)
		assert.Equal(t, "2025-12-17T19:00:00Z", resp.DueAt.String())
		assert.Equal(t, "HDFC EMI", resp.Title)
		require.NotNil(t, resp.Amount)
		assert.True(t, decimal.RequireFromString("25000.50").Equal(*resp.Amount))
		assert.False(t, resp.Notified)

		stored, err := repo.ListAll(context.Background())
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, resp.ID, stored[0].ID().String())

		require.Len(t, publisher.publishedEvents, 1)
		assert.Equal(t, event.TypeReminderCreated, publisher.publishedEvents[0].EventType())
	})

	t.Run("defaults title and leaves amount empty", func(t *testing.T) {
		uc := usecase.NewCreateReminderUseCase(newMockReminderRepository(), &mockEventPublisher{}, nil, nil)

		resp, err := uc.Execute(context.Background(), dto.CreateReminderRequest{
			UserID: "u1",
			DueAt:  "2025-12-17T19:00:00Z",
		})

		require.NoError(t, err)
		assert.Equal(t, model.DefaultReminderTitle, resp.Title)
		assert.Nil(t, resp.Amount)
	})

	t.Run("zone-less due time is read as UTC", func(t *testing.T) {
		uc := usecase.NewCreateReminderUseCase(newMockReminderRepository(), &mockEventPublisher{}, nil, nil)

		resp, err := uc.Execute(context.Background(), dto.CreateReminderRequest{
			UserID: "u1",
			DueAt:  "2025-12-17T19:00:00",
		})

		require.NoError(t, err)
		assert.Equal(t, "2025-12-17T19:00:00Z", resp.DueAt.String())
	})

	invalid := []struct {
		name string
		req  dto.CreateReminderRequest
		msg  string
	}{
		{"missing uuid", dto.CreateReminderRequest{DueAt: "2025-12-17T19:00:00Z"}, "missing uuid or due_at"},
		{"missing due_at", dto.CreateReminderRequest{UserID: "u1"}, "missing uuid or due_at"},
		{"malformed due_at", dto.CreateReminderRequest{UserID: "u1", DueAt: "next tuesday"}, "invalid due_at format"},
		{"non-numeric amount", dto.CreateReminderRequest{UserID: "u1", DueAt: "2025-12-17", Amount: "a lot"}, "amount must be a valid number"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockReminderRepository()
			uc := usecase.NewCreateReminderUseCase(repo, &mockEventPublisher{}, nil, nil)

			_, err := uc.Execute(context.Background(), tt.req)

			testutil.RequireErrorKind(t, err, model.ErrValidation, tt.msg)
			assert.Empty(t, repo.reminders)
		})
	}

	t.Run("fails when save fails", func(t *testing.T) {
		repo := newMockReminderRepository()
		repo.saveFunc = func(ctx context.Context, r model.Reminder) error {
			return model.ErrStorage
		}
		uc := usecase.NewCreateReminderUseCase(repo, &mockEventPublisher{}, nil, nil)

		_, err := uc.Execute(context.Background(), dto.CreateReminderRequest{UserID: "u1", DueAt: "2025-12-17"})

		require.ErrorIs(t, err, model.ErrStorage)
		assert.Contains(t, err.Error(), "save reminder")
	})
}

func TestListReminders_Execute(t *testing.T) {
	later := reminderAt(t, "u1", testutil.FixedNow.Add(72*time.Hour), false)
	earlier := reminderAt(t, "u2", testutil.FixedNow.Add(-time.Hour), true)
	repo := newMockReminderRepository(later, earlier)

	resp, err := usecase.NewListRemindersUseCase(repo).Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Reminders, 2)
	assert.Equal(t, earlier.ID().String(), resp.Reminders[0].ID)
	assert.True(t, resp.Reminders[0].Notified)
	assert.Equal(t, later.ID().String(), resp.Reminders[1].ID)
}

func TestListDueReminders_Execute(t *testing.T) {
	t.Run("returns only past and un-notified reminders", func(t *testing.T) {
		past := reminderAt(t, "u1", testutil.FixedNow.Add(-time.Hour), false)
		exactlyNow := reminderAt(t, "u1", testutil.FixedNow, false)
		future := reminderAt(t, "u1", testutil.FixedNow.Add(time.Minute), false)
		done := reminderAt(t, "u1", testutil.FixedNow.Add(-2*time.Hour), true)
		repo := newMockReminderRepository(past, exactlyNow, future, done)
		uc := usecase.NewListDueRemindersUseCase(repo, testutil.FixedClock())

		resp, err := uc.Execute(context.Background())

		require.NoError(t, err)
		require.Equal(t, 2, resp.Count)
		assert.Equal(t, past.ID().String(), resp.Reminders[0].ID)
		assert.Equal(t, exactlyNow.ID().String(), resp.Reminders[1].ID)
		require.Len(t, repo.dueQueries, 1)
		assert.Equal(t, testutil.FixedNow, repo.dueQueries[0].Time())
	})

	t.Run("propagates storage error", func(t *testing.T) {
		repo := newMockReminderRepository()
		repo.listFunc = func(ctx context.Context) ([]model.Reminder, error) {
			return nil, model.ErrStorage
		}

		_, err := usecase.NewListDueRemindersUseCase(repo, nil).Execute(context.Background())

		require.ErrorIs(t, err, model.ErrStorage)
		assert.Contains(t, err.Error(), "list due reminders")
	})
}

func TestMarkReminderNotified_Execute(t *testing.T) {
	t.Run("marks reminder and drops it from the due list", func(t *testing.T) {
		r := reminderAt(t, "u1", testutil.FixedNow.Add(-time.Hour), false)
		repo := newMockReminderRepository(r)
		publisher := &mockEventPublisher{}
		mark := usecase.NewMarkReminderNotifiedUseCase(repo, publisher, nil, testutil.FixedClock())
		due := usecase.NewListDueRemindersUseCase(repo, testutil.FixedClock())

		resp, err := mark.Execute(context.Background(), r.ID().String())

		require.NoError(t, err)
		assert.True(t, resp.Notified)
		require.Len(t, publisher.publishedEvents, 1)
		assert.Equal(t, event.TypeReminderNotified, publisher.publishedEvents[0].EventType())

		list, err := due.Execute(context.Background())
		require.NoError(t, err)
		assert.Zero(t, list.Count)
	})

	t.Run("is idempotent", func(t *testing.T) {
		r := reminderAt(t, "u1", testutil.FixedNow.Add(-time.Hour), false)
		repo := newMockReminderRepository(r)
		publisher := &mockEventPublisher{}
		uc := usecase.NewMarkReminderNotifiedUseCase(repo, publisher, nil, testutil.FixedClock())

		_, err := uc.Execute(context.Background(), r.ID().String())
		require.NoError(t, err)
		resp, err := uc.Execute(context.Background(), r.ID().String())
		require.NoError(t, err)

		assert.True(t, resp.Notified)
		assert.Len(t, publisher.publishedEvents, 1)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		uc := usecase.NewMarkReminderNotifiedUseCase(newMockReminderRepository(), &mockEventPublisher{}, nil, nil)

		_, err := uc.Execute(context.Background(), uuid.NewString())

		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("malformed id is not found", func(t *testing.T) {
		repo := newMockReminderRepository()
		called := false
		repo.updateFunc = func(context.Context, uuid.UUID, port.ReminderUpdateFunc) (model.Reminder, error) {
			called = true
			return model.Reminder{}, nil
		}
		uc := usecase.NewMarkReminderNotifiedUseCase(repo, &mockEventPublisher{}, nil, nil)

		_, err := uc.Execute(context.Background(), "42")

		require.ErrorIs(t, err, model.ErrNotFound)
		assert.False(t, called)
	})

	t.Run("storage failure is reported", func(t *testing.T) {
		repo := newMockReminderRepository()
		repo.updateFunc = func(context.Context, uuid.UUID, port.ReminderUpdateFunc) (model.Reminder, error) {
			return model.Reminder{}, errors.Join(model.ErrStorage, errors.New("deadlock"))
		}
		uc := usecase.NewMarkReminderNotifiedUseCase(repo, &mockEventPublisher{}, nil, nil)

		_, err := uc.Execute(context.Background(), uuid.NewString())

		require.ErrorIs(t, err, model.ErrStorage)
		assert.Contains(t, err.Error(), "mark reminder notified")
	})
}
