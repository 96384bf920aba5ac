package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/truecost/mortgage-service/internal/domain/model"
	"github.com/truecost/mortgage-service/internal/domain/port"
	"github.com/truecost/mortgage-service/internal/domain/valueobject"
	pkgpostgres "github.com/truecost/mortgage-service/pkg/postgres"
)

var _ port.ReminderRepository = (*ReminderRepo)(nil)

const reminderColumns = `id, user_uuid, title, amount, due_at, notified, created_at`

// ReminderRepo implements port.ReminderRepository.
type ReminderRepo struct {
	pool *pgxpool.Pool
}

// NewReminderRepo creates a new PostgreSQL-backed reminder repository.
func NewReminderRepo(pool *pgxpool.Pool) *ReminderRepo {
	return &ReminderRepo{pool: pool}
}

// Save inserts a new reminder.
func (r *ReminderRepo) Save(ctx context.Context, reminder model.Reminder) error {
	err := pkgpostgres.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO reminders (`+reminderColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`,
			reminder.ID(), reminder.UserID(), reminder.Title(),
			nullableAmount(reminder.Amount()), reminder.DueAt().Time(),
			reminder.Notified(), reminder.CreatedAt(),
		)
		return err
	})
	if err != nil {
		return storageErr("save reminder", err)
	}
	return nil
}

// ListAll returns every reminder, earliest due first.
func (r *ReminderRepo) ListAll(ctx context.Context) ([]model.Reminder, error) {
	result, err := queryReminders(ctx, r.pool, `
		SELECT `+reminderColumns+`
		FROM reminders
		ORDER BY due_at ASC, created_at ASC
	`)
	if err != nil {
		return nil, storageErr("list reminders", err)
	}
	return result, nil
}

// ListDue returns un-notified reminders due at or before now.
func (r *ReminderRepo) ListDue(ctx context.Context, now valueobject.UTCInstant) ([]model.Reminder, error) {
	result, err := queryReminders(ctx, r.pool, `
		SELECT `+reminderColumns+`
		FROM reminders
		WHERE due_at <= $1 AND notified = FALSE
		ORDER BY due_at ASC, created_at ASC
	`, now.Time())
	if err != nil {
		return nil, storageErr("list due reminders", err)
	}
	return result, nil
}

// Update locks the row, applies fn and writes the mutable columns back.
func (r *ReminderRepo) Update(ctx context.Context, id uuid.UUID, fn port.ReminderUpdateFunc) (model.Reminder, error) {
	var updated model.Reminder
	err := pkgpostgres.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			SELECT `+reminderColumns+`
			FROM reminders
			WHERE id = $1
			FOR UPDATE
		`, id)
		current, err := scanReminder(row)
		if err != nil {
			return err
		}

		next, err := fn(current)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			UPDATE reminders
			SET title = $2, amount = $3, due_at = $4, notified = $5
			WHERE id = $1
		`, id, next.Title(), nullableAmount(next.Amount()), next.DueAt().Time(), next.Notified())
		if err != nil {
			return err
		}
		updated = next
		return nil
	})
	switch {
	case err == nil:
		return updated, nil
	case errors.Is(err, pgx.ErrNoRows):
		return model.Reminder{}, fmt.Errorf("%w: reminder %s", model.ErrNotFound, id)
	case errors.Is(err, model.ErrValidation), errors.Is(err, model.ErrNotFound):
		return model.Reminder{}, err
	default:
		return model.Reminder{}, storageErr("update reminder", err)
	}
}

func queryReminders(ctx context.Context, q pkgpostgres.Querier, sql string, args ...any) ([]model.Reminder, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Reminder
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, rem)
	}
	return result, rows.Err()
}

func nullableAmount(amount *decimal.Decimal) decimal.NullDecimal {
	if amount == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*amount)
}

func scanReminder(s scannable) (model.Reminder, error) {
	var (
		id        uuid.UUID
		userID    string
		title     string
		amount    decimal.NullDecimal
		dueAt     time.Time
		notified  bool
		createdAt time.Time
	)
	if err := s.Scan(&id, &userID, &title, &amount, &dueAt, &notified, &createdAt); err != nil {
		return model.Reminder{}, fmt.Errorf("scan reminder: %w", err)
	}

	var amt *decimal.Decimal
	if amount.Valid {
		a := amount.Decimal
		amt = &a
	}
	return model.ReconstructReminder(
		id, userID, title, amt, valueobject.NewUTCInstant(dueAt), notified, createdAt,
	), nil
}
