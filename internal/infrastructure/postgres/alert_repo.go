package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/truecost/mortgage-service/internal/domain/model"
	"github.com/truecost/mortgage-service/internal/domain/port"
	pkgpostgres "github.com/truecost/mortgage-service/pkg/postgres"
)

var _ port.AlertRepository = (*AlertRepo)(nil)

// AlertRepo implements port.AlertRepository.
type AlertRepo struct {
	pool *pgxpool.Pool
}

// NewAlertRepo creates a new PostgreSQL-backed rate alert repository.
func NewAlertRepo(pool *pgxpool.Pool) *AlertRepo {
	return &AlertRepo{pool: pool}
}

// Save inserts a new alert. Alerts are never updated.
func (r *AlertRepo) Save(ctx context.Context, alert model.RateAlert) error {
	err := pkgpostgres.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO rate_alerts (id, user_uuid, target_rate, created_at)
			VALUES ($1, $2, $3, $4)
		`, alert.ID(), alert.UserID(), alert.TargetRate(), alert.CreatedAt())
		return err
	})
	if err != nil {
		return storageErr("save alert", err)
	}
	return nil
}

// ListRecent returns up to limit alerts, newest first.
func (r *AlertRepo) ListRecent(ctx context.Context, limit int) ([]model.RateAlert, error) {
	result, err := queryAlerts(ctx, r.pool, `
		SELECT id, user_uuid, target_rate, created_at
		FROM rate_alerts
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, storageErr("list alerts", err)
	}
	return result, nil
}

func queryAlerts(ctx context.Context, q pkgpostgres.Querier, sql string, args ...any) ([]model.RateAlert, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.RateAlert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

func scanAlert(s scannable) (model.RateAlert, error) {
	var (
		id        uuid.UUID
		userID    string
		target    decimal.Decimal
		createdAt time.Time
	)
	if err := s.Scan(&id, &userID, &target, &createdAt); err != nil {
		return model.RateAlert{}, fmt.Errorf("scan alert: %w", err)
	}
	return model.ReconstructRateAlert(id, userID, target, createdAt), nil
}
