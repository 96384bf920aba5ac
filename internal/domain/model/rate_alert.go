package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/truecost/mortgage-service/internal/domain/event"
	"github.com/truecost/mortgage-service/pkg/events"
)

// RateAlert records the rate below which a user wants to hear about a
// mortgage offer. Alerts are write-once.
type RateAlert struct {
	events.EventCollector
	createdAt  time.Time
	targetRate decimal.Decimal
	userID     string
	id         uuid.UUID
}

// NewRateAlert creates an alert for userID. The target rate is not bounded.
func NewRateAlert(userID string, targetRate decimal.Decimal, now time.Time) (RateAlert, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return RateAlert{}, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if err := checkLength("user id", userID); err != nil {
		return RateAlert{}, err
	}

	a := RateAlert{
		id:         uuid.New(),
		userID:     userID,
		targetRate: targetRate,
		createdAt:  now.UTC(),
	}
	a.Record(event.NewRateAlertCreated(a.id, a.userID, a.targetRate, a.createdAt))
	return a, nil
}

// ReconstructRateAlert rebuilds an alert from persisted state without raising events.
func ReconstructRateAlert(id uuid.UUID, userID string, targetRate decimal.Decimal, createdAt time.Time) RateAlert {
	return RateAlert{
		id:         id,
		userID:     userID,
		targetRate: targetRate,
		createdAt:  createdAt.UTC(),
	}
}

func (a RateAlert) ID() uuid.UUID               { return a.id }
func (a RateAlert) UserID() string              { return a.userID }
func (a RateAlert) TargetRate() decimal.Decimal { return a.targetRate }
func (a RateAlert) CreatedAt() time.Time        { return a.createdAt }

// IsMetBy reports whether the given market rate is already at or below the
// alert's target.
func (a RateAlert) IsMetBy(currentRate decimal.Decimal) bool {
	return currentRate.LessThanOrEqual(a.targetRate)
}
