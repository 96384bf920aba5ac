package usecase

import (
	"context"
	"fmt"

	"github.com/truecost/mortgage-service/internal/application/dto"
	"github.com/truecost/mortgage-service/internal/domain/port"
)

// MaxAlertListing caps the debug alert listing.
const MaxAlertListing = 50

// ListAlertsUseCase returns the most recently stored alerts.
type ListAlertsUseCase struct {
	alertRepo port.AlertRepository
}

// NewListAlertsUseCase wires dependencies.
func NewListAlertsUseCase(alertRepo port.AlertRepository) *ListAlertsUseCase {
	return &ListAlertsUseCase{alertRepo: alertRepo}
}

// Execute lists up to limit alerts, newest first. A non-positive or
// oversized limit falls back to MaxAlertListing.
func (uc *ListAlertsUseCase) Execute(ctx context.Context, limit int) (dto.AlertListResponse, error) {
	if limit <= 0 || limit > MaxAlertListing {
		limit = MaxAlertListing
	}

	alerts, err := uc.alertRepo.ListRecent(ctx, limit)
	if err != nil {
		return dto.AlertListResponse{}, fmt.Errorf("list alerts: %w", err)
	}

	out := make([]dto.AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, toAlertResponse(a))
	}
	return dto.AlertListResponse{Alerts: out, Count: len(out)}, nil
}
