package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/truecost/mortgage-service/internal/application/dto"
	"github.com/truecost/mortgage-service/internal/domain/model"
	"github.com/truecost/mortgage-service/internal/domain/port"
)

// SetAlertUseCase stores a rate alert and reports whether it is already met.
type SetAlertUseCase struct {
	alertRepo port.AlertRepository
	rates     port.RateSource
	publisher port.EventPublisher
	logger    *slog.Logger
	now       Clock
}

// NewSetAlertUseCase wires dependencies.
func NewSetAlertUseCase(
	alertRepo port.AlertRepository,
	rates port.RateSource,
	publisher port.EventPublisher,
	logger *slog.Logger,
	now Clock,
) *SetAlertUseCase {
	return &SetAlertUseCase{
		alertRepo: alertRepo,
		rates:     rates,
		publisher: publisher,
		logger:    loggerOrDefault(logger),
		now:       clockOrDefault(now),
	}
}

// Execute validates the request, samples the current rate and persists the alert.
func (uc *SetAlertUseCase) Execute(
	ctx context.Context,
	req dto.SetAlertRequest,
) (dto.SetAlertResponse, error) {
	if strings.TrimSpace(req.UserID) == "" || strings.TrimSpace(req.Target) == "" {
		return dto.SetAlertResponse{}, fmt.Errorf("%w: missing uuid or target", model.ErrValidation)
	}
	target, err := parseDecimal("target", req.Target)
	if err != nil {
		return dto.SetAlertResponse{}, err
	}

	// 1. Sample the current rate for the immediate-notification hint.
	current, err := uc.rates.CurrentRate(ctx)
	if err != nil {
		return dto.SetAlertResponse{}, fmt.Errorf("current rate: %w", err)
	}

	// 2. Create and persist the alert.
	alert, err := model.NewRateAlert(req.UserID, target, uc.now())
	if err != nil {
		return dto.SetAlertResponse{}, fmt.Errorf("create alert: %w", err)
	}
	if err := uc.alertRepo.Save(ctx, alert); err != nil {
		return dto.SetAlertResponse{}, fmt.Errorf("save alert: %w", err)
	}

	// 3. Publish events.
	publishEvents(ctx, uc.publisher, uc.logger, alert.DomainEvents())

	return dto.SetAlertResponse{
		AlertID:     alert.ID().String(),
		Notified:    alert.IsMetBy(current),
		CurrentRate: current,
	}, nil
}
