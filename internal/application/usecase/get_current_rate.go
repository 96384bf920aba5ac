package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/truecost/mortgage-service/internal/application/dto"
	"github.com/truecost/mortgage-service/internal/domain/port"
)

// Rates below this threshold are reported as trending down.
var trendThreshold = decimal.RequireFromString("6.8")

const (
	TrendUp   = "up"
	TrendDown = "down"
)

// GetCurrentRateUseCase reports the prevailing mortgage rate.
type GetCurrentRateUseCase struct {
	rates port.RateSource
}

// NewGetCurrentRateUseCase wires dependencies.
func NewGetCurrentRateUseCase(rates port.RateSource) *GetCurrentRateUseCase {
	return &GetCurrentRateUseCase{rates: rates}
}

// Execute fetches the rate and classifies its trend.
func (uc *GetCurrentRateUseCase) Execute(ctx context.Context) (dto.RateResponse, error) {
	rate, err := uc.rates.CurrentRate(ctx)
	if err != nil {
		return dto.RateResponse{}, fmt.Errorf("current rate: %w", err)
	}
	return dto.RateResponse{CurrentRate: rate, Trend: Trend(rate)}, nil
}

// Trend classifies a rate against the 6.8% threshold.
func Trend(rate decimal.Decimal) string {
	if rate.LessThan(trendThreshold) {
		return TrendDown
	}
	return TrendUp
}
