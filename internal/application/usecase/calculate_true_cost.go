package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/truecost/mortgage-service/internal/application/dto"
	"github.com/truecost/mortgage-service/internal/domain/service"
	"github.com/truecost/mortgage-service/internal/domain/valueobject"
)

// CalculateTrueCostUseCase runs the true-cost engine over request input.
type CalculateTrueCostUseCase struct {
	engine *service.TrueCostEngine
}

// NewCalculateTrueCostUseCase wires dependencies.
func NewCalculateTrueCostUseCase(engine *service.TrueCostEngine) *CalculateTrueCostUseCase {
	if engine == nil {
		engine = service.NewTrueCostEngine()
	}
	return &CalculateTrueCostUseCase{engine: engine}
}

// Execute validates and converts the request, then calculates.
func (uc *CalculateTrueCostUseCase) Execute(
	_ context.Context,
	req dto.CalculateRequest,
) (dto.TrueCostResponse, error) {
	principal, err := parseDecimal("loanAmount", req.LoanAmount)
	if err != nil {
		return dto.TrueCostResponse{}, err
	}
	rate, err := parseDecimal("rate", req.Rate)
	if err != nil {
		return dto.TrueCostResponse{}, err
	}
	tenure, err := parseWhole("tenure", req.Tenure)
	if err != nil {
		return dto.TrueCostResponse{}, err
	}

	score := valueobject.DefaultCreditScore
	if strings.TrimSpace(req.CreditScore) != "" {
		score, err = parseCreditScore(req.CreditScore)
		if err != nil {
			return dto.TrueCostResponse{}, err
		}
	}

	result, err := uc.engine.Calculate(service.LoanTerms{
		Principal:   principal,
		AnnualRate:  rate,
		TenureYears: tenure,
		CreditScore: score,
	})
	if err != nil {
		return dto.TrueCostResponse{}, fmt.Errorf("calculate true cost: %w", err)
	}

	return dto.TrueCostResponse{
		EMI:             result.EMI,
		TotalInterest:   result.TotalInterest,
		TotalAmount:     result.TotalPayable,
		TrueMonthlyCost: result.TrueMonthlyCost,
		HiddenCosts:     result.HiddenCosts,
		RateAdjustment:  result.RateAdjustment,
		AdjustedRate:    result.AdjustedRate,
		CreditTier:      string(result.CreditTier),
		Months:          result.Months,
		MonthlyHidden: dto.HiddenCostResponse{
			Tax:         result.MonthlyHidden.Tax,
			Insurance:   result.MonthlyHidden.Insurance,
			Maintenance: result.MonthlyHidden.Maintenance,
			Total:       result.MonthlyHiddenTotal,
		},
	}, nil
}
