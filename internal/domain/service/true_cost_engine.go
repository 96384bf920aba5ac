package service

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/truecost/mortgage-service/internal/domain/model"
	"github.com/truecost/mortgage-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// TrueCostEngine – EMI plus estimated recurring ownership costs
// ---------------------------------------------------------------------------

// Annual ownership cost estimates, as fractions of the principal.
var (
	annualTaxRate         = decimal.New(12, -3) // 1.2%
	annualInsuranceRate   = decimal.New(5, -3)  // 0.5%
	annualMaintenanceRate = decimal.New(1, -2)  // 1.0%
)

var (
	twelve        = decimal.NewFromInt(12)
	percentPerMth = decimal.NewFromInt(1200)
)

// LoanTerms are the borrower-supplied inputs to the calculation.
type LoanTerms struct {
	Principal   decimal.Decimal // loan amount, >= 0
	AnnualRate  decimal.Decimal // nominal annual rate in percent, >= 0
	TenureYears int             // > 0
	CreditScore valueobject.CreditScore
}

// MonthlyHidden splits the recurring non-loan costs.
type MonthlyHidden struct {
	Tax         decimal.Decimal
	Insurance   decimal.Decimal
	Maintenance decimal.Decimal
}

// Total sums the three components.
func (h MonthlyHidden) Total() decimal.Decimal {
	return h.Tax.Add(h.Insurance).Add(h.Maintenance)
}

// TrueCost is the result of a calculation. Monetary values are rounded to
// two decimal places. MonthlyHiddenTotal rounds the exact sum of the
// components, so it can differ from MonthlyHidden.Total() by a cent.
type TrueCost struct {
	CreditTier         valueobject.CreditTier
	RateAdjustment     decimal.Decimal
	AdjustedRate       decimal.Decimal
	EMI                decimal.Decimal
	TotalInterest      decimal.Decimal
	TotalPayable       decimal.Decimal
	TrueMonthlyCost    decimal.Decimal
	HiddenCosts        decimal.Decimal // over the life of the loan
	MonthlyHiddenTotal decimal.Decimal
	MonthlyHidden      MonthlyHidden
	Months             int
}

// TrueCostEngine computes loan repayment figures. It holds no state.
type TrueCostEngine struct{}

// NewTrueCostEngine returns a new engine instance.
func NewTrueCostEngine() *TrueCostEngine {
	return &TrueCostEngine{}
}

// Calculate applies the credit-score markup to the nominal rate, amortizes
// the principal over the tenure and layers the monthly ownership estimates on
// top:
//
//	m   = (rate + adjustment) / 100 / 12
//	n   = years * 12
//	EMI = P * m * (1+m)^n / ((1+m)^n - 1), or P / n when m = 0
//	true monthly cost = EMI + P * (1.2% + 0.5% + 1.0%) / 12
//
// Degenerate inputs are reported as model.ErrValidation.
func (e *TrueCostEngine) Calculate(terms LoanTerms) (TrueCost, error) {
	if terms.Principal.IsNegative() {
		return TrueCost{}, fmt.Errorf("%w: loan amount must not be negative", model.ErrValidation)
	}
	if terms.AnnualRate.IsNegative() {
		return TrueCost{}, fmt.Errorf("%w: rate must not be negative", model.ErrValidation)
	}
	if terms.TenureYears <= 0 {
		return TrueCost{}, fmt.Errorf("%w: tenure must be at least one year", model.ErrValidation)
	}

	adjustment := terms.CreditScore.RateAdjustment()
	adjustedRate := terms.AnnualRate.Add(adjustment)
	months := terms.TenureYears * 12
	n := decimal.NewFromInt(int64(months))

	emi, err := monthlyInstallment(terms.Principal, adjustedRate.Div(percentPerMth), months)
	if err != nil {
		return TrueCost{}, err
	}

	hidden := MonthlyHidden{
		Tax:         terms.Principal.Mul(annualTaxRate).Div(twelve),
		Insurance:   terms.Principal.Mul(annualInsuranceRate).Div(twelve),
		Maintenance: terms.Principal.Mul(annualMaintenanceRate).Div(twelve),
	}
	hiddenMonthly := hidden.Total()

	totalInterest := emi.Mul(n).Sub(terms.Principal)
	totalHidden := hiddenMonthly.Mul(n)
	totalPayable := terms.Principal.Add(totalInterest).Add(totalHidden)

	return TrueCost{
		CreditTier:         terms.CreditScore.Tier(),
		RateAdjustment:     adjustment.Round(2),
		AdjustedRate:       adjustedRate.Round(2),
		EMI:                emi.Round(2),
		TotalInterest:      totalInterest.Round(2),
		TotalPayable:       totalPayable.Round(2),
		TrueMonthlyCost:    emi.Add(hiddenMonthly).Round(2),
		HiddenCosts:        totalHidden.Round(2),
		MonthlyHiddenTotal: hiddenMonthly.Round(2),
		MonthlyHidden: MonthlyHidden{
			Tax:         hidden.Tax.Round(2),
			Insurance:   hidden.Insurance.Round(2),
			Maintenance: hidden.Maintenance.Round(2),
		},
		Months: months,
	}, nil
}

// monthlyInstallment returns the unrounded EMI. The power term is evaluated
// in float64 and converted back to decimal for the monetary arithmetic.
func monthlyInstallment(principal, monthlyRate decimal.Decimal, months int) (decimal.Decimal, error) {
	if monthlyRate.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(months))), nil
	}

	m := monthlyRate.InexactFloat64()
	factor := math.Pow(1+m, float64(months))
	payment := principal.InexactFloat64() * m * factor / (factor - 1)
	if math.IsNaN(payment) || math.IsInf(payment, 0) {
		return decimal.Decimal{}, fmt.Errorf("%w: loan parameters are out of range", model.ErrValidation)
	}
	return decimal.NewFromFloat(payment), nil
}
