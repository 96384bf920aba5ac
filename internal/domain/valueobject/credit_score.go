package valueobject

import "github.com/shopspring/decimal"

// DefaultCreditScore is assumed when a request carries no credit score.
const DefaultCreditScore CreditScore = 750

// CreditScore is a CIBIL-style creditworthiness indicator. Any integer is
// accepted; values outside the bureau's range fall into the nearest bucket.
type CreditScore int

// CreditTier names the bucket a score falls into.
type CreditTier string

const (
	CreditTierPoor      CreditTier = "poor"
	CreditTierFair      CreditTier = "fair"
	CreditTierGood      CreditTier = "good"
	CreditTierExcellent CreditTier = "excellent"
)

var (
	adjustmentPoor      = decimal.New(20, -1) // +2.0 percentage points
	adjustmentFair      = decimal.New(15, -1) // +1.5
	adjustmentGood      = decimal.New(5, -1)  // +0.5
	adjustmentExcellent = decimal.Zero
)

// Tier returns the bucket for the score.
//
//	score <  600 -> poor
//	score <  650 -> fair
//	score <  750 -> good
//	score >= 750 -> excellent
func (s CreditScore) Tier() CreditTier {
	switch {
	case s < 600:
		return CreditTierPoor
	case s < 650:
		return CreditTierFair
	case s < 750:
		return CreditTierGood
	default:
		return CreditTierExcellent
	}
}

// RateAdjustment returns the markup, in percentage points, added to the
// nominal annual rate for borrowers in this score's tier.
func (s CreditScore) RateAdjustment() decimal.Decimal {
	switch s.Tier() {
	case CreditTierPoor:
		return adjustmentPoor
	case CreditTierFair:
		return adjustmentFair
	case CreditTierGood:
		return adjustmentGood
	default:
		return adjustmentExcellent
	}
}
