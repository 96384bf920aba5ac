package dto

import (
	"github.com/shopspring/decimal"

	"github.com/truecost/mortgage-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// Numeric request fields are carried as their textual form so the use cases
// can tell a missing value ("") from a malformed one.

// CalculateRequest carries the inputs of a true-cost calculation.
type CalculateRequest struct {
	LoanAmount  string
	Rate        string
	Tenure      string
	CreditScore string // optional
}

// SetAlertRequest registers interest in a target rate.
type SetAlertRequest struct {
	UserID string
	Target string
}

// CreateReminderRequest schedules an EMI reminder.
type CreateReminderRequest struct {
	UserID string
	Title  string // optional
	Amount string // optional
	DueAt  string // ISO-8601
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// RateResponse describes the prevailing rate.
type RateResponse struct {
	CurrentRate decimal.Decimal
	Trend       string
}

// HiddenCostResponse is the monthly split of ownership costs.
type HiddenCostResponse struct {
	Tax         decimal.Decimal
	Insurance   decimal.Decimal
	Maintenance decimal.Decimal
	Total       decimal.Decimal
}

// TrueCostResponse is the outcome of a calculation, rounded to 2 dp.
type TrueCostResponse struct {
	EMI             decimal.Decimal
	TotalInterest   decimal.Decimal
	TotalAmount     decimal.Decimal
	TrueMonthlyCost decimal.Decimal
	HiddenCosts     decimal.Decimal
	RateAdjustment  decimal.Decimal
	AdjustedRate    decimal.Decimal
	CreditTier      string
	Months          int
	MonthlyHidden   HiddenCostResponse
}

// SetAlertResponse reports the stored alert and whether the target is
// already met at the current rate.
type SetAlertResponse struct {
	AlertID     string
	Notified    bool
	CurrentRate decimal.Decimal
}

// AlertResponse is the external representation of a rate alert.
type AlertResponse struct {
	ID         string
	UserID     string
	TargetRate decimal.Decimal
}

// AlertListResponse wraps a list of alerts.
type AlertListResponse struct {
	Alerts []AlertResponse
	Count  int
}

// ReminderResponse is the external representation of a reminder.
type ReminderResponse struct {
	ID       string
	UserID   string
	Title    string
	Amount   *decimal.Decimal
	DueAt    valueobject.UTCInstant
	Notified bool
}

// ReminderListResponse wraps a list of reminders.
type ReminderListResponse struct {
	Reminders []ReminderResponse
	Count     int
}

// NewsResponse is one government news headline.
type NewsResponse struct {
	Title string
	Date  string
}

// AgentResponse is one agent directory entry.
type AgentResponse struct {
	Name    string
	Phone   string
	Company string
}
