package rest

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/truecost/mortgage-service/internal/application/dto"
	"github.com/truecost/mortgage-service/internal/application/usecase"
	"github.com/truecost/mortgage-service/internal/domain/model"
)

const (
	rateMessage             = "Live rates fetched securely"
	alertSetMessage         = "Alert set anonymously!"
	reminderCreatedMessage  = "Reminder created"
	reminderNotifiedMessage = "Reminder marked notified"
	noDataMessage           = "No data provided"
)

// UseCases groups the application operations served over HTTP.
type UseCases struct {
	Calculate       *usecase.CalculateTrueCostUseCase
	CurrentRate     *usecase.GetCurrentRateUseCase
	SetAlert        *usecase.SetAlertUseCase
	ListAlerts      *usecase.ListAlertsUseCase
	CreateReminder  *usecase.CreateReminderUseCase
	ListReminders   *usecase.ListRemindersUseCase
	ListDue         *usecase.ListDueRemindersUseCase
	MarkNotified    *usecase.MarkReminderNotifiedUseCase
	GovernmentNews  *usecase.GetGovernmentNewsUseCase
	AgentsDirectory *usecase.ListAgentsUseCase
}

// APIHandler serves the /api routes.
type APIHandler struct {
	uc     UseCases
	logger *slog.Logger
}

// NewAPIHandler creates the API handler.
func NewAPIHandler(uc UseCases, logger *slog.Logger) *APIHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &APIHandler{uc: uc, logger: logger}
}

// RegisterRoutes attaches the API routes to the given mux.
func (h *APIHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/rates", h.getRates)
	mux.HandleFunc("POST /api/calculate", h.calculate)

	mux.HandleFunc("POST /api/set-alert", h.setAlert)
	mux.HandleFunc("POST /api/alert", h.setAlert)
	mux.HandleFunc("GET /api/alerts", h.listAlerts)

	mux.HandleFunc("POST /api/reminders", h.createReminder)
	mux.HandleFunc("GET /api/reminders", h.listReminders)
	mux.HandleFunc("GET /api/reminders/due", h.listDueReminders)
	mux.HandleFunc("POST /api/reminders/{id}/notify", h.markNotified)

	mux.HandleFunc("GET /api/gov-news", h.governmentNews)
	mux.HandleFunc("GET /api/agents", h.agents)

	mux.HandleFunc("/api/", h.notFound)
}

// notFound answers any /api path or method the routes above do not match.
func (h *APIHandler) notFound(w http.ResponseWriter, _ *http.Request) {
	writeErrorMessage(w, http.StatusNotFound, "resource not found")
}

// ---------------------------------------------------------------------------
// Rates and calculation
// ---------------------------------------------------------------------------

type rateResponse struct {
	CurrentRate float64 `json:"current_rate"`
	Rate        float64 `json:"rate"`
	Trend       string  `json:"trend"`
	Message     string  `json:"message"`
}

func (h *APIHandler) getRates(w http.ResponseWriter, r *http.Request) {
	resp, err := h.uc.CurrentRate.Execute(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	rate := number(resp.CurrentRate)
	writeJSON(w, http.StatusOK, rateResponse{
		CurrentRate: rate,
		Rate:        rate,
		Trend:       resp.Trend,
		Message:     rateMessage,
	})
}

type breakdownResponse struct {
	PrincipalInterest float64 `json:"principal_interest"`
	TaxesMaintenance  float64 `json:"taxes_maintenance"`
}

type monthlyHiddenResponse struct {
	Tax         float64 `json:"tax"`
	Insurance   float64 `json:"insurance"`
	Maintenance float64 `json:"maintenance"`
}

type calculateResponse struct {
	BaseEMI                float64               `json:"base_emi"`
	MonthlyEMI             float64               `json:"monthly_emi"`
	TotalInterest          float64               `json:"total_interest"`
	TotalAmount            float64               `json:"total_amount"`
	TrueMonthlyCost        float64               `json:"true_monthly_cost"`
	HiddenCosts            float64               `json:"hidden_costs"`
	InterestRateAdjustment float64               `json:"interest_rate_adjustment"`
	AdjustedRate           float64               `json:"adjusted_rate"`
	CreditTier             string                `json:"credit_tier"`
	Months                 int                   `json:"months"`
	Breakdown              breakdownResponse     `json:"breakdown"`
	MonthlyHidden          monthlyHiddenResponse `json:"monthly_hidden"`
}

func (h *APIHandler) calculate(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeObject(w, r)
	if !ok {
		writeErrorMessage(w, http.StatusBadRequest, noDataMessage)
		return
	}

	resp, err := h.uc.Calculate.Execute(r.Context(), dto.CalculateRequest{
		LoanAmount:  body.text("loanAmount"),
		Rate:        body.text("rate"),
		Tenure:      body.text("tenure"),
		CreditScore: body.text("cibilScore"),
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	emi := number(resp.EMI)
	writeJSON(w, http.StatusOK, calculateResponse{
		BaseEMI:                emi,
		MonthlyEMI:             emi,
		TotalInterest:          number(resp.TotalInterest),
		TotalAmount:            number(resp.TotalAmount),
		TrueMonthlyCost:        number(resp.TrueMonthlyCost),
		HiddenCosts:            number(resp.HiddenCosts),
		InterestRateAdjustment: number(resp.RateAdjustment),
		AdjustedRate:           number(resp.AdjustedRate),
		CreditTier:             resp.CreditTier,
		Months:                 resp.Months,
		Breakdown: breakdownResponse{
			PrincipalInterest: emi,
			TaxesMaintenance:  number(resp.MonthlyHidden.Total),
		},
		MonthlyHidden: monthlyHiddenResponse{
			Tax:         number(resp.MonthlyHidden.Tax),
			Insurance:   number(resp.MonthlyHidden.Insurance),
			Maintenance: number(resp.MonthlyHidden.Maintenance),
		},
	})
}

// ---------------------------------------------------------------------------
// Alerts
// ---------------------------------------------------------------------------

type setAlertResponse struct {
	Message     string  `json:"message"`
	Status      string  `json:"status"`
	Notified    bool    `json:"notified"`
	CurrentRate float64 `json:"current_rate"`
	AlertID     string  `json:"alert_id"`
}

func (h *APIHandler) setAlert(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeObject(w, r)
	if !ok {
		writeErrorMessage(w, http.StatusBadRequest, noDataMessage)
		return
	}

	resp, err := h.uc.SetAlert.Execute(r.Context(), dto.SetAlertRequest{
		UserID: body.text("uuid"),
		Target: body.text("target"),
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, setAlertResponse{
		Message:     alertSetMessage,
		Status:      "success",
		Notified:    resp.Notified,
		CurrentRate: number(resp.CurrentRate),
		AlertID:     resp.AlertID,
	})
}

type alertJSON struct {
	ID         string  `json:"id"`
	UserUUID   string  `json:"user_uuid"`
	TargetRate float64 `json:"target_rate"`
}

type alertListResponse struct {
	Alerts []alertJSON `json:"alerts"`
	Count  int         `json:"count"`
}

func (h *APIHandler) listAlerts(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, h.logger, fmt.Errorf("%w: limit must be a whole number", model.ErrValidation))
			return
		}
		limit = n
	}

	resp, err := h.uc.ListAlerts.Execute(r.Context(), limit)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	alerts := make([]alertJSON, 0, len(resp.Alerts))
	for _, a := range resp.Alerts {
		alerts = append(alerts, alertJSON{ID: a.ID, UserUUID: a.UserID, TargetRate: number(a.TargetRate)})
	}
	writeJSON(w, http.StatusOK, alertListResponse{Alerts: alerts, Count: resp.Count})
}

// ---------------------------------------------------------------------------
// Reminders
// ---------------------------------------------------------------------------

type reminderRef struct {
	ID string `json:"id"`
}

type createReminderResponse struct {
	Message  string      `json:"message"`
	Status   string      `json:"status"`
	Reminder reminderRef `json:"reminder"`
}

func (h *APIHandler) createReminder(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeObject(w, r)
	if !ok {
		writeErrorMessage(w, http.StatusBadRequest, noDataMessage)
		return
	}

	resp, err := h.uc.CreateReminder.Execute(r.Context(), dto.CreateReminderRequest{
		UserID: body.text("uuid"),
		Title:  body.text("title"),
		Amount: body.text("amount"),
		DueAt:  body.text("due_at"),
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, createReminderResponse{
		Message:  reminderCreatedMessage,
		Status:   "success",
		Reminder: reminderRef{ID: resp.ID},
	})
}

// reminderJSON is the listing shape. Notified is omitted from the due listing,
// where it is always false.
type reminderJSON struct {
	ID       string   `json:"id"`
	UserUUID string   `json:"user_uuid"`
	Title    string   `json:"title"`
	Amount   *float64 `json:"amount"`
	DueAt    string   `json:"due_at"`
	Notified *bool    `json:"notified,omitempty"`
}

type reminderListResponse struct {
	Reminders []reminderJSON `json:"reminders"`
	Count     int            `json:"count"`
}

func toReminderList(resp dto.ReminderListResponse, withNotified bool) reminderListResponse {
	out := make([]reminderJSON, 0, len(resp.Reminders))
	for _, rem := range resp.Reminders {
		item := reminderJSON{
			ID:       rem.ID,
			UserUUID: rem.UserID,
			Title:    rem.Title,
			Amount:   optionalNumber(rem.Amount),
			DueAt:    rem.DueAt.String(),
		}
		if withNotified {
			notified := rem.Notified
			item.Notified = &notified
		}
		out = append(out, item)
	}
	return reminderListResponse{Reminders: out, Count: resp.Count}
}

func (h *APIHandler) listReminders(w http.ResponseWriter, r *http.Request) {
	resp, err := h.uc.ListReminders.Execute(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toReminderList(resp, true))
}

func (h *APIHandler) listDueReminders(w http.ResponseWriter, r *http.Request) {
	resp, err := h.uc.ListDue.Execute(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toReminderList(resp, false))
}

type messageResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

func (h *APIHandler) markNotified(w http.ResponseWriter, r *http.Request) {
	_, err := h.uc.MarkNotified.Execute(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			writeErrorMessage(w, http.StatusNotFound, "Reminder not found")
			return
		}
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: reminderNotifiedMessage, Status: "success"})
}

// ---------------------------------------------------------------------------
// Informational listings
// ---------------------------------------------------------------------------

type newsJSON struct {
	Title string `json:"title"`
	Date  string `json:"date"`
}

type agentJSON struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
}

func (h *APIHandler) governmentNews(w http.ResponseWriter, r *http.Request) {
	items, err := h.uc.GovernmentNews.Execute(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	news := make([]newsJSON, 0, len(items))
	for _, n := range items {
		news = append(news, newsJSON{Title: n.Title, Date: n.Date})
	}
	writeJSON(w, http.StatusOK, map[string]any{"news": news})
}

func (h *APIHandler) agents(w http.ResponseWriter, r *http.Request) {
	items, err := h.uc.AgentsDirectory.Execute(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	agents := make([]agentJSON, 0, len(items))
	for _, a := range items {
		agents = append(agents, agentJSON{Name: a.Name, Phone: a.Phone, Company: a.Company})
	}
	writeJSON(w, http.StatusOK, map[string]any{"agents": agents, "count": len(agents)})
}
