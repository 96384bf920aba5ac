package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/truecost/mortgage-service/internal/domain/model"
)

type errorBody struct {
	Error  string `json:"error"`
	Status string `json:"status"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg, Status: "error"})
}

// writeError maps a use case error onto an HTTP status via its sentinel.
// Validation and not-found messages are shown to the client; storage and
// unexpected failures are logged and reported generically.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, model.ErrValidation):
		writeErrorMessage(w, http.StatusBadRequest, clientMessage(err, model.ErrValidation))
	case errors.Is(err, model.ErrNotFound):
		writeErrorMessage(w, http.StatusNotFound, clientMessage(err, model.ErrNotFound))
	case errors.Is(err, model.ErrStorage):
		logger.ErrorContext(r.Context(), "storage failure", "path", r.URL.Path, "error", err)
		writeErrorMessage(w, http.StatusInternalServerError, "database error")
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeErrorMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

// clientMessage drops operation prefixes and the sentinel text, leaving the
// detail that follows it.
func clientMessage(err, sentinel error) string {
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}

// number renders a decimal as a JSON number.
func number(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func optionalNumber(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}
