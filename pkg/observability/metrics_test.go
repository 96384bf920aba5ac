package observability

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestInitMetricsExposesInstruments(t *testing.T) {
	provider, handler, err := InitMetrics(MetricsConfig{})
	if err != nil {
		t.Fatalf("InitMetrics: %v", err)
	}
	defer func() { _ = provider.Shutdown(context.Background()) }()

	counter, err := provider.Meter("test").Int64Counter("truecost.test.requests")
	if err != nil {
		t.Fatalf("create counter: %v", err)
	}
	counter.Add(context.Background(), 3)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "truecost_test_requests_total") {
		t.Errorf("expected counter in scrape output, got:\n%s", body)
	}
}
