package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/truecost/mortgage-service/internal/domain/port"
)

var _ port.RateSource = (*LiveRateSource)(nil)

// maxFeedBody bounds how much of the feed response is read.
const maxFeedBody = 64 << 10

// LiveRateSource reads the prevailing rate from an HTTP JSON feed of the form
// {"rate": 6.85} (a "current_rate" key is also accepted).
type LiveRateSource struct {
	client  *http.Client
	feedURL string
}

// NewLiveRateSource creates a feed-backed source. A nil client gets a traced
// one with the given timeout.
func NewLiveRateSource(feedURL string, client *http.Client, timeout time.Duration) *LiveRateSource {
	if client == nil {
		client = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &LiveRateSource{client: client, feedURL: feedURL}
}

type feedPayload struct {
	Rate        *decimal.Decimal `json:"rate"`
	CurrentRate *decimal.Decimal `json:"current_rate"`
}

// CurrentRate fetches and decodes the feed, rounding to two decimals.
func (s *LiveRateSource) CurrentRate(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.feedURL, nil)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("build rate feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("fetch rate feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Decimal{}, fmt.Errorf("rate feed returned status %d", resp.StatusCode)
	}

	var payload feedPayload
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxFeedBody)).Decode(&payload); err != nil {
		return decimal.Decimal{}, fmt.Errorf("decode rate feed: %w", err)
	}

	rate := payload.Rate
	if rate == nil {
		rate = payload.CurrentRate
	}
	if rate == nil {
		return decimal.Decimal{}, errors.New("rate feed response has no rate")
	}
	if rate.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("rate feed returned negative rate %s", rate)
	}
	return rate.Round(2), nil
}
