package middleware

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(5)

	for i := 0; i < 5; i++ {
		ok, _, err := rl.Allow(context.Background(), "10.0.0.1")
		require.NoError(t, err)
		require.True(t, ok, "request %d should have been allowed", i+1)
	}

	ok, retryAfter, err := rl.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok, "6th request should have been denied")
	assert.Greater(t, retryAfter, time.Duration(0))

	other, _, _ := rl.Allow(context.Background(), "10.0.0.2")
	assert.True(t, other, "buckets are per client")
}

func TestRateLimiter_Refill(t *testing.T) {
	rl := NewRateLimiter(60)
	now := time.Date(2025, 12, 17, 19, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	for i := 0; i < 60; i++ {
		_, _, _ = rl.Allow(context.Background(), "k")
	}
	ok, _, _ := rl.Allow(context.Background(), "k")
	require.False(t, ok, "should be denied after draining tokens")

	now = now.Add(2 * time.Second)
	ok, _, _ = rl.Allow(context.Background(), "k")
	assert.True(t, ok, "one token per second should have refilled")
}

func TestRateLimiter_MaxTokensCapped(t *testing.T) {
	rl := NewRateLimiter(5)
	now := time.Now()
	rl.now = func() time.Time { return now }
	_, _, _ = rl.Allow(context.Background(), "k")

	now = now.Add(time.Hour)
	allowed := 0
	for i := 0; i < 10; i++ {
		if ok, _, _ := rl.Allow(context.Background(), "k"); ok {
			allowed++
		}
	}
	assert.Equal(t, 5, allowed)
}

func TestRateLimiter_EvictsIdleBuckets(t *testing.T) {
	rl := NewRateLimiter(60)
	now := time.Date(2025, 12, 17, 19, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	for i := 0; i < maxBuckets; i++ {
		_, _, _ = rl.Allow(context.Background(), fmt.Sprintf("10.0.%d.%d", i/256, i%256))
	}
	require.Len(t, rl.buckets, maxBuckets)

	// A full minute refills every bucket, so all of them are evicted.
	now = now.Add(time.Minute)
	ok, _, _ := rl.Allow(context.Background(), "192.0.2.1")
	assert.True(t, ok)
	assert.Len(t, rl.buckets, 1)
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, time.Duration, error) {
	return false, 0, errors.New("redis: connection refused")
}

func TestRateLimit_Middleware(t *testing.T) {
	t.Run("rejects over quota with JSON body", func(t *testing.T) {
		handler := RateLimit(NewRateLimiter(1), discardLogger())(okHandler())

		req := httptest.NewRequest(http.MethodGet, "/api/rates", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.JSONEq(t, `{"error":"rate limit exceeded","status":"error"}`, rec.Body.String())
		assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	})

	t.Run("fails open when limiter errors", func(t *testing.T) {
		handler := RateLimit(failingLimiter{}, discardLogger())(okHandler())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	handler := Recovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/calculate", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error","status":"error"}`, rec.Body.String())
	assert.Contains(t, buf.String(), "boom")
}

func TestLogging_CapturesStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	handler := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/missing", nil))

	assert.Contains(t, buf.String(), `"status":404`)
	assert.Contains(t, buf.String(), `"path":"/api/missing"`)
}

func TestCORS(t *testing.T) {
	t.Run("wildcard", func(t *testing.T) {
		handler := CORS([]string{"*"})(okHandler())
		req := httptest.NewRequest(http.MethodGet, "/api/rates", nil)
		req.Header.Set("Origin", "http://localhost:5173")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("allow list", func(t *testing.T) {
		handler := CORS([]string{"https://app.example.test"})(okHandler())

		allowed := httptest.NewRequest(http.MethodGet, "/", nil)
		allowed.Header.Set("Origin", "https://app.example.test")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, allowed)
		assert.Equal(t, "https://app.example.test", rec.Header().Get("Access-Control-Allow-Origin"))

		denied := httptest.NewRequest(http.MethodGet, "/", nil)
		denied.Header.Set("Origin", "https://evil.example.test")
		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, denied)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		called := false
		handler := CORS([]string{"*"})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
		req := httptest.NewRequest(http.MethodOptions, "/api/set-alert", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", "POST")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
		assert.False(t, called)
	})
}

func TestChain_Order(t *testing.T) {
	var order []string
	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	Chain(okHandler(), mw("outer"), mw("inner")).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestTracingAndMetrics_PassThrough(t *testing.T) {
	metrics, err := Metrics()
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.Handle("GET /api/rates", okHandler())
	handler := Chain(mux, Tracing(), metrics)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/rates", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
