package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
)

// Limiter decides whether the client identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

// maxBuckets is the bucket count above which idle buckets are evicted.
const maxBuckets = 10_000

// tokenBucket implements a simple token bucket for one client.
type tokenBucket struct {
	tokens     float64
	lastRefill time.Time
}

// RateLimiter is an in-process token bucket limiter, one bucket per key.
// Buckets hold up to the per-minute quota and refill continuously.
type RateLimiter struct {
	mu         sync.Mutex
	buckets    map[string]*tokenBucket
	maxTokens  float64
	refillRate float64 // tokens per second
	now        func() time.Time
}

// NewRateLimiter creates a limiter allowing perMinute requests per key.
func NewRateLimiter(perMinute int) *RateLimiter {
	return &RateLimiter{
		buckets:    make(map[string]*tokenBucket),
		maxTokens:  float64(perMinute),
		refillRate: float64(perMinute) / 60,
		now:        time.Now,
	}
}

// Allow consumes one token from key's bucket if available.
func (rl *RateLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if len(rl.buckets) >= maxBuckets {
		rl.evictIdle(now)
	}
	b, ok := rl.buckets[key]
	if !ok {
		b = &tokenBucket{tokens: rl.maxTokens, lastRefill: now}
		rl.buckets[key] = b
	}

	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens += elapsed * rl.refillRate
	if b.tokens > rl.maxTokens {
		b.tokens = rl.maxTokens
	}
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		return true, 0, nil
	}
	wait := time.Duration((1 - b.tokens) / rl.refillRate * float64(time.Second))
	return false, wait, nil
}

// evictIdle drops buckets that have refilled completely, since a fresh
// bucket behaves identically.
func (rl *RateLimiter) evictIdle(now time.Time) {
	full := time.Duration(rl.maxTokens / rl.refillRate * float64(time.Second))
	for key, b := range rl.buckets {
		if now.Sub(b.lastRefill) >= full {
			delete(rl.buckets, key)
		}
	}
}

// RedisLimiter shares quotas across replicas using the GCRA limiter of
// redis_rate.
type RedisLimiter struct {
	limiter *redis_rate.Limiter
	limit   redis_rate.Limit
	prefix  string
}

// NewRedisLimiter creates a limiter allowing perMinute requests per key.
func NewRedisLimiter(client redis.UniversalClient, perMinute int) *RedisLimiter {
	return &RedisLimiter{
		limiter: redis_rate.NewLimiter(client),
		limit:   redis_rate.PerMinute(perMinute),
		prefix:  "truecost:ratelimit:",
	}
}

// Allow asks Redis for one unit of the key's quota.
func (rl *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	res, err := rl.limiter.Allow(ctx, rl.prefix+key, rl.limit)
	if err != nil {
		return false, 0, fmt.Errorf("redis rate limit: %w", err)
	}
	return res.Allowed > 0, res.RetryAfter, nil
}

// RateLimit rejects requests over quota with 429. Limiter failures are
// logged and the request is let through.
func RateLimit(limiter Limiter, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, retryAfter, err := limiter.Allow(r.Context(), clientKey(r))
			if err != nil {
				logger.WarnContext(r.Context(), "rate limiter unavailable", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				if retryAfter > 0 {
					secs := int(retryAfter.Round(time.Second) / time.Second)
					w.Header().Set("Retry-After", strconv.Itoa(max(secs, 1)))
				}
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
