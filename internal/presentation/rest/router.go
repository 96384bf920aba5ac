package rest

import (
	"log/slog"
	"net/http"

	"github.com/truecost/mortgage-service/internal/presentation/rest/middleware"
)

// RouterConfig collects what the HTTP surface is assembled from.
type RouterConfig struct {
	API            *APIHandler
	Health         *HealthHandler
	MetricsHandler http.Handler // mounted at /metrics when set
	Limiter        middleware.Limiter
	AllowedOrigins []string
	Tracing        bool
	Logger         *slog.Logger
}

// NewRouter registers every route and wraps the mux in the middleware stack:
// recovery, logging, tracing, metrics, CORS, then rate limiting on /api.
func NewRouter(cfg RouterConfig) (http.Handler, error) {
	mux := http.NewServeMux()
	cfg.Health.RegisterRoutes(mux)
	if cfg.MetricsHandler != nil {
		mux.Handle("GET /metrics", cfg.MetricsHandler)
	}

	api := http.NewServeMux()
	cfg.API.RegisterRoutes(api)
	var apiHandler http.Handler = api
	if cfg.Limiter != nil {
		apiHandler = middleware.RateLimit(cfg.Limiter, cfg.Logger)(api)
	}
	mux.Handle("/api/", apiHandler)

	metrics, err := middleware.Metrics()
	if err != nil {
		return nil, err
	}

	mws := []func(http.Handler) http.Handler{
		middleware.Recovery(cfg.Logger),
		middleware.Logging(cfg.Logger),
	}
	if cfg.Tracing {
		mws = append(mws, middleware.Tracing())
	}
	mws = append(mws, metrics, middleware.CORS(cfg.AllowedOrigins))

	return middleware.Chain(mux, mws...), nil
}
