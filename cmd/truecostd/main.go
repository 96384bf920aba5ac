package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/truecost/mortgage-service/internal/application/usecase"
	"github.com/truecost/mortgage-service/internal/domain/port"
	"github.com/truecost/mortgage-service/internal/domain/service"
	"github.com/truecost/mortgage-service/internal/infrastructure/catalog"
	"github.com/truecost/mortgage-service/internal/infrastructure/config"
	"github.com/truecost/mortgage-service/internal/infrastructure/kafka"
	pgRepo "github.com/truecost/mortgage-service/internal/infrastructure/postgres"
	"github.com/truecost/mortgage-service/internal/infrastructure/provider"
	grpcPresentation "github.com/truecost/mortgage-service/internal/presentation/grpc"
	"github.com/truecost/mortgage-service/internal/presentation/rest"
	"github.com/truecost/mortgage-service/internal/presentation/rest/middleware"
	pkgkafka "github.com/truecost/mortgage-service/pkg/kafka"
	"github.com/truecost/mortgage-service/pkg/observability"
	pkgpostgres "github.com/truecost/mortgage-service/pkg/postgres"
)

func main() {
	if err := run(); err != nil {
		slog.Error("truecostd exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.ServiceName,
	})

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Info("starting truecost mortgage service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"rate_source", cfg.Rates.Source,
	)

	// Tracing is opt-in since it needs a collector.
	tracingOn := false
	if cfg.Tracing.Enabled {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: cfg.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			Insecure:    true,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			tracingOn = true
			defer func() { _ = shutdown(context.Background()) }() //nolint:errcheck // best-effort tracer shutdown
		}
	}

	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{})
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck

	// Database connection.
	dbCfg := pkgpostgres.Config{
		Host:           cfg.DB.Host,
		Port:           cfg.DB.Port,
		User:           cfg.DB.User,
		Password:       cfg.DB.Password,
		Database:       cfg.DB.Name,
		SSLMode:        cfg.DB.SSLMode,
		MaxConns:       int32(cfg.DB.MaxConns),
		ConnectTimeout: cfg.DB.ConnectTimeout,
	}

	pool, err := pkgpostgres.NewPool(ctx, dbCfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if err := pkgpostgres.RunMigrations(dbCfg.DSN(), cfg.DB.MigrationsPath); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// Wire infrastructure adapters.
	alertRepo := pgRepo.NewAlertRepo(pool)
	reminderRepo := pgRepo.NewReminderRepo(pool)
	rates := newRateSource(cfg.Rates)
	content := catalog.NewStaticCatalog()

	var publisher port.EventPublisher = kafka.NewLogEventPublisher(logger)
	if cfg.Kafka.Enabled() {
		producer := pkgkafka.NewProducer(pkgkafka.Config{Brokers: cfg.Kafka.Brokers})
		defer producer.Close()
		publisher = kafka.NewKafkaEventPublisher(producer, cfg.Kafka.Topic, logger)
		logger.Info("publishing domain events to kafka", "topic", cfg.Kafka.Topic)
	}

	limiter := newLimiter(ctx, cfg, logger)

	// Wire use cases.
	api := rest.NewAPIHandler(rest.UseCases{
		Calculate:       usecase.NewCalculateTrueCostUseCase(service.NewTrueCostEngine()),
		CurrentRate:     usecase.NewGetCurrentRateUseCase(rates),
		SetAlert:        usecase.NewSetAlertUseCase(alertRepo, rates, publisher, logger, nil),
		ListAlerts:      usecase.NewListAlertsUseCase(alertRepo),
		CreateReminder:  usecase.NewCreateReminderUseCase(reminderRepo, publisher, logger, nil),
		ListReminders:   usecase.NewListRemindersUseCase(reminderRepo),
		ListDue:         usecase.NewListDueRemindersUseCase(reminderRepo, nil),
		MarkNotified:    usecase.NewMarkReminderNotifiedUseCase(reminderRepo, publisher, logger, nil),
		GovernmentNews:  usecase.NewGetGovernmentNewsUseCase(content),
		AgentsDirectory: usecase.NewListAgentsUseCase(content),
	}, logger)

	router, err := rest.NewRouter(rest.RouterConfig{
		API:            api,
		Health:         rest.NewHealthHandler(pool, cfg.ServiceName, logger),
		MetricsHandler: metricsHandler,
		Limiter:        limiter,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Tracing:        tracingOn,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	grpcServer := grpcPresentation.NewServer(pool, grpcPresentation.Options{
		ServiceName: cfg.ServiceName,
		Reflection:  cfg.GRPCReflection,
	}, logger)

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case serveErr = <-errCh:
		logger.Error("server error", "error", serveErr)
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("truecost mortgage service stopped")
	return serveErr
}

func newRateSource(cfg config.RateConfig) port.RateSource {
	if cfg.Source == config.RateSourceLive {
		return provider.NewLiveRateSource(cfg.FeedURL, nil, cfg.Timeout)
	}
	return provider.NewSimulatedRateSource(cfg.Seed)
}

// newLimiter prefers a shared Redis limiter and falls back to per-process
// buckets when Redis is not configured or not reachable at startup.
func newLimiter(ctx context.Context, cfg config.Config, logger *slog.Logger) middleware.Limiter {
	perMinute := cfg.RateLimit.RequestsPerMinute
	if perMinute == 0 {
		return nil
	}
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		err := client.Ping(pingCtx).Err()
		if err == nil {
			logger.Info("rate limiting via redis", "addr", cfg.Redis.Addr, "per_minute", perMinute)
			return middleware.NewRedisLimiter(client, perMinute)
		}
		logger.Warn("redis unavailable, rate limiting in process", "addr", cfg.Redis.Addr, "error", err)
		_ = client.Close()
	}
	return middleware.NewRateLimiter(perMinute)
}
