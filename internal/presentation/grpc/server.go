package grpc

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	pkgpostgres "github.com/truecost/mortgage-service/pkg/postgres"
)

const pingTimeout = 2 * time.Second

// Options configure the gRPC server.
type Options struct {
	ServiceName string
	Reflection  bool
}

// Server exposes the standard gRPC health service, reporting the service
// as serving only while the database answers pings.
type Server struct {
	gs     *grpc.Server
	health *DatabaseHealthServer
	logger *slog.Logger
}

// NewServer creates and configures the gRPC server.
func NewServer(db pkgpostgres.Pinger, opts Options, logger *slog.Logger) *Server {
	gs := grpc.NewServer(grpc.UnaryInterceptor(loggingInterceptor(logger)))

	healthSrv := NewDatabaseHealthServer(db, opts.ServiceName, logger)
	healthpb.RegisterHealthServer(gs, healthSrv)

	if opts.Reflection {
		reflection.Register(gs)
	}

	return &Server{gs: gs, health: healthSrv, logger: logger}
}

// Serve starts the gRPC server on the specified address.
func (s *Server) Serve(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.ServeListener(lis)
}

// ServeListener serves on an existing listener.
func (s *Server) ServeListener(lis net.Listener) error {
	s.logger.Info("gRPC server listening", "addr", lis.Addr().String())
	return s.gs.Serve(lis)
}

// GracefulStop marks the service not serving and stops the server gracefully.
func (s *Server) GracefulStop() {
	s.logger.Info("gRPC server shutting down")
	s.health.Shutdown()
	s.gs.GracefulStop()
}

// DatabaseHealthServer refreshes serving status from a database ping on every
// Check, so Watch subscribers see transitions as they are observed.
type DatabaseHealthServer struct {
	*health.Server
	db      pkgpostgres.Pinger
	service string
	logger  *slog.Logger
}

// NewDatabaseHealthServer creates a health server for service.
func NewDatabaseHealthServer(db pkgpostgres.Pinger, service string, logger *slog.Logger) *DatabaseHealthServer {
	hs := &DatabaseHealthServer{
		Server:  health.NewServer(),
		db:      db,
		service: service,
		logger:  logger,
	}
	hs.SetServingStatus(service, healthpb.HealthCheckResponse_SERVING)
	return hs
}

// Check pings the database, records the result for both the named service
// and the overall server, and answers from the recorded status.
func (h *DatabaseHealthServer) Check(
	ctx context.Context,
	req *healthpb.HealthCheckRequest,
) (*healthpb.HealthCheckResponse, error) {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := pkgpostgres.HealthCheck(pingCtx, h.db); err != nil {
		h.logger.WarnContext(ctx, "gRPC health check failed", "error", err)
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	h.SetServingStatus("", status)
	h.SetServingStatus(h.service, status)

	return h.Server.Check(ctx, req)
}

func loggingInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		logger.DebugContext(ctx, "grpc request",
			"method", info.FullMethod,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		return resp, err
	}
}
