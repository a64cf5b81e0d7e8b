// Package grpc exposes the standard gRPC health protocol so orchestrators
// can probe the shop without going through the HTTP stack.
package grpc

import (
	"context"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health service name reported next to the overall ("") status
const ServiceName = "shopcart.v1.Shop"

// Probe reports whether the dependencies of the shop are reachable
type Probe func(ctx context.Context) error

// HealthServer serves grpc.health.v1 and keeps its status in line with probe
type HealthServer struct {
	server   *grpc.Server
	health   *health.Server
	probe    Probe
	interval time.Duration
	timeout  time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	serving bool
}

// Option configures a HealthServer
type Option func(*HealthServer)

// WithInterval sets how often the probe runs
func WithInterval(d time.Duration) Option {
	return func(s *HealthServer) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *HealthServer) {
		s.logger = logger
	}
}

// NewHealthServer creates the server. Status starts as NOT_SERVING until the
// first probe succeeds.
func NewHealthServer(probe Probe, opts ...Option) *HealthServer {
	s := &HealthServer{
		server:   grpc.NewServer(),
		health:   health.NewServer(),
		probe:    probe,
		interval: 10 * time.Second,
		timeout:  2 * time.Second,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	healthpb.RegisterHealthServer(s.server, s.health)
	reflection.Register(s.server)
	s.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
	return s
}

// Serve accepts connections on lis and probes until ctx is done or Stop is
// called. It blocks like grpc.Server.Serve.
func (s *HealthServer) Serve(ctx context.Context, lis net.Listener) error {
	go s.watch(ctx)
	return s.server.Serve(lis)
}

// Check runs the probe once and publishes the result
func (s *HealthServer) Check(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.probe(ctx)

	s.mu.Lock()
	was := s.serving
	s.serving = err == nil
	s.mu.Unlock()

	if err != nil {
		if was {
			s.logger.Warn("Health probe failed, reporting NOT_SERVING", zap.Error(err))
		}
		s.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
		return
	}
	if !was {
		s.logger.Info("Health probe passed, reporting SERVING")
	}
	s.setStatus(healthpb.HealthCheckResponse_SERVING)
}

// Stop marks every service NOT_SERVING and drains open streams
func (s *HealthServer) Stop() {
	s.health.Shutdown()
	s.server.GracefulStop()
}

func (s *HealthServer) watch(ctx context.Context) {
	s.Check(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Check(ctx)
		}
	}
}

func (s *HealthServer) setStatus(status healthpb.HealthCheckResponse_ServingStatus) {
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}
