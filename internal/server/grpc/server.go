// Package grpc runs the standard gRPC health service (grpc.health.v1.Health)
// so orchestrators can probe the server on a port separate from the API.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health-checked service name, next to the overall "" entry.
const ServiceName = "taskkeeper.API"

type HealthServer struct {
	address string
	health  *health.Server
	logger  logging.Logger
}

// NewHealthServer creates a probe that reports NOT_SERVING until SetServing(true).
func NewHealthServer(a string, l logging.Logger) *HealthServer {
	s := &HealthServer{
		address: a,
		health:  health.NewServer(),
		logger:  l.With("module", "grpc_health"),
	}
	s.SetServing(false)
	return s
}

// SetServing flips both the overall and the API status.
func (s *HealthServer) SetServing(ok bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if ok {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

func (s *HealthServer) Listen() (net.Listener, error) {
	return net.Listen("tcp", s.address)
}

// Serve blocks until ctx is cancelled or the listener fails.
func (s *HealthServer) Serve(ctx context.Context, listen net.Listener) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	// creates gRPC-server
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))

	// registers service
	healthpb.RegisterHealthServer(srv, s.health)

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC health server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC health server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		stop()
		<-done
		return err
	}

	<-done
	return nil
}

func (s *HealthServer) Run(ctx context.Context) error {

	// announces address
	listen, err := s.Listen()
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}
