package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/oshokin/alarm-agenda/internal/logger"
)

// healthEndpoint serves the standard gRPC health service next to the stdio transport.
type healthEndpoint struct {
	// grpcServer hosts the health service.
	grpcServer *grpc.Server
	// health tracks the reported serving status.
	health *health.Server
}

// newHealthEndpoint creates an endpoint reporting NOT_SERVING until told otherwise.
func newHealthEndpoint() *healthEndpoint {
	h := &healthEndpoint{
		grpcServer: grpc.NewServer(),
		health:     health.NewServer(),
	}

	h.health.SetServingStatus(Name, healthpb.HealthCheckResponse_NOT_SERVING)
	h.health.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(h.grpcServer, h.health)

	return h
}

// setServing reports the overall and the alarm service status.
func (h *healthEndpoint) setServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}

	h.health.SetServingStatus(Name, status)
	h.health.SetServingStatus("", status)
}

// serve blocks until the listener fails or stop is called.
func (h *healthEndpoint) serve(lis net.Listener) error {
	if err := h.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	return nil
}

// stop flips every status to NOT_SERVING and waits for in-flight checks.
func (h *healthEndpoint) stop() {
	h.health.Shutdown()
	h.grpcServer.GracefulStop()
}

// startHealth listens on addr and reports SERVING once the agenda store can be read.
// The returned function stops the endpoint and waits for it to finish.
func startHealth(ctx context.Context, addr string, svc *service) (func(), error) {
	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	endpoint := newHealthEndpoint()

	_, probeErr := svc.ListAlarms(ctx)
	endpoint.setServing(probeErr == nil)

	// Done channel is closed after Serve returns so stop blocks
	// until the server fully stops.
	done := make(chan struct{})

	go func() {
		defer close(done)

		if serveErr := endpoint.serve(lis); serveErr != nil {
			logger.Errorf(ctx, "Health endpoint failed: %v", serveErr)
		}
	}()

	logger.InfoKV(ctx, "Health endpoint listening", "listen_address", lis.Addr().String())

	return func() {
		logger.Info(ctx, "Shutting down health endpoint")
		endpoint.stop()
		<-done
	}, nil
}
