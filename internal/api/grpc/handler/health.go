package handler

import (
	"context"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dtroode/filedrop/internal/logger"
	"github.com/dtroode/filedrop/internal/model"
)

const defaultPingTimeout = 2 * time.Second

// Health reports the service as SERVING while the database answers pings.
type Health struct {
	server   *health.Server
	pinger   model.Pinger
	interval time.Duration
	logger   *logger.Logger
}

// NewHealth creates a Health handler. The initial status is NOT_SERVING
// until the first successful Check.
func NewHealth(pinger model.Pinger, interval time.Duration, logger *logger.Logger) *Health {
	s := health.NewServer()
	s.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)

	return &Health{
		server:   s,
		pinger:   pinger,
		interval: interval,
		logger:   logger,
	}
}

// Server returns the grpc_health_v1 implementation to register.
func (h *Health) Server() healthpb.HealthServer {
	return h.server
}

// Check pings the database once and updates the serving status.
func (h *Health) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := h.pinger.Ping(ctx); err != nil {
		h.logger.Warn("database ping failed", "error", err)
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	h.server.SetServingStatus("", status)

	return status
}

// Run checks on every interval until ctx is done, then marks every
// service NOT_SERVING.
func (h *Health) Run(ctx context.Context) {
	h.Check(ctx)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.server.Shutdown()
			return
		case <-ticker.C:
			h.Check(ctx)
		}
	}
}
