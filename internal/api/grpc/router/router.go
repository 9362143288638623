package router

import (
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/dtroode/filedrop/internal/api/grpc/handler"
	"github.com/dtroode/filedrop/internal/api/grpc/middleware"
	"github.com/dtroode/filedrop/internal/logger"
)

// Router builds the operational gRPC server.
type Router struct {
	health *handler.Health
	logger *logger.Logger
}

// New creates new gRPC Router instance.
func New(health *handler.Health, logger *logger.Logger) *Router {
	return &Router{
		health: health,
		logger: logger,
	}
}

// Register creates the gRPC server with logging and recovery interceptors
// and registers the health and reflection services.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(logging.UnaryInterceptors()...),
		grpc.ChainStreamInterceptor(logging.StreamInterceptors()...),
	)
	healthpb.RegisterHealthServer(s, r.health.Server())
	reflection.Register(s)

	return s
}
