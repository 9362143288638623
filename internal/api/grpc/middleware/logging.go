package middleware

import (
	"context"
	"log/slog"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/filedrop/internal/logger"
)

// Logging adapts the application logger to gRPC interceptors.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Log implements logging.Logger. Interceptor levels share slog's numbering.
func (l *Logging) Log(ctx context.Context, lvl logging.Level, msg string, fields ...any) {
	l.logger.Log(ctx, slog.Level(lvl), msg, fields...)
}

// UnaryInterceptors returns recovery and call logging interceptors, outermost first.
func (l *Logging) UnaryInterceptors() []grpc.UnaryServerInterceptor {
	return []grpc.UnaryServerInterceptor{
		logging.UnaryServerInterceptor(l, logging.WithLogOnEvents(logging.FinishCall)),
		recovery.UnaryServerInterceptor(recovery.WithRecoveryHandler(l.recover)),
	}
}

// StreamInterceptors is UnaryInterceptors for streaming calls.
func (l *Logging) StreamInterceptors() []grpc.StreamServerInterceptor {
	return []grpc.StreamServerInterceptor{
		logging.StreamServerInterceptor(l, logging.WithLogOnEvents(logging.FinishCall)),
		recovery.StreamServerInterceptor(recovery.WithRecoveryHandler(l.recover)),
	}
}

func (l *Logging) recover(p any) error {
	l.logger.Error("gRPC handler panicked", "panic", p)
	return status.Error(codes.Internal, "internal server error")
}
