package middleware

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"vehicle-service-scheduler/internal/logging"
)

// Logging records one line per call with its status code and latency.
func Logging(logger *logging.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := next(ctx, req)
		code := status.Code(err)
		args := []any{"method", info.FullMethod, "code", code.String(), "duration_ms", time.Since(start).Milliseconds()}
		if err != nil {
			logger.Warn("grpc call", append(args, "error", status.Convert(err).Message())...)
		} else {
			logger.Debug("grpc call", args...)
		}
		return resp, err
	}
}
