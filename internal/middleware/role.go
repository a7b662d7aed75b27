package middleware

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"vehicle-service-scheduler/internal/rpc"
)

// admin dashboard and its detail actions
var adminOnly = map[string]bool{
	rpc.FullMethod("AdminDashboard"):      true,
	rpc.FullMethod("CompleteAppointment"): true,
	rpc.FullMethod("CancelAppointment"):   true,
}

// RequireAdmin must run after Auth.
func RequireAdmin() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		if !adminOnly[info.FullMethod] {
			return next(ctx, req)
		}
		s, ok := SessionFrom(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "no session")
		}
		if !s.IsAdmin() {
			return nil, status.Error(codes.PermissionDenied, "admin only")
		}
		return next(ctx, req)
	}
}
