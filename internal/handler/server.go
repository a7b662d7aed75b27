package handler

import (
	"google.golang.org/grpc"

	"vehicle-service-scheduler/internal/middleware"
	"vehicle-service-scheduler/internal/rpc"
)

// NewServer builds the gRPC server with the interceptor chain and h
// registered. Every call is decoded with the wire codec whatever content
// subtype the client sent.
func NewServer(h *Handler, rl *middleware.RateLimiter, opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{
		grpc.ForceServerCodec(rpc.Codec{}),
		grpc.ChainUnaryInterceptor(
			middleware.Logging(h.Logger),
			middleware.RateLimit(rl),
			middleware.Auth(h.Secret, h.Sessions),
			middleware.RequireAdmin(),
		),
	}, opts...)
	srv := grpc.NewServer(opts...)
	rpc.RegisterScheduleServer(srv, h)
	return srv
}
