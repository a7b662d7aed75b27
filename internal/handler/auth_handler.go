package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"vehicle-service-scheduler/internal/auth"
	"vehicle-service-scheduler/internal/middleware"
	"vehicle-service-scheduler/internal/nav"
	"vehicle-service-scheduler/internal/rpc"
)

// Login also renews the token of the session already signed in, which is
// how a client gets back in after a restart or token expiry.
func (h *Handler) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.LoginResponse, error) {
	s, err := h.Sessions.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, h.toStatus("login", err)
	}

	tok, err := auth.MakeToken(s, h.Secret)
	if err != nil {
		return nil, h.toStatus("login", err)
	}

	return &rpc.LoginResponse{Token: tok, Email: s.Email, Role: string(s.Role), Route: nav.Home.Path()}, nil
}

// Register only validates; accounts are fixed.
func (h *Handler) Register(ctx context.Context, req *rpc.RegisterRequest) (*rpc.Route, error) {
	route, err := h.Sessions.Register(auth.Registration{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		return nil, h.toStatus("register", err)
	}
	return &rpc.Route{Path: route.Dest.Path()}, nil
}

func (h *Handler) Logout(ctx context.Context, _ *rpc.Empty) (*rpc.Route, error) {
	if err := h.Sessions.Logout(ctx); err != nil {
		return nil, h.toStatus("logout", err)
	}
	return &rpc.Route{Path: nav.Login.Path()}, nil
}

func (h *Handler) Profile(ctx context.Context, _ *rpc.Empty) (*rpc.ProfileResponse, error) {
	s, ok := middleware.SessionFrom(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "not signed in")
	}
	return &rpc.ProfileResponse{Email: s.Email, Role: string(s.Role)}, nil
}
