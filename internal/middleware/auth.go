package middleware

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"vehicle-service-scheduler/internal/auth"
	"vehicle-service-scheduler/internal/model"
	"vehicle-service-scheduler/internal/nav"
	"vehicle-service-scheduler/internal/rpc"
)

type ctxKey string

const SessionKey ctxKey = "session"

// Sessions is the part of the session store the interceptors need.
type Sessions interface {
	Gate(nav.Area) (bool, nav.Route)
	Current() (model.Session, bool)
}

var loginMethod = rpc.FullMethod("Login")

// methods on the login/registration screens; everything else is main area
var authArea = map[string]bool{
	rpc.FullMethod("Register"): true,
	rpc.FullMethod("Login"):    true,
}

func Area(fullMethod string) nav.Area {
	if authArea[fullMethod] {
		return nav.AreaAuth
	}
	return nav.AreaMain
}

// Auth gates every call on the process session. Main-area calls must also
// carry the token issued by Login for that same session.
func Auth(secret string, sessions Sessions) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		area := Area(info.FullMethod)
		if ok, route := sessions.Gate(area); !ok {
			// Login stays reachable while signed in: the current account's
			// credentials get a fresh token, anything else is refused there.
			if info.FullMethod == loginMethod {
				return next(ctx, req)
			}
			if area == nav.AreaAuth {
				return nil, status.Error(codes.PermissionDenied, "already signed in: redirect "+route.Dest.Path())
			}
			return nil, status.Error(codes.Unauthenticated, "not signed in: redirect "+route.Dest.Path())
		}
		if area == nav.AreaAuth {
			return next(ctx, req)
		}

		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}

		// token from Authorization: Bearer <jwt>
		raw := ""
		if vals := md.Get("authorization"); len(vals) > 0 {
			raw = strings.TrimPrefix(vals[0], "Bearer ")
		}
		if raw == "" {
			return nil, status.Error(codes.Unauthenticated, "no token")
		}

		claims, err := auth.ParseToken(raw, secret)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "bad token")
		}
		cur, ok := sessions.Current()
		if !ok || claims.Session() != cur {
			return nil, status.Error(codes.Unauthenticated, "session ended: redirect "+nav.Login.Path())
		}

		ctx = context.WithValue(ctx, SessionKey, cur)
		return next(ctx, req)
	}
}

// SessionFrom returns the session Auth attached to ctx.
func SessionFrom(ctx context.Context) (model.Session, bool) {
	s, ok := ctx.Value(SessionKey).(model.Session)
	return s, ok
}
