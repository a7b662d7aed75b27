package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"vehicle-service-scheduler/internal/auth"
	"vehicle-service-scheduler/internal/catalog"
	"vehicle-service-scheduler/internal/config"
	gweb "vehicle-service-scheduler/internal/grpcweb"
	"vehicle-service-scheduler/internal/handler"
	"vehicle-service-scheduler/internal/kv"
	"vehicle-service-scheduler/internal/logging"
	"vehicle-service-scheduler/internal/metrics"
	"vehicle-service-scheduler/internal/middleware"
	"vehicle-service-scheduler/internal/schedule"
	"vehicle-service-scheduler/internal/session"
	"vehicle-service-scheduler/internal/store"
	"vehicle-service-scheduler/internal/views"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *logging.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	loc, _ := cfg.Location()
	slots, err := schedule.ParseSlots(cfg.HourSlots)
	if err != nil {
		return fmt.Errorf("HOUR_SLOTS: %w", err)
	}

	ctx := context.Background()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	backend, closeBackend, err := openBackend(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeBackend()

	// session
	creds, err := auth.NewCredentials(catalog.Credentials())
	if err != nil {
		return err
	}
	sessions := session.New(creds, session.NewPersister(backend), logger.With("component", "session"), m)
	if s := sessions.Restore(ctx); s.Email != "" {
		logger.Info("session restored", "email", s.Email, "role", s.Role)
	}

	// stores and flows
	garage := store.NewGarage(catalog.StarterVehicles())
	appts := store.NewAppointments()
	sessions.OnLogout(appts.Reset)

	sched := schedule.NewService(garage, appts, schedule.Options{
		Slots:    slots,
		Location: loc,
		Logger:   logger.With("component", "schedule"),
		Metrics:  m,
	})
	h := handler.New(handler.Deps{
		Sessions: sessions,
		Garage:   garage,
		Appts:    appts,
		Schedule: sched,
		Detail:   views.NewDetail(appts, logger.With("component", "detail"), m),
		Location: loc,
		Secret:   cfg.JWTSecret,
		Logger:   logger,
	})

	// grpc server
	rl := middleware.NewRateLimiter(cfg.LoginRateRPS, cfg.LoginRateBurst)
	defer rl.Stop()
	srv := handler.NewServer(h, rl)

	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	errc := make(chan error, 2)
	go func() {
		logger.Info("grpc listening", "port", cfg.GRPCPort)
		if err := srv.Serve(lis); err != nil {
			errc <- fmt.Errorf("grpc: %w", err)
		}
	}()

	// grpc-web bridge -> forwards browser requests to grpc on localhost
	bridge, err := gweb.New("localhost:"+cfg.GRPCPort, logger.With("component", "grpcweb"))
	if err != nil {
		srv.Stop()
		return err
	}
	defer bridge.Close()

	httpSrv := &http.Server{
		Addr: ":" + cfg.WebPort,
		Handler: gweb.NewRouter(gweb.RouterConfig{
			Bridge:  bridge,
			Logger:  logger,
			Metrics: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("grpc-web listening", "port", cfg.WebPort)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- fmt.Errorf("http: %w", err)
		}
	}()

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case s := <-sig:
		logger.Info("shutting down", "signal", s.String())
	case err = <-errc:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if serr := httpSrv.Shutdown(shutdownCtx); serr != nil {
		logger.Warn("http shutdown", "error", serr)
	}
	srv.GracefulStop()
	return err
}

// openBackend connects the key-value store the session flag lives in.
func openBackend(ctx context.Context, cfg *config.Config, logger *logging.Logger) (kv.Store, func(), error) {
	switch cfg.SessionBackend {
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		logger.Info("session backend", "kind", "redis", "addr", cfg.RedisAddr)
		return kv.NewRedis(client), func() { client.Close() }, nil

	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("db: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("db ping: %w", err)
		}
		pg := kv.NewPostgres(pool)
		if err := pg.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Info("session backend", "kind", "postgres")
		return pg, pool.Close, nil

	default:
		logger.Info("session backend", "kind", "memory")
		return kv.NewMemory(), func() {}, nil
	}
}
