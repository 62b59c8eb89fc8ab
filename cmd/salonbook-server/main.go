package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"salonbook/backend/internal/config"
	"salonbook/backend/internal/events"
	"salonbook/backend/internal/metrics"
	"salonbook/backend/internal/ratelimit"
	"salonbook/backend/internal/service/appointments"
	"salonbook/backend/internal/service/hours"
	"salonbook/backend/internal/service/salons"
	"salonbook/backend/internal/service/schedule"
	"salonbook/backend/internal/store/postgres"
	"salonbook/backend/internal/store/sqlite"
	"salonbook/backend/internal/store/sqlstore"
	"salonbook/backend/internal/telemetry"
	grpcTransport "salonbook/backend/internal/transport/grpc"
	"salonbook/backend/internal/transport/rest"
)

const serviceName = "salonbook-server"

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).With(
		slog.String("service", serviceName),
	)
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		log.Error("config load failed", slog.Any("err", err))
		os.Exit(1)
	}

	log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)})).With(
		slog.String("service", serviceName),
	)
	slog.SetDefault(log)

	log.Info("starting",
		slog.String("grpc_addr", cfg.GRPCAddr()),
		slog.String("http_addr", cfg.HTTPAddr),
		slog.String("db_driver", cfg.DatabaseDriver),
		slog.String("log_level", cfg.LogLevel),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:      cfg.OTelEnabled,
		ServiceName:  serviceName,
		OTLPEndpoint: cfg.OTelEndpoint,
		SampleRatio:  cfg.OTelSampleRatio,
	})
	if err != nil {
		log.Error("telemetry setup failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn("telemetry shutdown failed", slog.Any("err", err))
		}
	}()

	db, closeDB, err := openStore(ctx, log, cfg)
	if err != nil {
		os.Exit(1)
	}
	defer closeDB()

	var dialect sqlstore.Dialect = postgres.Dialect{}
	if cfg.DatabaseDriver == "sqlite" {
		dialect = sqlite.Dialect{}
	}
	repo := sqlstore.New(db, dialect)
	ready := []rest.ReadyCheck{{Name: "database", Check: repo.Ping}}

	publisher, closePublisher := newPublisher(log, cfg)
	defer closePublisher()
	if cfg.KafkaBrokers != "" {
		ready = append(ready, rest.ReadyCheck{Name: "kafka", Check: events.ReadyCheck(cfg.KafkaBrokers)})
	}

	var limiter func(http.Handler) http.Handler
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Error("redis url invalid", slog.Any("err", err))
			os.Exit(1)
		}
		rdb := redis.NewClient(opts)
		defer func() { _ = rdb.Close() }()
		limiter = ratelimit.New(rdb, ratelimit.Config{Limit: cfg.RateLimit, Window: time.Minute, FailOpen: true}, log).Handler
		ready = append(ready, rest.ReadyCheck{Name: "redis", Check: ratelimit.ReadyCheck(rdb)})
	}

	m := metrics.New()
	resolver := salons.NewResolver(repo, cfg.DefaultTimezone)
	apptSvc := appointments.NewService(resolver, repo, repo, repo,
		appointments.WithPublisher(publisher),
		appointments.WithRecorder(m),
		appointments.WithLogger(log),
	)
	hoursSvc := hours.NewService(resolver, repo)
	scheduleSvc := schedule.NewService(resolver, repo, repo, repo)

	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			grpcTransport.RequestIDInterceptor(),
			grpcTransport.DefaultTimeoutInterceptor(cfg.GRPCRequestTimeout),
		),
	)
	grpcTransport.RegisterSalonbookServer(grpcServer, grpcTransport.NewServer(apptSvc, hoursSvc, scheduleSvc, log))
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthSrv)

	httpServer := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: rest.NewRouter(rest.Deps{
			Appointments: apptSvc,
			Hours:        hoursSvc,
			Schedule:     scheduleSvc,
			Metrics:      m,
			Limiter:      limiter,
			Ready:        ready,
			Log:          log,
		}, rest.Config{
			CORSOrigins:    cfg.CORSOrigins,
			RateLimit:      cfg.RateLimit,
			BodyLimitBytes: cfg.BodyLimitBytes,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	lis, err := net.Listen("tcp", cfg.GRPCAddr())
	if err != nil {
		log.Error("grpc listen failed", slog.Any("err", err), slog.String("grpc_addr", cfg.GRPCAddr()))
		os.Exit(1)
	}

	errCh := make(chan error, 2)
	go func() {
		errCh <- grpcServer.Serve(lis)
	}()
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	log.Info("servers started", slog.String("grpc_addr", cfg.GRPCAddr()), slog.String("http_addr", cfg.HTTPAddr))

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			log.Error("server stopped with error", slog.Any("err", err))
		}
	}

	healthSrv.Shutdown()
	shutdown(log, grpcServer, httpServer, cfg.ShutdownTimeout)
}

func openStore(ctx context.Context, log *slog.Logger, cfg config.Config) (*bun.DB, func(), error) {
	if cfg.DatabaseDriver == "sqlite" {
		log.Info("opening sqlite database", slog.String("path", cfg.SQLitePath))
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			log.Error("sqlite open failed", slog.Any("err", err))
			return nil, nil, err
		}
		if err := sqlite.Migrate(ctx, db); err != nil {
			log.Error("sqlite migrate failed", slog.Any("err", err))
			_ = sqlite.Close(db)
			return nil, nil, err
		}
		return db, func() {
			if err := sqlite.Close(db); err != nil {
				log.Warn("database close failed", slog.Any("err", err))
			}
		}, nil
	}

	log.Info("connecting to database", databaseLogArgs(cfg.DatabaseURL)...)
	db, err := postgres.Open(ctx, cfg.DatabaseURL, postgres.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
	})
	if err != nil {
		args := append([]any{slog.Any("err", err)}, databaseLogArgs(cfg.DatabaseURL)...)
		log.Error("database connection failed", args...)
		return nil, nil, err
	}
	return db, func() {
		if err := postgres.Close(db); err != nil {
			log.Warn("database close failed", slog.Any("err", err))
		}
	}, nil
}

func newPublisher(log *slog.Logger, cfg config.Config) (events.Publisher, func()) {
	if cfg.KafkaBrokers == "" {
		log.Info("kafka not configured; appointment events are logged only")
		return events.NewLogPublisher(log), func() {}
	}
	p, err := events.NewKafkaPublisher(events.KafkaConfig{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaTopic,
	})
	if err != nil {
		log.Warn("kafka publisher unavailable; falling back to log", slog.Any("err", err))
		return events.NewLogPublisher(log), func() {}
	}
	return p, func() {
		if err := p.Close(); err != nil {
			log.Warn("kafka close failed", slog.Any("err", err))
		}
	}
}

func shutdown(log *slog.Logger, s *grpc.Server, h *http.Server, timeout time.Duration) {
	log.Info("shutting down servers", slog.Duration("timeout", timeout))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := h.Shutdown(ctx); err != nil {
		log.Warn("http graceful shutdown failed", slog.Any("err", err))
	}

	done := make(chan struct{})
	go func() {
		s.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		log.Info("grpc server stopped")
	case <-ctx.Done():
		log.Warn("grpc graceful shutdown timed out; forcing stop")
		s.Stop()
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func databaseLogArgs(databaseURL string) []any {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return []any{slog.String("db_url", "invalid")}
	}
	name := strings.TrimPrefix(u.Path, "/")
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "default"
	}
	if host == "" {
		host = "unknown"
	}
	if name == "" {
		name = "unknown"
	}
	return []any{
		slog.String("db_host", host),
		slog.String("db_port", port),
		slog.String("db_name", name),
	}
}
