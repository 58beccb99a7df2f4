package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/hamed0406/healthd/internal/checks"
	"github.com/hamed0406/healthd/internal/config"
	"github.com/hamed0406/healthd/internal/health"
	"github.com/hamed0406/healthd/internal/httpapi"
	"github.com/hamed0406/healthd/internal/logging"
	"github.com/hamed0406/healthd/internal/scheduler"
)

func main() {
	cfg := config.FromEnv()
	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := health.NewRegistry()
	if err := registerProbes(ctx, reg, cfg, logger); err != nil {
		logger.Error("probe_registration_failed", zap.Error(err))
		log.Fatal(err)
	}

	svc := health.NewService(reg, logger, health.Options{
		CacheTTL:          cfg.CacheTTL,
		AggregateDeadline: cfg.AggregateDeadline,
	})

	refresher := scheduler.NewRefresher(logger, svc, nil, cfg.RefreshInterval)
	go refresher.Run(ctx)

	api := httpapi.NewServer(logger, svc, cfg.RateLimitPerMin)
	srv := &http.Server{Addr: cfg.Addr, Handler: api.Router()}
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}()

	logger.Info("api_listen", zap.String("addr", cfg.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// registerProbes wires the configured dependency checks. Registration errors
// are fatal to startup; the request path never sees them.
func registerProbes(ctx context.Context, reg *health.Registry, cfg config.Config, logger *zap.Logger) error {
	startedAt := time.Now()
	if err := reg.Register(health.NewProbe("process", health.Liveness, cfg.ProbeTimeout, checks.Process(startedAt))); err != nil {
		return err
	}

	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("pgxpool.New: %w", err)
		}
		if err := reg.Register(health.NewProbe("database", health.Readiness, cfg.ProbeTimeout, checks.Postgres(pool))); err != nil {
			return err
		}
		logger.Info("probe_registered", zap.String("name", "database"))
	}

	httpClient := &http.Client{}
	for _, target := range cfg.ReadyHTTPTargets {
		name := "http:" + hostOf(target)
		if err := reg.Register(health.NewProbe(name, health.Readiness, cfg.ProbeTimeout, checks.HTTP(httpClient, target))); err != nil {
			return err
		}
		logger.Info("probe_registered", zap.String("name", name))
	}

	for _, host := range cfg.ReadyDNSHosts {
		name := "dns:" + host
		if err := reg.Register(health.NewProbe(name, health.Readiness, cfg.ProbeTimeout, checks.DNS(nil, host))); err != nil {
			return err
		}
		logger.Info("probe_registered", zap.String("name", name))
	}

	return nil
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return raw
	}
	return u.Hostname()
}
