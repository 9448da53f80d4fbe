package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pribylovaa/go-news-discussions/internal/cache"
	"github.com/pribylovaa/go-news-discussions/internal/config"
	"github.com/pribylovaa/go-news-discussions/internal/events"
	dshttp "github.com/pribylovaa/go-news-discussions/internal/http"
	"github.com/pribylovaa/go-news-discussions/internal/http/middleware"
	"github.com/pribylovaa/go-news-discussions/internal/metrics"
	"github.com/pribylovaa/go-news-discussions/internal/service"
	dsmongo "github.com/pribylovaa/go-news-discussions/internal/storage/mongo"
	"github.com/pribylovaa/go-news-discussions/internal/storage/postgres"
	"github.com/pribylovaa/go-news-discussions/pkg/log"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	lg := log.New(cfg.Env, os.Stdout)
	slog.SetDefault(lg)
	lg.Info("starting discussion-service", "env", cfg.Env)

	if err := run(cfg, lg); err != nil {
		lg.Error("service_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	lg.Info("service_stopped")
}

func run(cfg *config.Config, lg *slog.Logger) error {
	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	opts, err := service.OptionsFromConfig(cfg)
	if err != nil {
		return err
	}

	dbCtx, dbCancel := context.WithTimeout(rootCtx, 10*time.Second)
	defer dbCancel()

	mongoStore, err := dsmongo.New(dbCtx, cfg)
	if err != nil {
		lg.Error("mongo_connect_failed", slog.String("err", err.Error()))
		return err
	}
	defer func() { _ = mongoStore.Close(context.Background()) }()
	lg.Info("mongo_connected")

	accounts, err := postgres.New(dbCtx, cfg.Accounts.URL)
	if err != nil {
		lg.Error("postgres_connect_failed", slog.String("err", err.Error()))
		return err
	}
	defer accounts.Close()
	lg.Info("postgres_connected")

	rollups, err := cache.New(dbCtx, cfg.Cache)
	if err != nil {
		lg.Error("cache_init_failed", slog.String("driver", cfg.Cache.Driver), slog.String("err", err.Error()))
		return err
	}
	defer func() { _ = rollups.Close() }()
	lg.Info("cache_initialized", slog.String("driver", cfg.Cache.Driver), slog.Duration("ttl", cfg.Cache.RollupTTL))

	m := metrics.New(prometheus.DefaultRegisterer)

	bus := events.NewBus()
	bus.SubscribeAll(events.RollupInvalidator(rollups))
	bus.SubscribeAll(events.CountEvents(m))
	bus.SubscribeAll(events.Audit)

	svc := service.New(mongoStore, accounts, rollups, bus, m, opts)
	lg.Info("service_initialized")

	apiHandler := dshttp.NewRouter(svc, dshttp.Options{
		Logger:  lg,
		Timeout: cfg.Timeouts.Service,
		Auth: middleware.AuthOptions{
			Secret:   []byte(cfg.Auth.JWTSecret),
			Issuer:   cfg.Auth.Issuer,
			Audience: cfg.Auth.Audience,
			Leeway:   cfg.Auth.Leeway,
		},
		Metrics: m,
	})

	var ready int32 // 0 — not ready; 1 — ready

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if atomic.LoadInt32(&ready) != 1 {
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := []error{mongoStore.Ping(ctx), accounts.Ping(ctx)}
		if p, ok := rollups.(interface{ Ping(context.Context) error }); ok {
			checks = append(checks, p.Ping(ctx))
		}

		if err := errors.Join(checks...); err != nil {
			lg.Warn("readiness_check_failed", slog.String("err", err.Error()))
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", apiHandler)

	httpAddr := cfg.HTTP.Addr()
	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", httpAddr)
	if err != nil {
		lg.Error("http_listen_failed", slog.String("addr", httpAddr), slog.String("err", err.Error()))
		return err
	}
	lg.Info("http_listen_start", slog.String("addr", httpAddr))

	serveErrCh := make(chan error, 1)
	go func() {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	atomic.StoreInt32(&ready, 1)
	lg.Info("service_ready")

	var serveErr error
	select {
	case <-rootCtx.Done():
		lg.Info("shutdown_requested")
	case serveErr = <-serveErrCh:
		if serveErr != nil {
			lg.Error("http_serve_failed", slog.String("err", serveErr.Error()))
		}
	}

	atomic.StoreInt32(&ready, 0)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		lg.Warn("http_shutdown_incomplete", slog.String("err", err.Error()))
	} else {
		lg.Info("http_stopped")
	}

	return serveErr
}
