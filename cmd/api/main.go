package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	tclient "go.temporal.io/sdk/client"

	"docquery/internal/api"
	"docquery/internal/config"
	"docquery/internal/logger"
	"docquery/internal/metrics"
	"docquery/internal/providers"
	"docquery/internal/storage"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()
	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pm, err := providers.NewManager(cfg)
	if err != nil {
		log.Zerolog().Fatal().Err(err).Msg("build llm providers")
	}
	if cfg.PostgresURL != "" {
		dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		db, err := storage.NewDB(dbCtx, cfg.PostgresURL)
		if err == nil {
			err = db.EnsureSchema(dbCtx)
		}
		cancel()
		if err != nil {
			log.Zerolog().Fatal().Err(err).Msg("postgres audit store")
		}
		defer db.Close()
		auditLog := log.Component("audit")
		pm.Observe(storage.NewLLMAuditRepo(db).Observer(func(err error) {
			auditLog.Warn().Err(err).Msg("llm call audit failed")
		}))
	}

	// The lazy client connects on first use, so the API starts without Temporal.
	tc, err := tclient.NewLazyClient(tclient.Options{HostPort: cfg.TemporalAddress})
	if err != nil {
		log.Warn().Err(err).Msg("temporal client unavailable, batch jobs disabled")
		tc = nil
	}

	srv, err := api.NewServer(cfg, api.Deps{
		Logger:    log,
		Metrics:   metrics.New(),
		Providers: pm,
		Temporal:  tc,
	})
	if err != nil {
		log.Zerolog().Fatal().Err(err).Msg("build api server")
	}
	defer srv.Shutdown(context.Background())

	httpSrv := &http.Server{
		Addr:              cfg.APIAddr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	log.Info().
		Str("addr", cfg.APIAddr).
		Str("llm_providers", cfg.LLMProviders).
		Bool("audit", cfg.PostgresURL != "").
		Msg("docquery api listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Zerolog().Fatal().Err(err).Msg("http server")
	}
}
