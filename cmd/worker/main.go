package main

import (
	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"docquery/internal/activities"
	"docquery/internal/answer"
	"docquery/internal/config"
	"docquery/internal/logger"
	"docquery/internal/workflows"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()
	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	c, err := client.Dial(client.Options{HostPort: cfg.TemporalAddress})
	if err != nil {
		log.Zerolog().Fatal().Err(err).Msg("dial temporal")
	}
	defer c.Close()

	w := worker.New(c, cfg.TemporalTaskQueue, worker.Options{})
	workflows.Register(w)
	engine := answer.New(
		answer.WithMatchLimit(cfg.MatchLimit),
		answer.WithMonitor(log.AnswerMonitor()),
	)
	activities.Register(w, activities.New(cfg, engine))

	log.Info().
		Str("temporal", cfg.TemporalAddress).
		Str("queue", cfg.TemporalTaskQueue).
		Int("batch_workers", cfg.BatchWorkers).
		Msg("docquery worker listening")
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Zerolog().Fatal().Err(err).Msg("worker stopped")
	}
}
