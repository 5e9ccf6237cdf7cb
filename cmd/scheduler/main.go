package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"buildcare_site/internal/email"
	"buildcare_site/internal/scheduler"
	"buildcare_site/platform/config"
	"buildcare_site/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sender := email.NewSender(cfg)
	if _, ok := sender.(email.NoopSender); ok {
		log.Warn("SMTP not configured; inquiry notifications will be dropped")
	}
	if cfg.GetStaffNotifyEmail() == "" {
		log.Warn("STAFF_NOTIFY_EMAIL not configured; inquiry notifications will be dropped")
	}

	worker, err := scheduler.NewWorker(cfg, sender, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	log.Info("scheduler worker running", "queue", cfg.GetAsynqQueueName())
	worker.Run(ctx)
	log.Info("scheduler stopped")
}
