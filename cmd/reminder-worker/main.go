package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"mediconnect_backend/internal/email"
	"mediconnect_backend/internal/scheduler"
	"mediconnect_backend/platform/config"
	"mediconnect_backend/platform/db"
	"mediconnect_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting reminder worker", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	var sender email.Sender = email.NewNoopSender()
	if cfg.IsEmailEnabled() {
		sender = email.NewSMTPSender(cfg)
	} else {
		log.Warn("SMTP not configured; reminder emails disabled")
	}

	worker, err := scheduler.NewWorker(cfg, pool, sender, log)
	if err != nil {
		log.Error("failed to initialize worker", "error", err)
		panic("failed to initialize worker: " + err.Error())
	}

	log.Info("reminder worker listening", "queue", cfg.AsynqQueueName)
	worker.Run(ctx)
	log.Info("reminder worker stopped")
}
