package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/fieldline/fieldline-backend/internal/notifications"
	"github.com/fieldline/fieldline-backend/pkg/config"
	"github.com/fieldline/fieldline-backend/pkg/kafka"
	"github.com/fieldline/fieldline-backend/pkg/logger"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "notify-worker"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "notify-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if !cfg.Kafka.Enabled() {
		logg.Error(context.Background(), "no kafka brokers configured, nothing to consume", nil)
		os.Exit(1)
	}

	handler := notifications.NewBookingEventHandler(notifications.LogSender{Logg: logg}, logg)
	consumer, err := kafka.NewConsumer(cfg.Kafka, cfg.Kafka.BookingsTopic, cfg.Kafka.ConsumerGroup, handler)
	if err != nil {
		logg.Error(context.Background(), "failed to create kafka consumer", err)
		os.Exit(1)
	}
	defer func() {
		if err := consumer.Close(); err != nil {
			logg.Error(context.Background(), "error closing kafka consumer", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runCtx := logg.WithFields(ctx, map[string]any{
		"env":   cfg.App.Env,
		"topic": cfg.Kafka.BookingsTopic,
		"group": cfg.Kafka.ConsumerGroup,
	})
	logg.Info(runCtx, "starting notify worker")

	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(runCtx, "notify worker stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(runCtx, "notify worker shut down")
}
