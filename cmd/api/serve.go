package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agate-ltd/agency-crm/internal/app"
	"github.com/agate-ltd/agency-crm/internal/events"
	"github.com/agate-ltd/agency-crm/internal/persistence"
	"github.com/agate-ltd/agency-crm/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server",
	RunE:  runServe,
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := persistence.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer store.Close()

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	var sink service.AuditSink
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaSink := events.NewKafkaSink(events.NewKafkaWriter(cfg.Kafka.Brokers, logger), cfg.Kafka.AuditTopic)
		defer func() {
			if err := kafkaSink.Close(); err != nil {
				logger.Warn("close audit sink", zap.Error(err))
			}
		}()
		sink = kafkaSink
		logger.Info("audit events forwarded to kafka",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.AuditTopic))
	}

	application, err := app.New(app.Dependencies{
		Config:    cfg,
		Logger:    logger,
		Store:     store,
		Redis:     redis,
		AuditSink: sink,
	})
	if err != nil {
		logger.Fatal("failed to build application", zap.Error(err))
	}

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("store", store.Driver))
		if err := application.Fiber.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	return application.Fiber.ShutdownWithTimeout(10 * time.Second)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
