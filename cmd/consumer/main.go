package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"example.com/schoolactivities/internal/config"
	"example.com/schoolactivities/internal/consumer"
	"example.com/schoolactivities/internal/logging"
)

func main() {
	dotEnvLoaded, err := config.LoadDotEnv()
	if err != nil {
		log.Fatalf("failed to load .env: %v", err)
	}
	cfg, err := config.Parse()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	if !dotEnvLoaded {
		logger.Warn(".env file not found, using process environment only")
	}

	if !cfg.EventsEnabled() {
		logger.Fatal("KAFKA_BROKERS must be set for the consumer")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metricsSrv := &http.Server{Addr: cfg.MetricsAddress, Handler: promhttp.Handler(), ReadHeaderTimeout: cfg.HTTPReadTimeout}
	go func() {
		logger.Info("consumer metrics listening", zap.String("address", cfg.MetricsAddress))
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server error", zap.Error(err))
		}
	}()

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:         cfg.KafkaBrokers,
		GroupID:         cfg.ConsumerGroupID,
		Topic:           cfg.RegistrationTopic,
		MinBytes:        1,
		MaxBytes:        10e6,
		CommitInterval:  time.Second,
		ReadLagInterval: -1,
	})

	handler := consumer.NewRosterHandler(logger.Named("roster"))
	proc := consumer.NewProcessor(reader, handler, consumer.WithLogger(logger.Named("consumer")))

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer reader.Close()

		logger.Info("consumer started",
			zap.String("topic", cfg.RegistrationTopic),
			zap.String("group", cfg.ConsumerGroupID),
		)
		if err := proc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("consumer stopped with error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info("consumer shutdown requested")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("metrics server shutdown error", zap.Error(err))
	}

	<-done
}
