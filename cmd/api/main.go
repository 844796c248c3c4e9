package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"example.com/schoolactivities/internal/api"
	"example.com/schoolactivities/internal/config"
	"example.com/schoolactivities/internal/directory"
	"example.com/schoolactivities/internal/domain"
	"example.com/schoolactivities/internal/events"
	"example.com/schoolactivities/internal/logging"
	"example.com/schoolactivities/internal/outbox"
	httptransport "example.com/schoolactivities/internal/transport/http"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var publisher events.Publisher = events.NoopPublisher{}
	var dispatcher *outbox.Dispatcher
	var producer *outbox.KafkaProducer
	if cfg.EventsEnabled() {
		box := outbox.New(cfg.OutboxBufferSize)
		producer = outbox.NewKafkaProducer(cfg.KafkaBrokers, 0)
		dispatcher = outbox.NewDispatcher(box, producer, cfg.RegistrationTopic, cfg.OutboxPollInterval, cfg.OutboxBatchSize, logger.Named("outbox"))
		publisher = box
		go dispatcher.Start(ctx)
		logger.Info("registration events enabled",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.RegistrationTopic),
		)
	}

	repo := directory.NewMemory(directory.DefaultSeed())
	service := domain.NewService(repo, domain.WithPublisher(publisher), domain.WithLogger(logger.Named("domain")))
	handler := api.NewHandler(service, logger.Named("api"))

	router := api.NewRouter(handler, api.RouterConfig{
		StaticDir:         cfg.StaticDir,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		Logger:            logger.Named("http"),
	})

	server := httptransport.NewServer(httptransport.ServerConfig{
		Address:      cfg.HTTPAddress,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}, router)

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("activity signup service listening", zap.String("address", cfg.HTTPAddress))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-shutdownCh
	logger.Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
	}

	cancel()
	if dispatcher != nil {
		dispatcher.Wait()
		if err := producer.Close(); err != nil {
			logger.Warn("kafka producer close failed", zap.Error(err))
		}
	}
	logger.Info("server exited")
}
