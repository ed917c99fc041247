package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/washpoint/admin-api/config"
	"github.com/washpoint/admin-api/internal/repository/postgres"
	internalworker "github.com/washpoint/admin-api/internal/worker"
	"github.com/washpoint/admin-api/pkg/logger"
	redisbroker "github.com/washpoint/admin-api/pkg/messaging/redis"
	"github.com/washpoint/admin-api/pkg/metrics"
	"github.com/washpoint/admin-api/pkg/worker"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// The worker drains the outbox table; only postgres has one.
	if cfg.Storage.Backend != config.BackendPostgres {
		log.Fatal().Str("backend", cfg.Storage.Backend).Msg("worker requires the postgres backend")
	}

	appLogger := logger.NewLogger(&cfg.Logger)
	zl := appLogger.Zerolog()

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	broker, err := redisbroker.NewRedisBroker(cfg.Redis.ToBrokerConfig(), &zl)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create redis broker")
	}
	defer broker.Close()

	baseRepo := postgres.NewBaseRepository(db)
	outboxRepo := postgres.NewOutboxRepository(baseRepo)
	notifRepo := postgres.NewNotificationRepository(db)

	processor := worker.NewOutboxProcessor(
		outboxRepo,
		broker,
		cfg.Outbox.ToProcessorConfig(),
		appLogger,
		metrics.NewMetrics("washpoint", "worker"),
	)

	cleanup := internalworker.NewCleanupWorker(outboxRepo, notifRepo, cfg.Cleanup.ToWorkerConfig(), appLogger)
	if err := cleanup.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start cleanup worker")
	}
	defer cleanup.Stop()

	startHealthServer(appLogger, db.PingContext, broker.BreakerState)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		appLogger.Info("shutting down worker")
		cancel()
	}()

	processor.Start(ctx)
}

func startHealthServer(appLogger *logger.Logger, ping func(context.Context) error, breakerState func() string) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		dbStatus := "up"
		if err := ping(r.Context()); err != nil {
			status = http.StatusServiceUnavailable
			dbStatus = "down"
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"database":       dbStatus,
			"broker_breaker": breakerState(),
		})
	})

	go func() {
		if err := http.ListenAndServe(":8081", mux); err != nil {
			appLogger.Error(err, "health check server failed")
		}
	}()
}
