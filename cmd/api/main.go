package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/washpoint/admin-api/config"
	"github.com/washpoint/admin-api/internal/cache"
	"github.com/washpoint/admin-api/internal/email"
	"github.com/washpoint/admin-api/internal/handler"
	appointmentHandler "github.com/washpoint/admin-api/internal/handler/appointment"
	clientHandler "github.com/washpoint/admin-api/internal/handler/client"
	notificationHandler "github.com/washpoint/admin-api/internal/handler/notification"
	reportHandler "github.com/washpoint/admin-api/internal/handler/report"
	serviceHandler "github.com/washpoint/admin-api/internal/handler/service"
	shiftHandler "github.com/washpoint/admin-api/internal/handler/shift"
	userHandler "github.com/washpoint/admin-api/internal/handler/user"
	vehicleHandler "github.com/washpoint/admin-api/internal/handler/vehicle"
	"github.com/washpoint/admin-api/internal/middleware"
	"github.com/washpoint/admin-api/internal/repository"
	"github.com/washpoint/admin-api/internal/repository/bolt"
	"github.com/washpoint/admin-api/internal/repository/postgres"
	"github.com/washpoint/admin-api/internal/router"
	appointmentService "github.com/washpoint/admin-api/internal/service/appointment"
	catalogService "github.com/washpoint/admin-api/internal/service/catalog"
	clientService "github.com/washpoint/admin-api/internal/service/client"
	eventService "github.com/washpoint/admin-api/internal/service/event"
	notificationService "github.com/washpoint/admin-api/internal/service/notification"
	reportService "github.com/washpoint/admin-api/internal/service/report"
	shiftService "github.com/washpoint/admin-api/internal/service/shift"
	userService "github.com/washpoint/admin-api/internal/service/user"
	vehicleService "github.com/washpoint/admin-api/internal/service/vehicle"
	internalworker "github.com/washpoint/admin-api/internal/worker"
	"github.com/washpoint/admin-api/pkg/event"
	"github.com/washpoint/admin-api/pkg/logger"
	"github.com/washpoint/admin-api/pkg/messaging"
	redisbroker "github.com/washpoint/admin-api/pkg/messaging/redis"
	"github.com/washpoint/admin-api/pkg/metrics"
	"github.com/washpoint/admin-api/pkg/security"
)

type repositories struct {
	users         repository.UserRepository
	clients       repository.ClientRepository
	vehicles      repository.VehicleRepository
	services      repository.ServiceRepository
	shifts        repository.ShiftRepository
	appointments  repository.AppointmentRepository
	notifications repository.NotificationRepository
	outbox        repository.OutboxRepository
}

// storage bundles everything that depends on the configured backend: the
// repositories, the event emitter (outbox rows on postgres, direct broker
// publish on bolt), the readiness probe and the teardown hook.
type storage struct {
	repos   repositories
	emitter event.Emitter
	broker  messaging.Broker
	ready   func(context.Context) error
	close   func()
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(&cfg.Logger)
	zl := appLogger.Zerolog()

	m := metrics.NewMetrics("washpoint", "api")

	st, err := openStorage(cfg, &zl)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage")
	}
	defer st.close()

	cacheStore := cache.NewStore(cfg.Cache.ToStoreConfig(), m)
	startInvalidator(cfg, st, cacheStore, &zl)

	var emailSvc email.Service
	if cfg.SMTP.Host != "" {
		emailSvc = email.NewSMTPService(cfg.SMTP)
	}

	hasher := security.NewBcryptHasher(0)
	notifSvc := notificationService.NewService(st.repos.notifications, st.repos.users, emailSvc, &zl)
	userSvc := userService.NewService(st.repos.users, hasher, emailSvc, &zl)
	clientSvc := clientService.NewService(st.repos.clients, st.repos.vehicles)
	vehicleSvc := vehicleService.NewService(st.repos.vehicles, st.repos.clients)
	catalogSvc := catalogService.NewService(st.repos.services)
	shiftSvc := shiftService.NewService(st.repos.shifts, st.repos.users, notifSvc)
	appointmentSvc := appointmentService.NewService(
		st.repos.appointments,
		st.repos.clients,
		st.repos.vehicles,
		st.repos.services,
		notifSvc,
	)
	reportSvc := reportService.NewService(
		st.repos.appointments,
		st.repos.shifts,
		st.repos.users,
		cacheStore,
		m,
	)

	eventTracker := event.NewTracker(st.emitter, zl)

	h := handler.NewHandler(st.ready)

	r := router.NewRouter(
		userHandler.NewHandler(userSvc),
		clientHandler.NewHandler(clientSvc),
		vehicleHandler.NewHandler(vehicleSvc),
		serviceHandler.NewHandler(catalogSvc),
		shiftHandler.NewHandler(shiftSvc),
		appointmentHandler.NewHandler(appointmentSvc),
		notificationHandler.NewHandler(notifSvc),
		reportHandler.NewHandler(reportSvc),
		h,
		eventTracker,
		m,
		router.RouterConfig{
			RateLimit: middleware.RateLimiterConfig{
				RPS:   cfg.RateLimit.RPS,
				Burst: cfg.RateLimit.Burst,
			},
			CORS:    middleware.DefaultCORSConfig(),
			Timeout: cfg.Server.RequestTimeout,
		},
	)
	r.Setup()

	// The bolt backend has no separate worker process, so housekeeping runs
	// inside the API.
	if cfg.Storage.Backend == config.BackendBolt {
		cleanup := internalworker.NewCleanupWorker(nil, st.repos.notifications, cfg.Cleanup.ToWorkerConfig(), appLogger)
		if err := cleanup.Start(); err != nil {
			log.Fatal().Err(err).Msg("failed to start cleanup worker")
		}
		defer cleanup.Stop()
	}

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        r.Engine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		appLogger.Info("starting server", "addr", srv.Addr, "backend", cfg.Storage.Backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info("server exited")
}

func openStorage(cfg *config.Config, zl *zerolog.Logger) (*storage, error) {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		return openPostgres(cfg, zl)
	case config.BackendBolt:
		return openBolt(cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func openPostgres(cfg *config.Config, zl *zerolog.Logger) (*storage, error) {
	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	base := postgres.NewBaseRepository(db)
	outboxRepo := postgres.NewOutboxRepository(base)

	st := &storage{
		repos: repositories{
			users:         postgres.NewUserRepository(db),
			clients:       postgres.NewClientRepository(db),
			vehicles:      postgres.NewVehicleRepository(db),
			services:      postgres.NewServiceRepository(db),
			shifts:        postgres.NewShiftRepository(db),
			appointments:  postgres.NewAppointmentRepository(base),
			notifications: postgres.NewNotificationRepository(db),
			outbox:        outboxRepo,
		},
		emitter: eventService.NewOutboxEmitter(outboxRepo),
		ready: func(ctx context.Context) error {
			return db.PingContext(ctx)
		},
		close: func() {
			db.Close()
		},
	}

	// The broker is only the subscription side here; publishing happens in
	// the worker that drains the outbox. A dead redis must not take the API
	// down with it.
	broker, err := redisbroker.NewRedisBroker(cfg.Redis.ToBrokerConfig(), zl)
	if err != nil {
		zl.Warn().Err(err).Msg("redis unavailable, cache invalidation disabled")
	} else {
		st.broker = broker
		closeDB := st.close
		st.close = func() {
			broker.Close()
			closeDB()
		}
	}

	return st, nil
}

func openBolt(cfg *config.Config) (*storage, error) {
	store, err := bolt.Open(cfg.Storage.BoltPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt store: %w", err)
	}

	broker := messaging.NewMemoryBroker()

	return &storage{
		repos: repositories{
			users:         bolt.NewUserRepository(store),
			clients:       bolt.NewClientRepository(store),
			vehicles:      bolt.NewVehicleRepository(store),
			services:      bolt.NewServiceRepository(store),
			shifts:        bolt.NewShiftRepository(store),
			appointments:  bolt.NewAppointmentRepository(store),
			notifications: bolt.NewNotificationRepository(store),
		},
		emitter: eventService.NewBrokerEmitter(broker, cfg.Outbox.Channel),
		broker:  broker,
		ready: func(ctx context.Context) error {
			return nil
		},
		close: func() {
			broker.Close()
			store.Close()
		},
	}, nil
}

func startInvalidator(cfg *config.Config, st *storage, cacheStore *cache.Store, zl *zerolog.Logger) {
	if st.broker == nil {
		cacheStore.SetOnline(false)
		return
	}

	invalidator := cache.NewInvalidator(cacheStore, messaging.NewBrokerAdapter(st.broker), cfg.Outbox.Channel, zl)
	if err := invalidator.Start(context.Background()); err != nil {
		zl.Warn().Err(err).Msg("cache invalidation disabled")
	}
}
