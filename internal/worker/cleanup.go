package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/washpoint/admin-api/internal/repository"
	"github.com/washpoint/admin-api/pkg/logger"
)

type CleanupConfig struct {
	Schedule              string
	OutboxRetention       time.Duration
	NotificationRetention time.Duration
}

// CleanupWorker purges rows nobody reads anymore: processed outbox events
// and notifications the user already marked read. The outbox repo is nil
// with the bolt backend, which has no outbox table.
type CleanupWorker struct {
	outboxRepo repository.OutboxRepository
	notifRepo  repository.NotificationRepository
	config     CleanupConfig
	logger     *logger.Logger
	sched      *cron.Cron
}

func NewCleanupWorker(
	outboxRepo repository.OutboxRepository,
	notifRepo repository.NotificationRepository,
	config CleanupConfig,
	logger *logger.Logger,
) *CleanupWorker {
	if config.Schedule == "" {
		config.Schedule = "@daily"
	}
	if config.OutboxRetention <= 0 {
		config.OutboxRetention = 24 * time.Hour
	}
	if config.NotificationRetention <= 0 {
		config.NotificationRetention = 30 * 24 * time.Hour
	}

	return &CleanupWorker{
		outboxRepo: outboxRepo,
		notifRepo:  notifRepo,
		config:     config,
		logger:     logger,
		sched:      cron.New(),
	}
}

func (w *CleanupWorker) Start() error {
	if _, err := w.sched.AddFunc(w.config.Schedule, w.run); err != nil {
		return fmt.Errorf("failed to schedule cleanup: %w", err)
	}
	w.sched.Start()
	w.logger.Info("cleanup worker scheduled", "schedule", w.config.Schedule)
	return nil
}

// Stop halts the scheduler and returns once any running job finished.
func (w *CleanupWorker) Stop() {
	<-w.sched.Stop().Done()
}

func (w *CleanupWorker) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if w.outboxRepo != nil {
		cutoff := time.Now().Add(-w.config.OutboxRetention)
		count, err := w.outboxRepo.DeleteProcessedBefore(ctx, cutoff)
		if err != nil {
			w.logger.Error(err, "outbox cleanup failed")
		} else {
			w.logger.Info("purged processed outbox events", "count", count)
		}
	}

	cutoff := time.Now().Add(-w.config.NotificationRetention)
	count, err := w.notifRepo.DeleteReadBefore(ctx, cutoff)
	if err != nil {
		w.logger.Error(err, "notification cleanup failed")
		return
	}
	w.logger.Info("purged read notifications", "count", count)
}
