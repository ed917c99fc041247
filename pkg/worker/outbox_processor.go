package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/washpoint/admin-api/internal/model"
	"github.com/washpoint/admin-api/internal/repository"
	"github.com/washpoint/admin-api/pkg/logger"
	"github.com/washpoint/admin-api/pkg/messaging"
	"github.com/washpoint/admin-api/pkg/metrics"
)

type OutboxProcessorConfig struct {
	Channel       string
	BatchSize     int
	PollInterval  time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
	MaxRetries    int
}

func (c *OutboxProcessorConfig) applyDefaults() {
	if c.Channel == "" {
		c.Channel = "entity-events"
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 100
	}
	if c.PollInterval <= 0 {
		c.PollInterval = 5 * time.Second
	}
	if c.RetryAttempts <= 0 {
		c.RetryAttempts = 3
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = time.Second
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 5
	}
}

// OutboxProcessor drains pending outbox rows onto the broker. Publish
// failures are retried in-call first; a row that keeps failing is retried on
// later polls with backoff until MaxRetries, then dead-lettered.
type OutboxProcessor struct {
	repo    repository.OutboxRepository
	broker  messaging.Broker
	config  OutboxProcessorConfig
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewOutboxProcessor(
	repo repository.OutboxRepository,
	broker messaging.Broker,
	config OutboxProcessorConfig,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *OutboxProcessor {
	config.applyDefaults()
	return &OutboxProcessor{
		repo:    repo,
		broker:  broker,
		config:  config,
		logger:  logger,
		metrics: metrics,
	}
}

// Start blocks until ctx is cancelled.
func (p *OutboxProcessor) Start(ctx context.Context) {
	p.logger.Info("outbox processor started",
		"channel", p.config.Channel,
		"poll_interval", p.config.PollInterval.String())

	// The first pass runs right away so a restarted worker doesn't sit
	// out a full poll interval with rows already pending.
	if err := p.drain(ctx); err != nil {
		p.logger.Error(err, "outbox drain failed")
	}

	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("outbox processor stopped")
			return
		case <-ticker.C:
			if err := p.drain(ctx); err != nil {
				p.logger.Error(err, "outbox drain failed")
			}
		}
	}
}

// drain claims one batch of pending rows and publishes each. Per-row
// failures are logged and settled row by row, so a poison event never
// stalls the batch.
func (p *OutboxProcessor) drain(ctx context.Context) error {
	timer := prometheus.NewTimer(p.metrics.OutboxProcessingLatency)
	defer timer.ObserveDuration()

	events, err := p.repo.GetPendingEventsWithLock(ctx, p.config.BatchSize)
	if err != nil {
		p.metrics.DatabaseOperations.WithLabelValues("get_pending_events", "error").Inc()
		return fmt.Errorf("failed to fetch pending events: %w", err)
	}
	p.metrics.DatabaseOperations.WithLabelValues("get_pending_events", "success").Inc()
	p.metrics.OutboxQueueSize.Set(float64(len(events)))

	for _, event := range events {
		if err := p.publish(ctx, event); err != nil {
			p.logger.Error(err, "outbox event not published",
				"event_id", event.ID.String(),
				"event_type", event.EventType)
		}
	}
	return nil
}

// publish pushes one row onto the broker and settles its status. The
// payload keeps its RawMessage type so the broker re-emits the stored
// JSON verbatim instead of base64-wrapping it.
func (p *OutboxProcessor) publish(ctx context.Context, event *model.OutboxEvent) error {
	err := retry(p.config.RetryAttempts, p.config.RetryDelay, func() error {
		return p.broker.Publish(ctx, p.config.Channel, event.Payload)
	})
	if err == nil {
		p.metrics.OutboxEventsProcessed.Inc()
		if err := p.repo.UpdateStatusTx(ctx, nil, event.ID, model.OutboxStatusProcessed, nil, nil); err != nil {
			return fmt.Errorf("failed to mark event processed: %w", err)
		}
		return nil
	}

	p.metrics.OutboxEventsFailed.Inc()
	p.metrics.OutboxRetries.WithLabelValues(event.EventType).Inc()

	if event.RetryCount+1 < p.config.MaxRetries {
		return p.scheduleRetry(ctx, event, err)
	}
	return p.deadLetter(ctx, event, err)
}

// scheduleRetry leaves the row pending with a future retry_at, backing
// off linearly with the retry count.
func (p *OutboxProcessor) scheduleRetry(ctx context.Context, event *model.OutboxEvent, cause error) error {
	errMsg := cause.Error()
	retryAt := time.Now().Add(p.config.RetryDelay * time.Duration(event.RetryCount+1))
	if err := p.repo.UpdateStatusTx(ctx, nil, event.ID, model.OutboxStatusPending, &errMsg, &retryAt); err != nil {
		return fmt.Errorf("failed to schedule retry: %w", err)
	}
	return cause
}

// deadLetter copies the exhausted row into the dead letter table and
// marks the original failed, atomically.
func (p *OutboxProcessor) deadLetter(ctx context.Context, event *model.OutboxEvent, cause error) error {
	errMsg := cause.Error()

	tx, err := p.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin dead letter transaction: %w", err)
	}
	defer tx.Rollback()

	event.ErrorMessage = &errMsg
	event.RetryCount++
	if err := p.repo.MoveToDeadLetter(ctx, tx, event); err != nil {
		return fmt.Errorf("failed to move event to dead letter: %w", err)
	}
	if err := p.repo.UpdateStatusTx(ctx, tx, event.ID, model.OutboxStatusFailed, &errMsg, nil); err != nil {
		return fmt.Errorf("failed to mark event failed: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit dead letter transaction: %w", err)
	}

	p.logger.Warn("outbox event dead-lettered",
		"event_id", event.ID.String(),
		"event_type", event.EventType,
		"retry_count", event.RetryCount)
	return cause
}

func retry(attempts int, delay time.Duration, fn func() error) error {
	err := fn()
	for i := 1; i < attempts && err != nil; i++ {
		time.Sleep(delay)
		err = fn()
	}
	return err
}
