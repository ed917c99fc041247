package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/washpoint/admin-api/internal/model"
	"github.com/washpoint/admin-api/internal/repository"
)

type outboxRepository struct {
	BaseRepository
}

func NewOutboxRepository(base BaseRepository) repository.OutboxRepository {
	return &outboxRepository{base}
}

// execer lets the tx-aware methods run on either the pool or an open
// transaction without duplicating each statement.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func (r *outboxRepository) on(tx *sql.Tx) execer {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *outboxRepository) Create(ctx context.Context, event *model.OutboxEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}
	if event.Payload == nil {
		return fmt.Errorf("event payload cannot be nil")
	}

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	event.Status = model.OutboxStatusPending

	const query = `
		INSERT INTO outbox_events (id, event_type, payload, status, created_at, updated_at)
		VALUES (:id, :event_type, :payload, :status, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("failed to create outbox event: %w", err)
	}
	return nil
}

// GetPendingEventsWithLock claims a batch with SKIP LOCKED so concurrent
// workers never double-publish. Rows waiting on a retry_at in the future
// stay out of the batch.
func (r *outboxRepository) GetPendingEventsWithLock(ctx context.Context, limit int) ([]*model.OutboxEvent, error) {
	const query = `
		SELECT id, event_type, payload, status, error_message, retry_count,
		       retry_at, created_at, updated_at, processed_at
		FROM outbox_events
		WHERE status = $1 AND (retry_at IS NULL OR retry_at <= NOW())
		ORDER BY created_at
		FOR UPDATE SKIP LOCKED
		LIMIT $2`

	var events []*model.OutboxEvent
	if err := r.db.SelectContext(ctx, &events, query, model.OutboxStatusPending, limit); err != nil {
		return nil, fmt.Errorf("failed to fetch pending events: %w", err)
	}
	return events, nil
}

func (r *outboxRepository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return r.db.BeginTx(ctx, nil)
}

// UpdateStatusTx records a processing outcome. A non-nil retryAt schedules
// another attempt and bumps the retry counter; the PROCESSED status stamps
// processed_at.
func (r *outboxRepository) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uuid.UUID, status model.OutboxStatus, errorMessage *string, retryAt *time.Time) error {
	const query = `
		UPDATE outbox_events
		SET status = $2,
		    error_message = $3,
		    retry_at = $4,
		    retry_count = retry_count + CASE WHEN $4 IS NOT NULL THEN 1 ELSE 0 END,
		    processed_at = CASE WHEN $2 = 'PROCESSED' THEN NOW() ELSE processed_at END,
		    updated_at = NOW()
		WHERE id = $1`

	_, err := r.on(tx).ExecContext(ctx, query, id, status, errorMessage, retryAt)
	return err
}

func (r *outboxRepository) MoveToDeadLetter(ctx context.Context, tx *sql.Tx, event *model.OutboxEvent) error {
	const query = `
		INSERT INTO outbox_events_deadletter
			(event_id, event_type, payload, error_message, retry_count, last_retry_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())`

	_, err := r.on(tx).ExecContext(ctx, query,
		event.ID, event.EventType, event.Payload,
		event.ErrorMessage, event.RetryCount, event.RetryAt)
	return err
}

func (r *outboxRepository) DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error) {
	const query = `
		DELETE FROM outbox_events
		WHERE status = $1 AND processed_at < $2`

	result, err := r.db.ExecContext(ctx, query, model.OutboxStatusProcessed, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete processed events: %w", err)
	}
	return result.RowsAffected()
}
