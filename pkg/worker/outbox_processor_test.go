package worker

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/washpoint/admin-api/internal/model"
	"github.com/washpoint/admin-api/pkg/logger"
	"github.com/washpoint/admin-api/pkg/metrics"
)

// Collectors register on the default prometheus registry, so the package
// shares one instance across tests.
var testMetrics = metrics.NewMetrics("washpoint", "workertest")

type statusCall struct {
	id      uuid.UUID
	status  model.OutboxStatus
	errMsg  *string
	retryAt *time.Time
}

type repoStub struct {
	pending     []*model.OutboxEvent
	statusCalls []statusCall
}

func (s *repoStub) Create(context.Context, *model.OutboxEvent) error { return nil }

func (s *repoStub) GetPendingEventsWithLock(context.Context, int) ([]*model.OutboxEvent, error) {
	return s.pending, nil
}

func (s *repoStub) BeginTx(context.Context) (*sql.Tx, error) {
	return nil, errors.New("no transactions in stub")
}

func (s *repoStub) UpdateStatusTx(_ context.Context, _ *sql.Tx, id uuid.UUID, status model.OutboxStatus, errMsg *string, retryAt *time.Time) error {
	s.statusCalls = append(s.statusCalls, statusCall{id: id, status: status, errMsg: errMsg, retryAt: retryAt})
	return nil
}

func (s *repoStub) MoveToDeadLetter(context.Context, *sql.Tx, *model.OutboxEvent) error {
	return nil
}

func (s *repoStub) DeleteProcessedBefore(context.Context, time.Time) (int64, error) {
	return 0, nil
}

type brokerStub struct {
	failures  int
	calls     int
	channels  []string
	published []interface{}
}

func (b *brokerStub) Publish(_ context.Context, channel string, message interface{}) error {
	b.calls++
	if b.calls <= b.failures {
		return errors.New("broker down")
	}
	b.channels = append(b.channels, channel)
	b.published = append(b.published, message)
	return nil
}

func (b *brokerStub) Subscribe(context.Context, string) (<-chan []byte, error) { return nil, nil }

func (b *brokerStub) Close() error { return nil }

func newProcessor(repo *repoStub, broker *brokerStub, config OutboxProcessorConfig) *OutboxProcessor {
	return NewOutboxProcessor(repo, broker, config, logger.NewLogger(&logger.Config{Level: "fatal", Console: true}), testMetrics)
}

func pendingEvent(retryCount int) *model.OutboxEvent {
	return &model.OutboxEvent{
		ID:         uuid.New(),
		EventType:  "APPOINTMENT_CREATE",
		Payload:    json.RawMessage(`{"entity":"appointment","operation":"create"}`),
		Status:     model.OutboxStatusPending,
		RetryCount: retryCount,
	}
}

func TestDrainPublishesAndMarksProcessed(t *testing.T) {
	first := pendingEvent(0)
	second := pendingEvent(0)
	repo := &repoStub{pending: []*model.OutboxEvent{first, second}}
	broker := &brokerStub{}

	p := newProcessor(repo, broker, OutboxProcessorConfig{Channel: "entity-events"})
	require.NoError(t, p.drain(context.Background()))

	require.Len(t, broker.published, 2)
	assert.Equal(t, []string{"entity-events", "entity-events"}, broker.channels)
	// The stored JSON goes out as-is.
	assert.Equal(t, first.Payload, broker.published[0])

	require.Len(t, repo.statusCalls, 2)
	for i, call := range repo.statusCalls {
		assert.Equal(t, model.OutboxStatusProcessed, call.status)
		assert.Nil(t, call.errMsg)
		assert.Nil(t, call.retryAt)
		assert.Equal(t, repo.pending[i].ID, call.id)
	}
}

func TestDrainSurvivesEmptyBatch(t *testing.T) {
	repo := &repoStub{}
	broker := &brokerStub{}

	p := newProcessor(repo, broker, OutboxProcessorConfig{})
	require.NoError(t, p.drain(context.Background()))

	assert.Zero(t, broker.calls)
	assert.Empty(t, repo.statusCalls)
}

func TestPublishRetriesInCallBeforeSucceeding(t *testing.T) {
	repo := &repoStub{}
	broker := &brokerStub{failures: 2}

	p := newProcessor(repo, broker, OutboxProcessorConfig{
		RetryAttempts: 3,
		RetryDelay:    time.Millisecond,
	})
	require.NoError(t, p.publish(context.Background(), pendingEvent(0)))

	assert.Equal(t, 3, broker.calls)
	require.Len(t, repo.statusCalls, 1)
	assert.Equal(t, model.OutboxStatusProcessed, repo.statusCalls[0].status)
}

func TestPublishSchedulesRetryWhenBrokerStaysDown(t *testing.T) {
	repo := &repoStub{}
	broker := &brokerStub{failures: 100}

	p := newProcessor(repo, broker, OutboxProcessorConfig{
		RetryAttempts: 2,
		RetryDelay:    time.Millisecond,
		MaxRetries:    5,
	})
	event := pendingEvent(1)
	err := p.publish(context.Background(), event)
	require.ErrorContains(t, err, "broker down")

	assert.Equal(t, 2, broker.calls)
	require.Len(t, repo.statusCalls, 1)
	call := repo.statusCalls[0]
	assert.Equal(t, event.ID, call.id)
	assert.Equal(t, model.OutboxStatusPending, call.status)
	require.NotNil(t, call.errMsg)
	assert.Contains(t, *call.errMsg, "broker down")
	require.NotNil(t, call.retryAt)
	assert.WithinDuration(t, time.Now(), *call.retryAt, time.Second)
}

func TestPublishDeadLettersOnceRetriesExhausted(t *testing.T) {
	repo := &repoStub{}
	broker := &brokerStub{failures: 100}

	p := newProcessor(repo, broker, OutboxProcessorConfig{
		RetryAttempts: 1,
		RetryDelay:    time.Millisecond,
		MaxRetries:    3,
	})
	err := p.publish(context.Background(), pendingEvent(2))

	// The stub cannot hand out transactions, so reaching the dead letter
	// path surfaces as its begin error; what matters is the row was not
	// rescheduled as pending.
	require.ErrorContains(t, err, "dead letter")
	assert.Empty(t, repo.statusCalls)
}
