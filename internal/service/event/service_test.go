package event

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/washpoint/admin-api/internal/model"
	"github.com/washpoint/admin-api/pkg/messaging"
)

type outboxStub struct {
	created []*model.OutboxEvent
}

func (s *outboxStub) Create(_ context.Context, event *model.OutboxEvent) error {
	s.created = append(s.created, event)
	return nil
}

func (s *outboxStub) GetPendingEventsWithLock(context.Context, int) ([]*model.OutboxEvent, error) {
	return nil, nil
}

func (s *outboxStub) BeginTx(context.Context) (*sql.Tx, error) { return nil, nil }

func (s *outboxStub) UpdateStatusTx(context.Context, *sql.Tx, uuid.UUID, model.OutboxStatus, *string, *time.Time) error {
	return nil
}

func (s *outboxStub) MoveToDeadLetter(context.Context, *sql.Tx, *model.OutboxEvent) error {
	return nil
}

func (s *outboxStub) DeleteProcessedBefore(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func TestOutboxEmitterStagesEvent(t *testing.T) {
	repo := &outboxStub{}
	emitter := NewOutboxEmitter(repo)

	evt := &model.EntityEvent{
		Entity:    "appointment",
		Operation: "create",
		EntityID:  uuid.New(),
		Timestamp: time.Now().UTC(),
	}
	require.NoError(t, emitter.Emit(context.Background(), evt))

	require.Len(t, repo.created, 1)
	row := repo.created[0]
	assert.Equal(t, "APPOINTMENT_CREATE", row.EventType)
	assert.Equal(t, model.OutboxStatusPending, row.Status)
	assert.NotEqual(t, uuid.Nil, row.ID)

	var stored model.EntityEvent
	require.NoError(t, json.Unmarshal(row.Payload, &stored))
	assert.Equal(t, evt.EntityID, stored.EntityID)
}

// The broker owns the wire encoding, so what subscribers receive must decode
// straight back into an EntityEvent.
func TestBrokerEmitterRoundtrip(t *testing.T) {
	broker := messaging.NewMemoryBroker()
	defer broker.Close()

	ch, err := broker.Subscribe(context.Background(), DefaultChannel)
	require.NoError(t, err)

	emitter := NewBrokerEmitter(broker, "")

	evt := &model.EntityEvent{
		Entity:    "appointment",
		Operation: "create",
		EntityID:  uuid.New(),
		Timestamp: time.Now().UTC(),
	}
	require.NoError(t, emitter.Emit(context.Background(), evt))

	select {
	case payload := <-ch:
		var got model.EntityEvent
		require.NoError(t, json.Unmarshal(payload, &got))
		assert.Equal(t, evt.Entity, got.Entity)
		assert.Equal(t, evt.Operation, got.Operation)
		assert.Equal(t, evt.EntityID, got.EntityID)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for published event")
	}
}
