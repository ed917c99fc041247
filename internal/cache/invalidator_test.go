package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/washpoint/admin-api/internal/model"
	"github.com/washpoint/admin-api/pkg/messaging"
)

func newInvalidatorFixture(t *testing.T) (*Store, *messaging.MemoryBroker, *Invalidator) {
	t.Helper()

	store := NewStore(Config{}, nil)
	broker := messaging.NewMemoryBroker()
	t.Cleanup(func() { broker.Close() })

	logger := zerolog.Nop()
	inv := NewInvalidator(store, messaging.NewBrokerAdapter(broker), "entity-events", &logger)
	return store, broker, inv
}

func TestInvalidatorDropsReportsOnEntityEvents(t *testing.T) {
	store, broker, inv := newInvalidatorFixture(t)

	require.NoError(t, inv.Start(context.Background()))
	assert.Equal(t, StatusSynced, store.Status())

	require.NoError(t, store.Set("report:daily:2024-01-01", 1))
	require.NoError(t, store.Set("session:abc", 2))

	evt := model.EntityEvent{
		Entity:    "appointment",
		Operation: "update",
		EntityID:  uuid.New(),
		Timestamp: time.Now(),
	}
	require.NoError(t, broker.Publish(context.Background(), "entity-events", evt))

	require.Eventually(t, func() bool {
		return !store.Has("report:daily:2024-01-01")
	}, time.Second, 10*time.Millisecond)
	assert.True(t, store.Has("session:abc"))
}

func TestInvalidatorIgnoresUnrelatedEntities(t *testing.T) {
	store, broker, inv := newInvalidatorFixture(t)

	require.NoError(t, inv.Start(context.Background()))
	require.NoError(t, store.Set("report:daily:2024-01-01", 1))

	evt := model.EntityEvent{Entity: "client", Operation: "update", EntityID: uuid.New()}
	require.NoError(t, broker.Publish(context.Background(), "entity-events", evt))

	time.Sleep(50 * time.Millisecond)
	assert.True(t, store.Has("report:daily:2024-01-01"))
}

func TestInvalidatorClearsOnUnparseablePayload(t *testing.T) {
	store, broker, inv := newInvalidatorFixture(t)

	require.NoError(t, inv.Start(context.Background()))
	require.NoError(t, store.Set("report:daily:2024-01-01", 1))
	require.NoError(t, store.Set("session:abc", 2))

	require.NoError(t, broker.Publish(context.Background(), "entity-events", "not an entity event"))

	require.Eventually(t, func() bool {
		return store.Len() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestInvalidatorMarksStoreOfflineOnSubscribeFailure(t *testing.T) {
	store, broker, inv := newInvalidatorFixture(t)

	require.NoError(t, broker.Close())

	err := inv.Start(context.Background())
	require.Error(t, err)
	assert.Equal(t, StatusOffline, store.Status())
}
