package messaging

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan []byte) []byte {
	t.Helper()
	select {
	case payload := <-ch:
		return payload
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func TestMemoryBrokerRoundtrip(t *testing.T) {
	broker := NewMemoryBroker()
	defer broker.Close()

	ch, err := broker.Subscribe(context.Background(), "entity-events")
	require.NoError(t, err)

	msg := map[string]string{"entity": "appointment", "operation": "create"}
	require.NoError(t, broker.Publish(context.Background(), "entity-events", msg))

	var got map[string]string
	require.NoError(t, json.Unmarshal(receive(t, ch), &got))
	assert.Equal(t, msg, got)
}

func TestMemoryBrokerFansOut(t *testing.T) {
	broker := NewMemoryBroker()
	defer broker.Close()

	first, err := broker.Subscribe(context.Background(), "entity-events")
	require.NoError(t, err)
	second, err := broker.Subscribe(context.Background(), "entity-events")
	require.NoError(t, err)

	require.NoError(t, broker.Publish(context.Background(), "entity-events", "hello"))

	assert.Equal(t, []byte(`"hello"`), receive(t, first))
	assert.Equal(t, []byte(`"hello"`), receive(t, second))
}

func TestMemoryBrokerChannelIsolation(t *testing.T) {
	broker := NewMemoryBroker()
	defer broker.Close()

	other, err := broker.Subscribe(context.Background(), "other")
	require.NoError(t, err)

	require.NoError(t, broker.Publish(context.Background(), "entity-events", "hello"))

	select {
	case payload := <-other:
		t.Fatalf("unexpected message on other channel: %s", payload)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemoryBrokerClose(t *testing.T) {
	broker := NewMemoryBroker()

	ch, err := broker.Subscribe(context.Background(), "entity-events")
	require.NoError(t, err)

	require.NoError(t, broker.Close())

	_, open := <-ch
	assert.False(t, open)

	err = broker.Publish(context.Background(), "entity-events", "late")
	assert.Error(t, err)

	_, err = broker.Subscribe(context.Background(), "entity-events")
	assert.Error(t, err)

	// Closing twice is harmless.
	assert.NoError(t, broker.Close())
}

func TestMemoryBrokerCancelledContext(t *testing.T) {
	broker := NewMemoryBroker()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := broker.Publish(ctx, "entity-events", "never")
	assert.ErrorIs(t, err, context.Canceled)
}
