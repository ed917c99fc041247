package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/asaskevich/EventBus"
)

// MemoryBroker carries messages between producers and consumers inside one
// process. It backs single-node setups where the API, the cache invalidator
// and the event emitters all live in the same binary and running a broker
// next to them would be overhead.
type MemoryBroker struct {
	bus EventBus.Bus

	mu     sync.Mutex
	subs   []*memorySub
	closed bool
}

type memorySub struct {
	channel string
	ch      chan []byte
	fn      func(payload []byte)
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{bus: EventBus.New()}
}

func (b *MemoryBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return fmt.Errorf("broker is closed")
	}
	b.mu.Unlock()

	b.bus.Publish(channel, payload)
	return nil
}

// Subscribe returns a buffered channel of payloads. A slow consumer drops
// messages rather than blocking publishers.
func (b *MemoryBroker) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, fmt.Errorf("broker is closed")
	}

	sub := &memorySub{
		channel: channel,
		ch:      make(chan []byte, 256),
	}
	sub.fn = func(payload []byte) {
		select {
		case sub.ch <- payload:
		default:
		}
	}

	if err := b.bus.Subscribe(channel, sub.fn); err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}
	b.subs = append(b.subs, sub)

	return sub.ch, nil
}

func (b *MemoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for _, sub := range b.subs {
		b.bus.Unsubscribe(sub.channel, sub.fn)
		close(sub.ch)
	}
	b.subs = nil

	return nil
}
