package messaging

import "context"

// Broker is the channel-style pub/sub surface. Publish owns the wire
// encoding: it marshals whatever message it is handed, so callers pass
// structs or json.RawMessage, never pre-encoded []byte.
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}

// MessageBroker is the handler-style surface for consumers that would
// rather register a callback than drain a channel.
type MessageBroker interface {
	Publish(ctx context.Context, topic string, payload []byte) error
	Subscribe(ctx context.Context, topic string, handler func([]byte) error) error
	Close() error
}
