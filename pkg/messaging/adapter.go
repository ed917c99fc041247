package messaging

import (
	"context"
	"encoding/json"
)

// BrokerAdapter lifts a channel-style Broker into the handler-style
// MessageBroker surface.
type BrokerAdapter struct {
	broker Broker
}

func NewBrokerAdapter(broker Broker) MessageBroker {
	return &BrokerAdapter{broker: broker}
}

// Publish forwards raw JSON. RawMessage keeps the underlying broker from
// re-encoding the bytes as a base64 string.
func (a *BrokerAdapter) Publish(ctx context.Context, topic string, payload []byte) error {
	return a.broker.Publish(ctx, topic, json.RawMessage(payload))
}

// Subscribe drains the broker channel in a goroutine, handing each message
// to the handler. A handler error drops that message and keeps the loop
// alive; the loop ends when the broker closes the channel.
func (a *BrokerAdapter) Subscribe(ctx context.Context, topic string, handler func([]byte) error) error {
	messages, err := a.broker.Subscribe(ctx, topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			_ = handler(msg)
		}
	}()

	return nil
}

func (a *BrokerAdapter) Close() error {
	return a.broker.Close()
}
