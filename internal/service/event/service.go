// Package event routes entity-change events onto the configured transport.
// With the postgres backend, events are staged in the transactional outbox
// and shipped by the worker. With the bolt backend there is no outbox table,
// so events go straight to the broker.
package event

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/washpoint/admin-api/internal/model"
	"github.com/washpoint/admin-api/internal/repository"
	"github.com/washpoint/admin-api/pkg/messaging"
)

// DefaultChannel is the broker channel entity events are published on.
const DefaultChannel = "entity-events"

// OutboxEmitter stages events in the outbox table. Delivery to the broker is
// the worker's job.
type OutboxEmitter struct {
	repo repository.OutboxRepository
}

func NewOutboxEmitter(repo repository.OutboxRepository) *OutboxEmitter {
	return &OutboxEmitter{repo: repo}
}

func (e *OutboxEmitter) Emit(ctx context.Context, evt *model.EntityEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	now := time.Now()
	row := &model.OutboxEvent{
		ID:        uuid.New(),
		EventType: fmt.Sprintf("%s_%s", strings.ToUpper(evt.Entity), strings.ToUpper(evt.Operation)),
		Payload:   payload,
		Status:    model.OutboxStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := e.repo.Create(ctx, row); err != nil {
		return fmt.Errorf("failed to create outbox event: %w", err)
	}
	return nil
}

// BrokerEmitter publishes events directly, skipping the outbox. Used when
// the storage backend has no outbox support.
type BrokerEmitter struct {
	broker  messaging.Broker
	channel string
}

func NewBrokerEmitter(broker messaging.Broker, channel string) *BrokerEmitter {
	if channel == "" {
		channel = DefaultChannel
	}
	return &BrokerEmitter{
		broker:  broker,
		channel: channel,
	}
}

// Emit hands the event to the broker, which owns the wire encoding.
func (e *BrokerEmitter) Emit(ctx context.Context, evt *model.EntityEvent) error {
	if err := e.broker.Publish(ctx, e.channel, evt); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}
