package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/washpoint/admin-api/internal/model"
	"github.com/washpoint/admin-api/pkg/messaging"
)

// reportSources are the entities whose changes make cached reports stale.
var reportSources = map[string]bool{
	"appointment": true,
	"shift":       true,
	"user":        true,
}

// Invalidator drops derived cache entries when entity-change events arrive
// over the broker.
type Invalidator struct {
	store   *Store
	broker  messaging.MessageBroker
	channel string
	logger  *zerolog.Logger
}

func NewInvalidator(store *Store, broker messaging.MessageBroker, channel string, logger *zerolog.Logger) *Invalidator {
	return &Invalidator{
		store:   store,
		broker:  broker,
		channel: channel,
		logger:  logger,
	}
}

// Start subscribes to the event channel. A failed subscription leaves the
// store marked offline so callers keep serving straight from the
// repositories until connectivity returns.
func (i *Invalidator) Start(ctx context.Context) error {
	if err := i.broker.Subscribe(ctx, i.channel, i.handle); err != nil {
		i.store.SetOnline(false)
		return fmt.Errorf("failed to subscribe to %s: %w", i.channel, err)
	}
	i.store.SetOnline(true)
	return nil
}

func (i *Invalidator) handle(payload []byte) error {
	var evt model.EntityEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		// Unknown payload shape: safest is dropping everything derived.
		i.logger.Warn().Err(err).Msg("unparseable entity event, clearing cache")
		i.store.Clear()
		return nil
	}

	if !reportSources[evt.Entity] {
		return nil
	}

	removed := i.store.DeletePrefix("report:")
	i.logger.Debug().
		Str("entity", evt.Entity).
		Str("operation", evt.Operation).
		Int("invalidated", removed).
		Msg("invalidated cached reports")
	return nil
}
