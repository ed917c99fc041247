package event

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/washpoint/admin-api/internal/model"
)

// Tracker is the gin middleware that turns successful mutations into
// entity-change events.
type Tracker struct {
	emitter Emitter
	logger  zerolog.Logger
}

func NewTracker(emitter Emitter, logger zerolog.Logger) *Tracker {
	return &Tracker{
		emitter: emitter,
		logger:  logger,
	}
}

// TrackEvent seeds an EventContext for the handler and, after the handler
// responded successfully, emits whatever the handler recorded in it. Emission
// failures are logged, never surfaced to the client: the mutation already
// happened.
func (t *Tracker) TrackEvent(resource, operation string) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventCtx := &EventContext{
			Resource:  resource,
			Operation: operation,
		}
		c.Set("eventCtx", eventCtx)

		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		data := eventCtx.NewData
		if data == nil {
			data = eventCtx.OldData
		}
		if data == nil {
			return
		}

		payload, err := json.Marshal(data)
		if err != nil {
			t.logger.Error().Err(err).
				Str("resource", resource).
				Str("operation", operation).
				Msg("failed to marshal event payload")
			return
		}

		evt := &model.EntityEvent{
			Entity:    resource,
			Operation: operation,
			EntityID:  eventCtx.EntityID,
			Data:      payload,
			Timestamp: time.Now(),
		}
		if err := t.emitter.Emit(c.Request.Context(), evt); err != nil {
			t.logger.Error().Err(err).
				Str("resource", resource).
				Str("operation", operation).
				Str("entity_id", eventCtx.EntityID.String()).
				Msg("failed to emit entity event")
		}
	}
}
