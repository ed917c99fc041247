package event

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/washpoint/admin-api/internal/model"
)

// EventContext accumulates what a mutating handler did so the tracker can
// emit a change event once the response is written. Handlers fill in the
// entity id and the data they created, changed or removed.
type EventContext struct {
	Resource   string
	Operation  string
	EntityID   uuid.UUID
	OldData    interface{}
	NewData    interface{}
	Additional map[string]interface{}
}

// Emitter delivers entity-change events. The postgres deployment stages them
// through the transactional outbox; the bolt deployment publishes straight
// to the broker.
type Emitter interface {
	Emit(ctx context.Context, event *model.EntityEvent) error
}

// EventHandler is implemented by handlers whose mutating routes are wrapped
// with change tracking.
type EventHandler interface {
	RegisterRoutesWithEvents(r *gin.RouterGroup, tracker *Tracker)
}
