package event

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/washpoint/admin-api/internal/model"
)

type captureEmitter struct {
	events []*model.EntityEvent
}

func (e *captureEmitter) Emit(_ context.Context, evt *model.EntityEvent) error {
	e.events = append(e.events, evt)
	return nil
}

func trackerRouter(emitter Emitter, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	tracker := NewTracker(emitter, zerolog.Nop())
	r.POST("/clients", tracker.TrackEvent("client", "create"), handler)
	return r
}

func TestTrackerEmitsAfterSuccess(t *testing.T) {
	emitter := &captureEmitter{}
	entityID := uuid.New()

	r := trackerRouter(emitter, func(c *gin.Context) {
		raw, _ := c.Get("eventCtx")
		evtCtx := raw.(*EventContext)
		evtCtx.EntityID = entityID
		evtCtx.NewData = map[string]string{"name": "Maria"}
		c.JSON(http.StatusCreated, gin.H{"status": "success"})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/clients", nil))
	require.Equal(t, http.StatusCreated, w.Code)

	require.Len(t, emitter.events, 1)
	evt := emitter.events[0]
	assert.Equal(t, "client", evt.Entity)
	assert.Equal(t, "create", evt.Operation)
	assert.Equal(t, entityID, evt.EntityID)
	assert.JSONEq(t, `{"name":"Maria"}`, string(evt.Data))
	assert.False(t, evt.Timestamp.IsZero())
}

func TestTrackerSkipsFailedRequests(t *testing.T) {
	emitter := &captureEmitter{}

	r := trackerRouter(emitter, func(c *gin.Context) {
		raw, _ := c.Get("eventCtx")
		evtCtx := raw.(*EventContext)
		evtCtx.EntityID = uuid.New()
		evtCtx.NewData = map[string]string{"name": "never sent"}
		c.JSON(http.StatusBadRequest, gin.H{"status": "error"})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/clients", nil))

	assert.Empty(t, emitter.events)
}

func TestTrackerSkipsWhenHandlerRecordedNothing(t *testing.T) {
	emitter := &captureEmitter{}

	r := trackerRouter(emitter, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/clients", nil))

	assert.Empty(t, emitter.events)
}

func TestTrackerFallsBackToOldData(t *testing.T) {
	emitter := &captureEmitter{}
	entityID := uuid.New()

	r := trackerRouter(emitter, func(c *gin.Context) {
		raw, _ := c.Get("eventCtx")
		evtCtx := raw.(*EventContext)
		evtCtx.EntityID = entityID
		evtCtx.OldData = map[string]string{"name": "removed"}
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/clients", nil))

	require.Len(t, emitter.events, 1)
	assert.JSONEq(t, `{"name":"removed"}`, string(emitter.events[0].Data))
}
