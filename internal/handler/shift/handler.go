package shift

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/washpoint/admin-api/internal/handler"
	"github.com/washpoint/admin-api/internal/model"
	"github.com/washpoint/admin-api/internal/service/shift"
	"github.com/washpoint/admin-api/pkg/event"
	"github.com/washpoint/admin-api/pkg/httputil"
)

type Handler struct {
	service *shift.Service
}

func NewHandler(service *shift.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateShift(c *gin.Context) {
	var req model.CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	shift, err := h.service.CreateShift(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	eventCtx, _ := c.Get("eventCtx")
	if ctx, ok := eventCtx.(*event.EventContext); ok {
		ctx.EntityID = shift.ID
		ctx.NewData = shift
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": shift})
}

func (h *Handler) GetShift(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid shift ID"})
		return
	}

	shift, err := h.service.GetShift(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": shift})
}

func (h *Handler) ListShifts(c *gin.Context) {
	filters := &model.ShiftFilters{
		Status:    model.ShiftStatus(c.Query("status")),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}

	userID, ok := httputil.UUIDQuery(c, "userId")
	if !ok {
		return
	}
	if userID != nil {
		filters.UserID = *userID
	}

	shifts, err := h.service.ListShifts(c.Request.Context(), filters)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": shifts})
}

func (h *Handler) UpdateShift(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid shift ID"})
		return
	}

	var req model.UpdateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	oldShift, err := h.service.GetShift(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	shift, err := h.service.UpdateShift(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	eventCtx, _ := c.Get("eventCtx")
	if ctx, ok := eventCtx.(*event.EventContext); ok {
		ctx.EntityID = shift.ID
		ctx.OldData = oldShift
		ctx.NewData = shift
		ctx.Additional = map[string]interface{}{
			"changes": event.Changes(oldShift, shift, []string{"date", "startTime", "endTime", "earnings"}),
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": shift})
}

// UpdateShiftStatus moves a shift along scheduled -> active -> completed.
func (h *Handler) UpdateShiftStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid shift ID"})
		return
	}

	var req model.UpdateShiftStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	shift, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		handler.Error(c, err)
		return
	}

	eventCtx, _ := c.Get("eventCtx")
	if ctx, ok := eventCtx.(*event.EventContext); ok {
		ctx.EntityID = shift.ID
		ctx.NewData = shift
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": shift})
}

func (h *Handler) DeleteShift(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid shift ID"})
		return
	}

	shift, err := h.service.GetShift(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	if err := h.service.DeleteShift(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	eventCtx, _ := c.Get("eventCtx")
	if ctx, ok := eventCtx.(*event.EventContext); ok {
		ctx.EntityID = id
		ctx.OldData = shift
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	shifts := r.Group("/shifts")
	{
		shifts.POST("", h.CreateShift)
		shifts.GET("", h.ListShifts)
		shifts.GET("/:id", h.GetShift)
		shifts.PUT("/:id", h.UpdateShift)
		shifts.POST("/:id/status", h.UpdateShiftStatus)
		shifts.DELETE("/:id", h.DeleteShift)
	}
}

func (h *Handler) RegisterRoutesWithEvents(r *gin.RouterGroup, tracker *event.Tracker) {
	shifts := r.Group("/shifts")
	{
		shifts.POST("", tracker.TrackEvent("shift", "create"), h.CreateShift)
		shifts.PUT("/:id", tracker.TrackEvent("shift", "update"), h.UpdateShift)
		shifts.POST("/:id/status", tracker.TrackEvent("shift", "status"), h.UpdateShiftStatus)
		shifts.DELETE("/:id", tracker.TrackEvent("shift", "delete"), h.DeleteShift)
		shifts.GET("", h.ListShifts)
		shifts.GET("/:id", h.GetShift)
	}
}
