package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/washpoint/admin-api/internal/handler"
	"github.com/washpoint/admin-api/internal/model"
	"github.com/washpoint/admin-api/internal/service/appointment"
	"github.com/washpoint/admin-api/pkg/event"
	"github.com/washpoint/admin-api/pkg/httputil"
)

type Handler struct {
	service *appointment.Service
}

func NewHandler(service *appointment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	appointment, err := h.service.CreateAppointment(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	eventCtx, _ := c.Get("eventCtx")
	if ctx, ok := eventCtx.(*event.EventContext); ok {
		ctx.EntityID = appointment.ID
		ctx.NewData = appointment
		ctx.Additional = map[string]interface{}{
			"client_id":  appointment.ClientID,
			"vehicle_id": appointment.VehicleID,
		}
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": appointment})
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid appointment ID"})
		return
	}

	appointment, err := h.service.GetAppointment(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": appointment})
}

// ListAppointmentServices returns the line items with the prices that were
// locked in when the appointment was booked.
func (h *Handler) ListAppointmentServices(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid appointment ID"})
		return
	}

	services, err := h.service.ListAppointmentServices(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": services})
}

func (h *Handler) ListAppointments(c *gin.Context) {
	filters := &model.AppointmentFilters{
		Status:    model.AppointmentStatus(c.Query("status")),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}

	clientID, ok := httputil.UUIDQuery(c, "clientId")
	if !ok {
		return
	}
	if clientID != nil {
		filters.ClientID = *clientID
	}

	vehicleID, ok := httputil.UUIDQuery(c, "vehicleId")
	if !ok {
		return
	}
	if vehicleID != nil {
		filters.VehicleID = *vehicleID
	}

	userID, ok := httputil.UUIDQuery(c, "userId")
	if !ok {
		return
	}
	if userID != nil {
		filters.UserID = *userID
	}

	appointments, err := h.service.ListAppointments(c.Request.Context(), filters)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": appointments})
}

func (h *Handler) UpdateAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid appointment ID"})
		return
	}

	var req model.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	oldAppointment, err := h.service.GetAppointment(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	appointment, err := h.service.UpdateAppointment(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	eventCtx, _ := c.Get("eventCtx")
	if ctx, ok := eventCtx.(*event.EventContext); ok {
		ctx.EntityID = appointment.ID
		ctx.OldData = oldAppointment
		ctx.NewData = appointment
		ctx.Additional = map[string]interface{}{
			"changes": event.Changes(oldAppointment, appointment, []string{"date", "startTime", "userId", "vehicleId", "notes"}),
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": appointment})
}

// UpdateAppointmentStatus moves an appointment along its lifecycle. Invalid
// transitions come back as conflicts.
func (h *Handler) UpdateAppointmentStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid appointment ID"})
		return
	}

	var req model.UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	appointment, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		handler.Error(c, err)
		return
	}

	eventCtx, _ := c.Get("eventCtx")
	if ctx, ok := eventCtx.(*event.EventContext); ok {
		ctx.EntityID = appointment.ID
		ctx.NewData = appointment
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": appointment})
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid appointment ID"})
		return
	}

	appointment, err := h.service.GetAppointment(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	if err := h.service.DeleteAppointment(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	eventCtx, _ := c.Get("eventCtx")
	if ctx, ok := eventCtx.(*event.EventContext); ok {
		ctx.EntityID = id
		ctx.OldData = appointment
		ctx.Additional = map[string]interface{}{
			"client_id": appointment.ClientID,
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.CreateAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:id", h.GetAppointment)
		appointments.GET("/:id/services", h.ListAppointmentServices)
		appointments.PUT("/:id", h.UpdateAppointment)
		appointments.POST("/:id/status", h.UpdateAppointmentStatus)
		appointments.DELETE("/:id", h.DeleteAppointment)
	}
}

func (h *Handler) RegisterRoutesWithEvents(r *gin.RouterGroup, tracker *event.Tracker) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", tracker.TrackEvent("appointment", "create"), h.CreateAppointment)
		appointments.PUT("/:id", tracker.TrackEvent("appointment", "update"), h.UpdateAppointment)
		appointments.POST("/:id/status", tracker.TrackEvent("appointment", "status"), h.UpdateAppointmentStatus)
		appointments.DELETE("/:id", tracker.TrackEvent("appointment", "delete"), h.DeleteAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:id", h.GetAppointment)
		appointments.GET("/:id/services", h.ListAppointmentServices)
	}
}
