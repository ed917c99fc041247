package vehicle

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/washpoint/admin-api/internal/handler"
	"github.com/washpoint/admin-api/internal/model"
	"github.com/washpoint/admin-api/internal/service/vehicle"
	"github.com/washpoint/admin-api/pkg/event"
	"github.com/washpoint/admin-api/pkg/httputil"
)

type Handler struct {
	service *vehicle.Service
}

func NewHandler(service *vehicle.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateVehicle(c *gin.Context) {
	var req model.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	vehicle, err := h.service.CreateVehicle(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	eventCtx, _ := c.Get("eventCtx")
	if ctx, ok := eventCtx.(*event.EventContext); ok {
		ctx.EntityID = vehicle.ID
		ctx.NewData = vehicle
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": vehicle})
}

func (h *Handler) GetVehicle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid vehicle ID"})
		return
	}

	vehicle, err := h.service.GetVehicle(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": vehicle})
}

func (h *Handler) ListVehicles(c *gin.Context) {
	filters := &model.VehicleFilters{
		LicensePlate: c.Query("licensePlate"),
		SearchTerm:   c.Query("search"),
	}

	clientID, ok := httputil.UUIDQuery(c, "clientId")
	if !ok {
		return
	}
	if clientID != nil {
		filters.ClientID = *clientID
	}

	vehicles, err := h.service.ListVehicles(c.Request.Context(), filters)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": vehicles})
}

func (h *Handler) UpdateVehicle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid vehicle ID"})
		return
	}

	var req model.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	vehicle, err := h.service.UpdateVehicle(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	eventCtx, _ := c.Get("eventCtx")
	if ctx, ok := eventCtx.(*event.EventContext); ok {
		ctx.EntityID = vehicle.ID
		ctx.NewData = vehicle
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": vehicle})
}

func (h *Handler) DeleteVehicle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid vehicle ID"})
		return
	}

	vehicle, err := h.service.GetVehicle(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	if err := h.service.DeleteVehicle(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	eventCtx, _ := c.Get("eventCtx")
	if ctx, ok := eventCtx.(*event.EventContext); ok {
		ctx.EntityID = id
		ctx.OldData = vehicle
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	vehicles := r.Group("/vehicles")
	{
		vehicles.POST("", h.CreateVehicle)
		vehicles.GET("", h.ListVehicles)
		vehicles.GET("/:id", h.GetVehicle)
		vehicles.PUT("/:id", h.UpdateVehicle)
		vehicles.DELETE("/:id", h.DeleteVehicle)
	}
}

func (h *Handler) RegisterRoutesWithEvents(r *gin.RouterGroup, tracker *event.Tracker) {
	vehicles := r.Group("/vehicles")
	{
		vehicles.POST("", tracker.TrackEvent("vehicle", "create"), h.CreateVehicle)
		vehicles.PUT("/:id", tracker.TrackEvent("vehicle", "update"), h.UpdateVehicle)
		vehicles.DELETE("/:id", tracker.TrackEvent("vehicle", "delete"), h.DeleteVehicle)
		vehicles.GET("", h.ListVehicles)
		vehicles.GET("/:id", h.GetVehicle)
	}
}
