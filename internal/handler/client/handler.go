package client

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/washpoint/admin-api/internal/handler"
	"github.com/washpoint/admin-api/internal/model"
	"github.com/washpoint/admin-api/internal/service/client"
	"github.com/washpoint/admin-api/pkg/event"
)

type Handler struct {
	service *client.Service
}

func NewHandler(service *client.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateClient(c *gin.Context) {
	var req model.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	client, err := h.service.CreateClient(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	eventCtx, _ := c.Get("eventCtx")
	if ctx, ok := eventCtx.(*event.EventContext); ok {
		ctx.EntityID = client.ID
		ctx.NewData = client
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": client})
}

func (h *Handler) GetClient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid client ID"})
		return
	}

	client, err := h.service.GetClient(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": client})
}

func (h *Handler) ListClients(c *gin.Context) {
	filters := &model.ClientFilters{
		SearchTerm: c.Query("search"),
		Phone:      c.Query("phone"),
	}

	clients, err := h.service.ListClients(c.Request.Context(), filters)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": clients})
}

// ListClientVehicles returns the client's registered vehicles.
func (h *Handler) ListClientVehicles(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid client ID"})
		return
	}

	vehicles, err := h.service.ListClientVehicles(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": vehicles})
}

func (h *Handler) UpdateClient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid client ID"})
		return
	}

	var req model.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	client, err := h.service.UpdateClient(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	eventCtx, _ := c.Get("eventCtx")
	if ctx, ok := eventCtx.(*event.EventContext); ok {
		ctx.EntityID = client.ID
		ctx.NewData = client
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": client})
}

// DeleteClient removes only the client record. Vehicles and appointments
// that reference it stay behind.
func (h *Handler) DeleteClient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid client ID"})
		return
	}

	client, err := h.service.GetClient(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	if err := h.service.DeleteClient(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	eventCtx, _ := c.Get("eventCtx")
	if ctx, ok := eventCtx.(*event.EventContext); ok {
		ctx.EntityID = id
		ctx.OldData = client
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	clients := r.Group("/clients")
	{
		clients.POST("", h.CreateClient)
		clients.GET("", h.ListClients)
		clients.GET("/:id", h.GetClient)
		clients.GET("/:id/vehicles", h.ListClientVehicles)
		clients.PUT("/:id", h.UpdateClient)
		clients.DELETE("/:id", h.DeleteClient)
	}
}

func (h *Handler) RegisterRoutesWithEvents(r *gin.RouterGroup, tracker *event.Tracker) {
	clients := r.Group("/clients")
	{
		clients.POST("", tracker.TrackEvent("client", "create"), h.CreateClient)
		clients.PUT("/:id", tracker.TrackEvent("client", "update"), h.UpdateClient)
		clients.DELETE("/:id", tracker.TrackEvent("client", "delete"), h.DeleteClient)
		clients.GET("", h.ListClients)
		clients.GET("/:id", h.GetClient)
		clients.GET("/:id/vehicles", h.ListClientVehicles)
	}
}
