package service

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/washpoint/admin-api/internal/handler"
	"github.com/washpoint/admin-api/internal/model"
	"github.com/washpoint/admin-api/internal/service/catalog"
	"github.com/washpoint/admin-api/pkg/event"
)

type Handler struct {
	service *catalog.Service
}

func NewHandler(service *catalog.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateService(c *gin.Context) {
	var req model.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	service, err := h.service.CreateService(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	eventCtx, _ := c.Get("eventCtx")
	if ctx, ok := eventCtx.(*event.EventContext); ok {
		ctx.EntityID = service.ID
		ctx.NewData = service
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": service})
}

func (h *Handler) GetService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid service ID"})
		return
	}

	service, err := h.service.GetService(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": service})
}

func (h *Handler) ListServices(c *gin.Context) {
	filters := &model.ServiceFilters{
		SearchTerm: c.Query("search"),
	}

	if raw := c.Query("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid active filter"})
			return
		}
		filters.Active = &active
	}

	services, err := h.service.ListServices(c.Request.Context(), filters)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": services})
}

// UpdateService changes the catalog entry only. Prices already snapshotted
// into appointments keep their old values.
func (h *Handler) UpdateService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid service ID"})
		return
	}

	var req model.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	service, err := h.service.UpdateService(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	eventCtx, _ := c.Get("eventCtx")
	if ctx, ok := eventCtx.(*event.EventContext); ok {
		ctx.EntityID = service.ID
		ctx.NewData = service
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": service})
}

func (h *Handler) DeleteService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid service ID"})
		return
	}

	service, err := h.service.GetService(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	if err := h.service.DeleteService(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	eventCtx, _ := c.Get("eventCtx")
	if ctx, ok := eventCtx.(*event.EventContext); ok {
		ctx.EntityID = id
		ctx.OldData = service
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	services := r.Group("/services")
	{
		services.POST("", h.CreateService)
		services.GET("", h.ListServices)
		services.GET("/:id", h.GetService)
		services.PUT("/:id", h.UpdateService)
		services.DELETE("/:id", h.DeleteService)
	}
}

func (h *Handler) RegisterRoutesWithEvents(r *gin.RouterGroup, tracker *event.Tracker) {
	services := r.Group("/services")
	{
		services.POST("", tracker.TrackEvent("service", "create"), h.CreateService)
		services.PUT("/:id", tracker.TrackEvent("service", "update"), h.UpdateService)
		services.DELETE("/:id", tracker.TrackEvent("service", "delete"), h.DeleteService)
		services.GET("", h.ListServices)
		services.GET("/:id", h.GetService)
	}
}
