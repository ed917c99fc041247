package report

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/washpoint/admin-api/internal/handler"
	"github.com/washpoint/admin-api/internal/service/report"
	"github.com/washpoint/admin-api/pkg/httputil"
)

type Handler struct {
	service *report.Service
}

func NewHandler(service *report.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) DailyReport(c *gin.Context) {
	date, ok := httputil.RequiredQuery(c, "date")
	if !ok {
		return
	}

	report, err := h.service.DailyReport(c.Request.Context(), date)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": report})
}

func (h *Handler) WeeklyReport(c *gin.Context) {
	startDate, ok := httputil.RequiredQuery(c, "startDate")
	if !ok {
		return
	}

	report, err := h.service.WeeklyReport(c.Request.Context(), startDate)
	if err != nil {
		handler.Error(c, err)
		return
	}

	if c.Query("format") == "csv" {
		h.writeCSV(c, fmt.Sprintf("weekly_report_%s.csv", startDate), &report.Days)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": report})
}

func (h *Handler) MonthlyReport(c *gin.Context) {
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "month query parameter is required"})
		return
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "year query parameter is required"})
		return
	}

	report, err := h.service.MonthlyReport(c.Request.Context(), month, year)
	if err != nil {
		handler.Error(c, err)
		return
	}

	if c.Query("format") == "csv" {
		h.writeCSV(c, fmt.Sprintf("monthly_report_%04d-%02d.csv", year, month), &report.Days)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": report})
}

func (h *Handler) EmployeeReport(c *gin.Context) {
	id, ok := httputil.UUIDParam(c, "id")
	if !ok {
		return
	}

	startDate, ok := httputil.RequiredQuery(c, "startDate")
	if !ok {
		return
	}
	endDate, ok := httputil.RequiredQuery(c, "endDate")
	if !ok {
		return
	}

	report, err := h.service.EmployeeReport(c.Request.Context(), id, startDate, endDate)
	if err != nil {
		handler.Error(c, err)
		return
	}

	if c.Query("format") == "csv" {
		h.writeCSV(c, fmt.Sprintf("employee_report_%s_%s.csv", startDate, endDate), &report.Days)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": report})
}

func (h *Handler) writeCSV(c *gin.Context, filename string, rows interface{}) {
	if err := httputil.WriteCSV(c, filename, rows); err != nil {
		handler.Error(c, err)
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	reports := r.Group("/reports")
	{
		reports.GET("/daily", h.DailyReport)
		reports.GET("/weekly", h.WeeklyReport)
		reports.GET("/monthly", h.MonthlyReport)
		reports.GET("/employee/:id", h.EmployeeReport)
	}
}
