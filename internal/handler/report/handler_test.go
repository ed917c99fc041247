package report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/washpoint/admin-api/internal/cache"
	"github.com/washpoint/admin-api/internal/model"
	"github.com/washpoint/admin-api/internal/repository"
	"github.com/washpoint/admin-api/internal/repository/bolt"
	reportsvc "github.com/washpoint/admin-api/internal/service/report"
)

type fixture struct {
	router       *gin.Engine
	appointments repository.AppointmentRepository
	shifts       repository.ShiftRepository
	users        repository.UserRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := bolt.Open(filepath.Join(t.TempDir(), "reports.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	appointments := bolt.NewAppointmentRepository(store)
	shifts := bolt.NewShiftRepository(store)
	users := bolt.NewUserRepository(store)

	svc := reportsvc.NewService(appointments, shifts, users, cache.NewStore(cache.Config{}, nil), nil)

	router := gin.New()
	NewHandler(svc).RegisterRoutes(router.Group("/api"))

	return &fixture{
		router:       router,
		appointments: appointments,
		shifts:       shifts,
		users:        users,
	}
}

func (f *fixture) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func (f *fixture) seedCompleted(t *testing.T, date string, price float64) {
	t.Helper()
	appt := &model.Appointment{
		ClientID:   uuid.New(),
		VehicleID:  uuid.New(),
		Date:       date,
		StartTime:  "10:00",
		Status:     model.AppointmentStatusCompleted,
		TotalPrice: price,
	}
	appt.ID = uuid.New()
	require.NoError(t, f.appointments.Create(context.Background(), appt, nil))
}

func TestDailyReportEndpoint(t *testing.T) {
	f := newFixture(t)
	f.seedCompleted(t, "2024-01-01", 50)

	w := f.get(t, "/api/reports/daily?date=2024-01-01")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status string            `json:"status"`
		Data   model.DailyReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, "2024-01-01", body.Data.Date)
	assert.Equal(t, 1, body.Data.TotalAppointments)
	assert.Equal(t, 50.0, body.Data.TotalRevenue)
}

func TestDailyReportMissingDate(t *testing.T) {
	f := newFixture(t)

	w := f.get(t, "/api/reports/daily")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"status":"error","message":"date query parameter is required"}`, w.Body.String())
}

func TestDailyReportRejectsBadDate(t *testing.T) {
	f := newFixture(t)

	w := f.get(t, "/api/reports/daily?date=January")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid date")
}

func TestWeeklyReportCSVDownload(t *testing.T) {
	f := newFixture(t)
	f.seedCompleted(t, "2024-01-02", 80)

	w := f.get(t, "/api/reports/weekly?startDate=2024-01-01&format=csv")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "weekly_report_2024-01-01.csv")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "date,total_appointments,completed_appointments,total_revenue", lines[0])
	assert.Equal(t, "2024-01-02,1,1,80", lines[2])
}

func TestMonthlyReportEndpoint(t *testing.T) {
	f := newFixture(t)

	w := f.get(t, "/api/reports/monthly?month=2&year=2024")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data model.MonthlyReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data.Days, 29)

	w = f.get(t, "/api/reports/monthly?month=13&year=2024")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.get(t, "/api/reports/monthly?year=2024")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "month query parameter is required")
}

func TestEmployeeReportEndpoint(t *testing.T) {
	f := newFixture(t)

	employee := &model.User{Name: "Anna", Surname: "Koleva", Email: "anna@wash.test", Role: model.UserRoleEmployee}
	employee.ID = uuid.New()
	require.NoError(t, f.users.Create(context.Background(), employee))

	shift := &model.Shift{UserID: employee.ID, Date: "2024-01-01", StartTime: "08:00", Status: model.ShiftStatusCompleted, Earnings: 110}
	shift.ID = uuid.New()
	require.NoError(t, f.shifts.Create(context.Background(), shift))

	w := f.get(t, "/api/reports/employee/"+employee.ID.String()+"?startDate=2024-01-01&endDate=2024-01-02")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data model.EmployeeReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Anna Koleva", body.Data.Name)
	assert.Equal(t, 110.0, body.Data.Earnings)
	assert.Len(t, body.Data.Days, 2)

	w = f.get(t, "/api/reports/employee/"+uuid.NewString()+"?startDate=2024-01-01&endDate=2024-01-02")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.get(t, "/api/reports/employee/not-a-uuid?startDate=2024-01-01&endDate=2024-01-02")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid id")
}
