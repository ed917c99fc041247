package report

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/washpoint/admin-api/internal/cache"
	"github.com/washpoint/admin-api/internal/model"
	"github.com/washpoint/admin-api/internal/repository"
	"github.com/washpoint/admin-api/internal/repository/bolt"
	apperrors "github.com/washpoint/admin-api/pkg/errors"
)

type fixture struct {
	svc          *Service
	users        repository.UserRepository
	appointments repository.AppointmentRepository
	shifts       repository.ShiftRepository
}

func newFixture(t *testing.T, cacheStore *cache.Store) *fixture {
	t.Helper()

	store, err := bolt.Open(filepath.Join(t.TempDir(), "reports.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	users := bolt.NewUserRepository(store)
	appointments := bolt.NewAppointmentRepository(store)
	shifts := bolt.NewShiftRepository(store)

	return &fixture{
		svc:          NewService(appointments, shifts, users, cacheStore, nil),
		users:        users,
		appointments: appointments,
		shifts:       shifts,
	}
}

func (f *fixture) seedUser(t *testing.T, name, surname string) *model.User {
	t.Helper()
	user := &model.User{Name: name, Surname: surname, Email: name + "@wash.test", Role: model.UserRoleEmployee}
	user.ID = uuid.New()
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

func (f *fixture) seedAppointment(t *testing.T, date string, status model.AppointmentStatus, price float64, userID *uuid.UUID) *model.Appointment {
	t.Helper()
	appt := &model.Appointment{
		ClientID:   uuid.New(),
		VehicleID:  uuid.New(),
		UserID:     userID,
		Date:       date,
		StartTime:  "10:00",
		Status:     status,
		TotalPrice: price,
	}
	appt.ID = uuid.New()
	require.NoError(t, f.appointments.Create(context.Background(), appt, nil))
	return appt
}

func (f *fixture) seedShift(t *testing.T, userID uuid.UUID, date string, earnings float64) *model.Shift {
	t.Helper()
	shift := &model.Shift{
		UserID:    userID,
		Date:      date,
		StartTime: "08:00",
		Status:    model.ShiftStatusCompleted,
		Earnings:  earnings,
	}
	shift.ID = uuid.New()
	require.NoError(t, f.shifts.Create(context.Background(), shift))
	return shift
}

func TestDailyReportCountsAndRevenue(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.seedAppointment(t, "2024-03-15", model.AppointmentStatusCompleted, 100, nil)
	f.seedAppointment(t, "2024-03-15", model.AppointmentStatusCompleted, 50.5, nil)
	f.seedAppointment(t, "2024-03-15", model.AppointmentStatusCancelled, 25, nil)
	f.seedAppointment(t, "2024-03-15", model.AppointmentStatusScheduled, 30, nil)
	// A neighbouring day stays out of the report.
	f.seedAppointment(t, "2024-03-16", model.AppointmentStatusCompleted, 999, nil)

	report, err := f.svc.DailyReport(ctx, "2024-03-15")
	require.NoError(t, err)

	assert.Equal(t, "2024-03-15", report.Date)
	assert.Equal(t, 4, report.TotalAppointments, "cancelled and pending still count")
	assert.Equal(t, 2, report.CompletedAppointments)
	assert.InDelta(t, 150.5, report.TotalRevenue, 0.001, "only completed appointments earn")
	assert.LessOrEqual(t, report.CompletedAppointments, report.TotalAppointments)
}

func TestDailyReportInvalidDate(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.svc.DailyReport(context.Background(), "15-03-2024")
	require.Error(t, err)
	appErr := apperrors.FromError(err)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
}

func TestWeeklyReportCoversSevenDays(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.seedAppointment(t, "2024-01-01", model.AppointmentStatusCompleted, 40, nil)
	f.seedAppointment(t, "2024-01-04", model.AppointmentStatusCompleted, 60, nil)
	f.seedAppointment(t, "2024-01-07", model.AppointmentStatusCancelled, 80, nil)
	// Day eight is outside the window.
	f.seedAppointment(t, "2024-01-08", model.AppointmentStatusCompleted, 500, nil)

	report, err := f.svc.WeeklyReport(ctx, "2024-01-01")
	require.NoError(t, err)

	require.Len(t, report.Days, 7)
	assert.Equal(t, "2024-01-01", report.Days[0].Date)
	assert.Equal(t, "2024-01-07", report.Days[6].Date)
	assert.Equal(t, "2024-01-07", report.EndDate)

	assert.Equal(t, 3, report.TotalAppointments)
	assert.Equal(t, 2, report.CompletedAppointments)
	assert.InDelta(t, 100, report.TotalRevenue, 0.001)

	var daySum float64
	for _, day := range report.Days {
		daySum += day.TotalRevenue
	}
	assert.InDelta(t, report.TotalRevenue, daySum, 0.001, "per-day revenue sums to the range total")
}

func TestWeeklyReportAcrossMonthBoundary(t *testing.T) {
	f := newFixture(t, nil)

	report, err := f.svc.WeeklyReport(context.Background(), "2024-01-29")
	require.NoError(t, err)

	require.Len(t, report.Days, 7)
	assert.Equal(t, "2024-01-29", report.Days[0].Date)
	assert.Equal(t, "2024-02-04", report.Days[6].Date)
}

func TestMonthlyReportDayRows(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	leap, err := f.svc.MonthlyReport(ctx, 2, 2024)
	require.NoError(t, err)
	assert.Len(t, leap.Days, 29, "february 2024 is a leap month")
	assert.Equal(t, "2024-02-01", leap.Days[0].Date)
	assert.Equal(t, "2024-02-29", leap.Days[28].Date)

	plain, err := f.svc.MonthlyReport(ctx, 2, 2023)
	require.NoError(t, err)
	assert.Len(t, plain.Days, 28)

	full, err := f.svc.MonthlyReport(ctx, 1, 2024)
	require.NoError(t, err)
	assert.Len(t, full.Days, 31)
}

func TestMonthlyReportRejectsBadMonth(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.svc.MonthlyReport(context.Background(), 13, 2024)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrBadRequest, apperrors.FromError(err).Code)

	_, err = f.svc.MonthlyReport(context.Background(), 0, 2024)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrBadRequest, apperrors.FromError(err).Code)
}

func TestEmployeeRowsSeparateEarningsFromRevenue(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	anna := f.seedUser(t, "Anna", "Berg")
	carl := f.seedUser(t, "Carl", "Dahl")

	f.seedAppointment(t, "2024-03-15", model.AppointmentStatusCompleted, 100, &anna.ID)
	f.seedAppointment(t, "2024-03-15", model.AppointmentStatusCancelled, 70, &anna.ID)
	f.seedShift(t, anna.ID, "2024-03-15", 120)
	f.seedShift(t, carl.ID, "2024-03-15", 80)

	report, err := f.svc.DailyReport(ctx, "2024-03-15")
	require.NoError(t, err)

	require.Len(t, report.Employees, 2)
	assert.Equal(t, "Anna Berg", report.Employees[0].Name)
	assert.Equal(t, 2, report.Employees[0].TotalAppointments)
	assert.Equal(t, 1, report.Employees[0].CompletedAppointments)
	assert.InDelta(t, 120, report.Employees[0].Earnings, 0.001, "earnings come from the shift, not appointment prices")

	assert.Equal(t, "Carl Dahl", report.Employees[1].Name)
	assert.Equal(t, 0, report.Employees[1].TotalAppointments)
	assert.InDelta(t, 80, report.Employees[1].Earnings, 0.001)

	assert.InDelta(t, 100, report.TotalRevenue, 0.001)
}

func TestEmployeeReportWithoutShifts(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	anna := f.seedUser(t, "Anna", "Berg")
	f.seedAppointment(t, "2024-03-14", model.AppointmentStatusCompleted, 100, &anna.ID)
	f.seedAppointment(t, "2024-03-15", model.AppointmentStatusInProgress, 50, &anna.ID)

	report, err := f.svc.EmployeeReport(ctx, anna.ID, "2024-03-14", "2024-03-16")
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalAppointments)
	assert.Equal(t, 1, report.CompletedAppointments)
	assert.Zero(t, report.Earnings, "no shifts means zero earnings, not an error")

	require.Len(t, report.Days, 3)
	assert.Equal(t, 1, report.Days[0].TotalAppointments)
	assert.Zero(t, report.Days[0].Earnings)
}

func TestEmployeeReportPerDayEarnings(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	anna := f.seedUser(t, "Anna", "Berg")
	f.seedShift(t, anna.ID, "2024-03-14", 110)
	f.seedShift(t, anna.ID, "2024-03-16", 90)

	report, err := f.svc.EmployeeReport(ctx, anna.ID, "2024-03-14", "2024-03-16")
	require.NoError(t, err)

	assert.InDelta(t, 200, report.Earnings, 0.001)
	require.Len(t, report.Days, 3)
	assert.InDelta(t, 110, report.Days[0].Earnings, 0.001)
	assert.Zero(t, report.Days[1].Earnings)
	assert.InDelta(t, 90, report.Days[2].Earnings, 0.001)
}

func TestEmployeeReportUnknownUser(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.svc.EmployeeReport(context.Background(), uuid.New(), "2024-03-14", "2024-03-16")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestEmployeeReportInvertedRange(t *testing.T) {
	f := newFixture(t, nil)
	anna := f.seedUser(t, "Anna", "Berg")

	_, err := f.svc.EmployeeReport(context.Background(), anna.ID, "2024-03-16", "2024-03-14")
	require.Error(t, err)
	appErr := apperrors.FromError(err)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
	assert.Contains(t, appErr.Message, "endDate is before startDate")
}

func TestReportsAreCachedUntilInvalidated(t *testing.T) {
	cacheStore := cache.NewStore(cache.Config{}, nil)
	f := newFixture(t, cacheStore)
	ctx := context.Background()

	f.seedAppointment(t, "2024-03-15", model.AppointmentStatusCompleted, 100, nil)

	first, err := f.svc.DailyReport(ctx, "2024-03-15")
	require.NoError(t, err)
	assert.InDelta(t, 100, first.TotalRevenue, 0.001)

	// New data does not show up while the cached report lives.
	f.seedAppointment(t, "2024-03-15", model.AppointmentStatusCompleted, 50, nil)

	cached, err := f.svc.DailyReport(ctx, "2024-03-15")
	require.NoError(t, err)
	assert.InDelta(t, 100, cached.TotalRevenue, 0.001)

	// Invalidation is what the broker listener does on entity changes.
	removed := cacheStore.DeletePrefix("report:")
	assert.Equal(t, 1, removed)

	fresh, err := f.svc.DailyReport(ctx, "2024-03-15")
	require.NoError(t, err)
	assert.InDelta(t, 150, fresh.TotalRevenue, 0.001)
}
