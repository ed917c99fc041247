// Package report assembles business summaries from appointments and shifts.
//
// Revenue always comes from the snapshotted totals of completed appointments.
// Employee earnings always come from shift records. The two never mix: an
// employee report can show served appointments next to zero earnings when no
// shift was recorded for the period.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/washpoint/admin-api/internal/cache"
	"github.com/washpoint/admin-api/internal/model"
	"github.com/washpoint/admin-api/internal/repository"
	apperrors "github.com/washpoint/admin-api/pkg/errors"
	"github.com/washpoint/admin-api/pkg/metrics"
)

const dateLayout = "2006-01-02"

const (
	kindDaily    = "daily"
	kindWeekly   = "weekly"
	kindMonthly  = "monthly"
	kindEmployee = "employee"
)

type Service struct {
	appointmentRepo repository.AppointmentRepository
	shiftRepo       repository.ShiftRepository
	userRepo        repository.UserRepository
	cache           *cache.Store
	metrics         *metrics.Metrics
}

func NewService(
	appointmentRepo repository.AppointmentRepository,
	shiftRepo repository.ShiftRepository,
	userRepo repository.UserRepository,
	cacheStore *cache.Store,
	m *metrics.Metrics,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		shiftRepo:       shiftRepo,
		userRepo:        userRepo,
		cache:           cacheStore,
		metrics:         m,
	}
}

// DailyReport summarizes a single calendar day.
func (s *Service) DailyReport(ctx context.Context, date string) (*model.DailyReport, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("report:%s:%s", kindDaily, date)
	value, err := s.load(kindDaily, key, func() (interface{}, error) {
		totals, err := s.aggregate(ctx, day, day)
		if err != nil {
			return nil, err
		}
		return &model.DailyReport{
			Date:                  date,
			TotalAppointments:     totals.appointments,
			CompletedAppointments: totals.completed,
			TotalRevenue:          totals.revenue,
			Employees:             totals.employees,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*model.DailyReport), nil
}

// WeeklyReport summarizes the seven days starting at startDate.
func (s *Service) WeeklyReport(ctx context.Context, startDate string) (*model.WeeklyReport, error) {
	start, err := parseDate(startDate)
	if err != nil {
		return nil, err
	}
	end := start.AddDate(0, 0, 6)

	key := fmt.Sprintf("report:%s:%s", kindWeekly, startDate)
	value, err := s.load(kindWeekly, key, func() (interface{}, error) {
		totals, err := s.aggregate(ctx, start, end)
		if err != nil {
			return nil, err
		}
		return &model.WeeklyReport{
			StartDate:             startDate,
			EndDate:               end.Format(dateLayout),
			TotalAppointments:     totals.appointments,
			CompletedAppointments: totals.completed,
			TotalRevenue:          totals.revenue,
			Days:                  totals.days,
			Employees:             totals.employees,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*model.WeeklyReport), nil
}

// MonthlyReport summarizes one calendar month. Day rows cover the whole
// month, so February of a leap year yields 29 of them.
func (s *Service) MonthlyReport(ctx context.Context, month, year int) (*model.MonthlyReport, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.BadRequest(fmt.Sprintf("invalid month %d, expected 1-12", month), nil)
	}
	if year < 1 {
		return nil, apperrors.BadRequest(fmt.Sprintf("invalid year %d", year), nil)
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	key := fmt.Sprintf("report:%s:%04d-%02d", kindMonthly, year, month)
	value, err := s.load(kindMonthly, key, func() (interface{}, error) {
		totals, err := s.aggregate(ctx, start, end)
		if err != nil {
			return nil, err
		}
		return &model.MonthlyReport{
			Month:                 month,
			Year:                  year,
			TotalAppointments:     totals.appointments,
			CompletedAppointments: totals.completed,
			TotalRevenue:          totals.revenue,
			Days:                  totals.days,
			Employees:             totals.employees,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*model.MonthlyReport), nil
}

// EmployeeReport summarizes one employee over an explicit date range.
// Earnings sum the employee's shift earnings; appointments they served
// contribute counts only.
func (s *Service) EmployeeReport(ctx context.Context, userID uuid.UUID, startDate, endDate string) (*model.EmployeeReport, error) {
	start, err := parseDate(startDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(endDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, apperrors.BadRequest("endDate is before startDate", nil)
	}

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("report:%s:%s:%s:%s", kindEmployee, userID, startDate, endDate)
	value, err := s.load(kindEmployee, key, func() (interface{}, error) {
		return s.buildEmployeeReport(ctx, user, start, end)
	})
	if err != nil {
		return nil, err
	}
	return value.(*model.EmployeeReport), nil
}

// load runs build through the cache when one is wired, counting and timing
// only actual builds so cache hits stay invisible to the metrics.
func (s *Service) load(kind, key string, build func() (interface{}, error)) (interface{}, error) {
	timed := func() (interface{}, error) {
		started := time.Now()
		value, err := build()
		if err != nil {
			return nil, err
		}
		if s.metrics != nil {
			s.metrics.ReportsGenerated.WithLabelValues(kind).Inc()
			s.metrics.ReportLatency.WithLabelValues(kind).Observe(time.Since(started).Seconds())
		}
		return value, nil
	}

	if s.cache == nil {
		return timed()
	}
	return s.cache.GetOrLoad(key, timed)
}

func parseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, apperrors.BadRequest(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", value), err)
	}
	return parsed, nil
}
