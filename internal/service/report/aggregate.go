package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/washpoint/admin-api/internal/model"
)

// rangeTotals is the rolled-up view of one date range before it is shaped
// into a report.
type rangeTotals struct {
	appointments int
	completed    int
	revenue      float64
	days         []model.DayTotals
	employees    []model.EmployeeTotals
}

// aggregate rolls appointments and shifts between start and end (inclusive)
// into per-day and per-employee totals. Every day of the range gets a row,
// busy or not. An employee appears once they have an assigned appointment or
// a shift inside the range.
func (s *Service) aggregate(ctx context.Context, start, end time.Time) (*rangeTotals, error) {
	startDate := start.Format(dateLayout)
	endDate := end.Format(dateLayout)

	appointments, err := s.appointmentRepo.List(ctx, &model.AppointmentFilters{
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	shifts, err := s.shiftRepo.List(ctx, &model.ShiftFilters{
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	names, err := s.userNames(ctx)
	if err != nil {
		return nil, err
	}

	dayIndex := make(map[string]*model.DayTotals)
	days := make([]model.DayTotals, 0, int(end.Sub(start).Hours()/24)+1)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		days = append(days, model.DayTotals{Date: day.Format(dateLayout)})
	}
	for i := range days {
		dayIndex[days[i].Date] = &days[i]
	}

	employeeIndex := make(map[uuid.UUID]*model.EmployeeTotals)
	employeeRow := func(userID uuid.UUID) *model.EmployeeTotals {
		if row, ok := employeeIndex[userID]; ok {
			return row
		}
		row := &model.EmployeeTotals{UserID: userID, Name: names[userID]}
		employeeIndex[userID] = row
		return row
	}

	totals := &rangeTotals{}
	for _, appt := range appointments {
		day, ok := dayIndex[appt.Date]
		if !ok {
			continue
		}

		totals.appointments++
		day.TotalAppointments++

		completed := appt.Status == model.AppointmentStatusCompleted
		if completed {
			totals.completed++
			totals.revenue += appt.TotalPrice
			day.CompletedAppointments++
			day.TotalRevenue += appt.TotalPrice
		}

		if appt.UserID != nil {
			row := employeeRow(*appt.UserID)
			row.TotalAppointments++
			if completed {
				row.CompletedAppointments++
			}
		}
	}

	for _, shift := range shifts {
		if _, ok := dayIndex[shift.Date]; !ok {
			continue
		}
		employeeRow(shift.UserID).Earnings += shift.Earnings
	}

	totals.days = days
	totals.employees = make([]model.EmployeeTotals, 0, len(employeeIndex))
	for _, row := range employeeIndex {
		totals.employees = append(totals.employees, *row)
	}
	sort.Slice(totals.employees, func(i, j int) bool {
		if totals.employees[i].Name != totals.employees[j].Name {
			return totals.employees[i].Name < totals.employees[j].Name
		}
		return totals.employees[i].UserID.String() < totals.employees[j].UserID.String()
	})

	return totals, nil
}

// buildEmployeeReport rolls one employee's appointments and shifts between
// start and end into a per-day breakdown.
func (s *Service) buildEmployeeReport(ctx context.Context, user *model.User, start, end time.Time) (*model.EmployeeReport, error) {
	startDate := start.Format(dateLayout)
	endDate := end.Format(dateLayout)

	appointments, err := s.appointmentRepo.List(ctx, &model.AppointmentFilters{
		UserID:    user.ID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	shifts, err := s.shiftRepo.List(ctx, &model.ShiftFilters{
		UserID:    user.ID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	dayIndex := make(map[string]*model.EmployeeDay)
	days := make([]model.EmployeeDay, 0, int(end.Sub(start).Hours()/24)+1)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		days = append(days, model.EmployeeDay{Date: day.Format(dateLayout)})
	}
	for i := range days {
		dayIndex[days[i].Date] = &days[i]
	}

	report := &model.EmployeeReport{
		UserID:    user.ID,
		Name:      user.FullName(),
		StartDate: startDate,
		EndDate:   endDate,
	}

	for _, appt := range appointments {
		day, ok := dayIndex[appt.Date]
		if !ok {
			continue
		}
		report.TotalAppointments++
		day.TotalAppointments++
		if appt.Status == model.AppointmentStatusCompleted {
			report.CompletedAppointments++
			day.CompletedAppointments++
		}
	}

	for _, shift := range shifts {
		day, ok := dayIndex[shift.Date]
		if !ok {
			continue
		}
		report.Earnings += shift.Earnings
		day.Earnings += shift.Earnings
	}

	report.Days = days
	return report, nil
}

// userNames maps user IDs to display names for employee rows.
func (s *Service) userNames(ctx context.Context) (map[uuid.UUID]string, error) {
	users, err := s.userRepo.List(ctx, &model.UserFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	names := make(map[uuid.UUID]string, len(users))
	for _, user := range users {
		names[user.ID] = user.FullName()
	}
	return names, nil
}
