package model

import "github.com/google/uuid"

// DayTotals aggregates one calendar day of business.
// TotalRevenue sums the totalPrice of completed appointments only;
// cancelled and pending ones count toward TotalAppointments but earn nothing.
type DayTotals struct {
	Date                  string  `json:"date" csv:"date"`
	TotalAppointments     int     `json:"totalAppointments" csv:"total_appointments"`
	CompletedAppointments int     `json:"completedAppointments" csv:"completed_appointments"`
	TotalRevenue          float64 `json:"totalRevenue" csv:"total_revenue"`
}

// EmployeeTotals aggregates one employee over a report period.
// Earnings come from shift records, never from appointment prices.
type EmployeeTotals struct {
	UserID                uuid.UUID `json:"userId" csv:"user_id"`
	Name                  string    `json:"name" csv:"name"`
	TotalAppointments     int       `json:"totalAppointments" csv:"total_appointments"`
	CompletedAppointments int       `json:"completedAppointments" csv:"completed_appointments"`
	Earnings              float64   `json:"earnings" csv:"earnings"`
}

// DailyReport is the business summary of a single day.
type DailyReport struct {
	Date                  string           `json:"date"`
	TotalAppointments     int              `json:"totalAppointments"`
	CompletedAppointments int              `json:"completedAppointments"`
	TotalRevenue          float64          `json:"totalRevenue"`
	Employees             []EmployeeTotals `json:"employees"`
}

// WeeklyReport covers the seven days starting at StartDate.
type WeeklyReport struct {
	StartDate             string           `json:"startDate"`
	EndDate               string           `json:"endDate"`
	TotalAppointments     int              `json:"totalAppointments"`
	CompletedAppointments int              `json:"completedAppointments"`
	TotalRevenue          float64          `json:"totalRevenue"`
	Days                  []DayTotals      `json:"days"`
	Employees             []EmployeeTotals `json:"employees"`
}

// MonthlyReport covers one calendar month.
type MonthlyReport struct {
	Month                 int              `json:"month"`
	Year                  int              `json:"year"`
	TotalAppointments     int              `json:"totalAppointments"`
	CompletedAppointments int              `json:"completedAppointments"`
	TotalRevenue          float64          `json:"totalRevenue"`
	Days                  []DayTotals      `json:"days"`
	Employees             []EmployeeTotals `json:"employees"`
}

// EmployeeDay is one day of an employee report. Earnings are the employee's
// shift earnings on that day, zero when no shift was worked.
type EmployeeDay struct {
	Date                  string  `json:"date" csv:"date"`
	TotalAppointments     int     `json:"totalAppointments" csv:"total_appointments"`
	CompletedAppointments int     `json:"completedAppointments" csv:"completed_appointments"`
	Earnings              float64 `json:"earnings" csv:"earnings"`
}

// EmployeeReport covers one employee over an explicit date range.
type EmployeeReport struct {
	UserID                uuid.UUID     `json:"userId"`
	Name                  string        `json:"name"`
	StartDate             string        `json:"startDate"`
	EndDate               string        `json:"endDate"`
	TotalAppointments     int           `json:"totalAppointments"`
	CompletedAppointments int           `json:"completedAppointments"`
	Earnings              float64       `json:"earnings"`
	Days                  []EmployeeDay `json:"days"`
}
