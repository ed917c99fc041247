package model

import "github.com/google/uuid"

type ShiftStatus string

const (
	ShiftStatusScheduled ShiftStatus = "scheduled"
	ShiftStatusActive    ShiftStatus = "active"
	ShiftStatusCompleted ShiftStatus = "completed"
)

// shiftTransitions is the set of allowed status changes. Completed is
// terminal.
var shiftTransitions = map[ShiftStatus][]ShiftStatus{
	ShiftStatusScheduled: {ShiftStatusActive, ShiftStatusCompleted},
	ShiftStatusActive:    {ShiftStatusCompleted},
	ShiftStatusCompleted: {},
}

// Valid reports whether s is a known shift status.
func (s ShiftStatus) Valid() bool {
	_, ok := shiftTransitions[s]
	return ok
}

// CanTransitionTo reports whether the status change s -> next is allowed.
func (s ShiftStatus) CanTransitionTo(next ShiftStatus) bool {
	for _, allowed := range shiftTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Shift represents a work shift of an employee. Earnings are what the
// employee made on the shift and are the sole source of payroll figures
// in reports.
type Shift struct {
	Base
	UserID    uuid.UUID   `json:"userId" db:"user_id"`
	Date      string      `json:"date" db:"date"`
	StartTime string      `json:"startTime" db:"start_time"`
	EndTime   *string     `json:"endTime" db:"end_time"`
	Status    ShiftStatus `json:"status" db:"status"`
	Earnings  float64     `json:"earnings" db:"earnings"`
}

// CreateShiftRequest represents shift creation parameters
type CreateShiftRequest struct {
	UserID    uuid.UUID `json:"userId" binding:"required"`
	Date      string    `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime string    `json:"startTime" binding:"required,datetime=15:04"`
	EndTime   *string   `json:"endTime" binding:"omitempty,datetime=15:04"`
	Earnings  float64   `json:"earnings" binding:"omitempty,gte=0"`
}

// UpdateShiftRequest represents shift update parameters
type UpdateShiftRequest struct {
	Date      *string  `json:"date" binding:"omitempty,datetime=2006-01-02"`
	StartTime *string  `json:"startTime" binding:"omitempty,datetime=15:04"`
	EndTime   *string  `json:"endTime" binding:"omitempty,datetime=15:04"`
	Earnings  *float64 `json:"earnings" binding:"omitempty,gte=0"`
}

// UpdateShiftStatusRequest represents a shift status change
type UpdateShiftStatusRequest struct {
	Status ShiftStatus `json:"status" binding:"required"`
}

// ShiftFilters represents shift search parameters
type ShiftFilters struct {
	UserID    uuid.UUID   `json:"userId" form:"userId"`
	Status    ShiftStatus `json:"status" form:"status"`
	StartDate string      `json:"startDate" form:"startDate"`
	EndDate   string      `json:"endDate" form:"endDate"`
}
