package model

import (
	"time"

	"github.com/google/uuid"
)

// Base contains common fields for all models
type Base struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Pagination represents common pagination parameters
type Pagination struct {
	Page     int `json:"page" form:"page"`
	PageSize int `json:"pageSize" form:"pageSize"`
}

// DateRange is an inclusive calendar-day window. Bounds are YYYY-MM-DD
// strings, so lexicographic comparison is date comparison.
type DateRange struct {
	Start string `json:"startDate" form:"startDate"`
	End   string `json:"endDate" form:"endDate"`
}

// Contains reports whether the given YYYY-MM-DD date falls inside the range.
// Empty bounds are open-ended.
func (r DateRange) Contains(date string) bool {
	if r.Start != "" && date < r.Start {
		return false
	}
	if r.End != "" && date > r.End {
		return false
	}
	return true
}

// JSONMap represents a generic JSON object
type JSONMap map[string]interface{}
