package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShiftStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    ShiftStatus
		to      ShiftStatus
		allowed bool
	}{
		{"scheduled to active", ShiftStatusScheduled, ShiftStatusActive, true},
		{"scheduled straight to completed", ShiftStatusScheduled, ShiftStatusCompleted, true},
		{"active to completed", ShiftStatusActive, ShiftStatusCompleted, true},
		{"active back to scheduled", ShiftStatusActive, ShiftStatusScheduled, false},
		{"completed is terminal", ShiftStatusCompleted, ShiftStatusActive, false},
		{"completed cannot reschedule", ShiftStatusCompleted, ShiftStatusScheduled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestShiftStatusValid(t *testing.T) {
	assert.True(t, ShiftStatusScheduled.Valid())
	assert.True(t, ShiftStatusActive.Valid())
	assert.True(t, ShiftStatusCompleted.Valid())
	assert.False(t, ShiftStatus("on_break").Valid())
	assert.False(t, ShiftStatus("").Valid())
}

func TestDateRangeContains(t *testing.T) {
	r := DateRange{Start: "2024-03-01", End: "2024-03-31"}

	assert.True(t, r.Contains("2024-03-01"))
	assert.True(t, r.Contains("2024-03-15"))
	assert.True(t, r.Contains("2024-03-31"))
	assert.False(t, r.Contains("2024-02-29"))
	assert.False(t, r.Contains("2024-04-01"))

	open := DateRange{}
	assert.True(t, open.Contains("1999-01-01"))

	from := DateRange{Start: "2024-03-01"}
	assert.False(t, from.Contains("2024-02-28"))
	assert.True(t, from.Contains("2025-01-01"))
}
