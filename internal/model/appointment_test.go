package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{"scheduled to confirmed", AppointmentStatusScheduled, AppointmentStatusConfirmed, true},
		{"scheduled to cancelled", AppointmentStatusScheduled, AppointmentStatusCancelled, true},
		{"scheduled to in_progress skips confirmation", AppointmentStatusScheduled, AppointmentStatusInProgress, false},
		{"scheduled to completed skips the middle", AppointmentStatusScheduled, AppointmentStatusCompleted, false},
		{"confirmed to in_progress", AppointmentStatusConfirmed, AppointmentStatusInProgress, true},
		{"confirmed to cancelled", AppointmentStatusConfirmed, AppointmentStatusCancelled, true},
		{"confirmed back to scheduled", AppointmentStatusConfirmed, AppointmentStatusScheduled, false},
		{"in_progress to completed", AppointmentStatusInProgress, AppointmentStatusCompleted, true},
		{"in_progress to cancelled", AppointmentStatusInProgress, AppointmentStatusCancelled, true},
		{"completed is terminal", AppointmentStatusCompleted, AppointmentStatusCancelled, false},
		{"cancelled is terminal", AppointmentStatusCancelled, AppointmentStatusScheduled, false},
		{"cancelled cannot complete", AppointmentStatusCancelled, AppointmentStatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestAppointmentStatusValid(t *testing.T) {
	for _, s := range []AppointmentStatus{
		AppointmentStatusScheduled,
		AppointmentStatusConfirmed,
		AppointmentStatusInProgress,
		AppointmentStatusCompleted,
		AppointmentStatusCancelled,
	} {
		assert.True(t, s.Valid(), "expected %s to be valid", s)
	}

	assert.False(t, AppointmentStatus("done").Valid())
	assert.False(t, AppointmentStatus("").Valid())
}

func TestAppointmentStatusTerminal(t *testing.T) {
	assert.True(t, AppointmentStatusCompleted.Terminal())
	assert.True(t, AppointmentStatusCancelled.Terminal())
	assert.False(t, AppointmentStatusScheduled.Terminal())
	assert.False(t, AppointmentStatusConfirmed.Terminal())
	assert.False(t, AppointmentStatusInProgress.Terminal())
}
