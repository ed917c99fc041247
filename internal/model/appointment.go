package model

import (
	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled  AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed  AppointmentStatus = "confirmed"
	AppointmentStatusInProgress AppointmentStatus = "in_progress"
	AppointmentStatusCompleted  AppointmentStatus = "completed"
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
)

// appointmentTransitions is the set of allowed status changes. Completed
// and cancelled are terminal.
var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusScheduled:  {AppointmentStatusConfirmed, AppointmentStatusCancelled},
	AppointmentStatusConfirmed:  {AppointmentStatusInProgress, AppointmentStatusCancelled},
	AppointmentStatusInProgress: {AppointmentStatusCompleted, AppointmentStatusCancelled},
	AppointmentStatusCompleted:  {},
	AppointmentStatusCancelled:  {},
}

// Valid reports whether s is a known appointment status.
func (s AppointmentStatus) Valid() bool {
	_, ok := appointmentTransitions[s]
	return ok
}

// CanTransitionTo reports whether the status change s -> next is allowed.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further status change is allowed from s.
func (s AppointmentStatus) Terminal() bool {
	return len(appointmentTransitions[s]) == 0
}

// Appointment represents a booked wash. TotalPrice is snapshotted from the
// selected services at creation and is what reports sum as revenue once the
// appointment completes.
type Appointment struct {
	Base
	ClientID   uuid.UUID         `json:"clientId" db:"client_id"`
	VehicleID  uuid.UUID         `json:"vehicleId" db:"vehicle_id"`
	UserID     *uuid.UUID        `json:"userId" db:"user_id"`
	Date       string            `json:"date" db:"date"`
	StartTime  string            `json:"startTime" db:"start_time"`
	EndTime    *string           `json:"endTime" db:"end_time"`
	Status     AppointmentStatus `json:"status" db:"status"`
	TotalPrice float64           `json:"totalPrice" db:"total_price"`
	Notes      string            `json:"notes,omitempty" db:"notes"`
}

// AppointmentService is one line item of an appointment: the service plus
// its price as it was when the appointment was booked.
type AppointmentService struct {
	ID            uuid.UUID `json:"id" db:"id"`
	AppointmentID uuid.UUID `json:"appointmentId" db:"appointment_id"`
	ServiceID     uuid.UUID `json:"serviceId" db:"service_id"`
	Price         float64   `json:"price" db:"price"`
}

// CreateAppointmentRequest represents appointment creation parameters
type CreateAppointmentRequest struct {
	ClientID   uuid.UUID   `json:"clientId" binding:"required"`
	VehicleID  uuid.UUID   `json:"vehicleId" binding:"required"`
	UserID     *uuid.UUID  `json:"userId"`
	Date       string      `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime  string      `json:"startTime" binding:"required,datetime=15:04"`
	ServiceIDs []uuid.UUID `json:"serviceIds" binding:"required,min=1"`
	Notes      string      `json:"notes"`
}

// UpdateAppointmentRequest represents appointment update parameters.
// Status changes go through UpdateAppointmentStatusRequest instead.
type UpdateAppointmentRequest struct {
	VehicleID *uuid.UUID `json:"vehicleId"`
	UserID    *uuid.UUID `json:"userId"`
	Date      *string    `json:"date" binding:"omitempty,datetime=2006-01-02"`
	StartTime *string    `json:"startTime" binding:"omitempty,datetime=15:04"`
	Notes     *string    `json:"notes"`
}

// UpdateAppointmentStatusRequest represents an appointment status change
type UpdateAppointmentStatusRequest struct {
	Status AppointmentStatus `json:"status" binding:"required"`
}

// AppointmentFilters represents appointment search parameters
type AppointmentFilters struct {
	ClientID  uuid.UUID         `json:"clientId" form:"clientId"`
	VehicleID uuid.UUID         `json:"vehicleId" form:"vehicleId"`
	UserID    uuid.UUID         `json:"userId" form:"userId"`
	Status    AppointmentStatus `json:"status" form:"status"`
	StartDate string            `json:"startDate" form:"startDate"`
	EndDate   string            `json:"endDate" form:"endDate"`
}
