package model

import "github.com/google/uuid"

// Notification type constants
const (
	NotificationTypeAppointmentAssigned = "appointment_assigned"
	NotificationTypeAppointmentStatus   = "appointment_status"
	NotificationTypeShiftAssigned       = "shift_assigned"
	NotificationTypeSystem              = "system"
)

// Notification is an inbox entry for a user. Email delivery is best effort
// and never reflected back onto the row.
type Notification struct {
	Base
	UserID  uuid.UUID `json:"userId" db:"user_id"`
	Type    string    `json:"type" db:"type"`
	Message string    `json:"message" db:"message"`
	Read    bool      `json:"read" db:"read"`
}

// CreateNotificationRequest represents notification creation parameters
type CreateNotificationRequest struct {
	UserID  uuid.UUID `json:"userId" binding:"required"`
	Type    string    `json:"type" binding:"required"`
	Message string    `json:"message" binding:"required"`
}

// NotificationFilters represents inbox search parameters
type NotificationFilters struct {
	UserID uuid.UUID `json:"userId" form:"userId"`
	Unread *bool     `json:"unread" form:"unread"`
}
