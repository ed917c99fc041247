package model

import "github.com/google/uuid"

// Client represents a customer of the wash
type Client struct {
	Base
	Name    string `json:"name" db:"name"`
	Surname string `json:"surname" db:"surname"`
	Phone   string `json:"phone" db:"phone"`
	Email   string `json:"email" db:"email"`
}

// CreateClientRequest represents client creation parameters
type CreateClientRequest struct {
	Name    string `json:"name" binding:"required"`
	Surname string `json:"surname"`
	Phone   string `json:"phone" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
}

// UpdateClientRequest represents client update parameters
type UpdateClientRequest struct {
	Name    *string `json:"name"`
	Surname *string `json:"surname"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" binding:"omitempty,email"`
}

// ClientFilters represents client search parameters
type ClientFilters struct {
	SearchTerm string    `json:"search" form:"search"`
	Phone      string    `json:"phone" form:"phone"`
	VehicleID  uuid.UUID `json:"vehicleId" form:"vehicleId"`
}
