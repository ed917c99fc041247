package model

import "github.com/google/uuid"

// Vehicle represents a client's car
type Vehicle struct {
	Base
	ClientID     uuid.UUID `json:"clientId" db:"client_id"`
	Make         string    `json:"make" db:"make"`
	Model        string    `json:"model" db:"model"`
	Year         int       `json:"year" db:"year"`
	Color        string    `json:"color" db:"color"`
	LicensePlate string    `json:"licensePlate" db:"license_plate"`
}

// CreateVehicleRequest represents vehicle creation parameters
type CreateVehicleRequest struct {
	ClientID     uuid.UUID `json:"clientId" binding:"required"`
	Make         string    `json:"make" binding:"required"`
	Model        string    `json:"model" binding:"required"`
	Year         int       `json:"year" binding:"omitempty,gte=1900"`
	Color        string    `json:"color"`
	LicensePlate string    `json:"licensePlate" binding:"required"`
}

// UpdateVehicleRequest represents vehicle update parameters
type UpdateVehicleRequest struct {
	Make         *string `json:"make"`
	Model        *string `json:"model"`
	Year         *int    `json:"year" binding:"omitempty,gte=1900"`
	Color        *string `json:"color"`
	LicensePlate *string `json:"licensePlate"`
}

// VehicleFilters represents vehicle search parameters
type VehicleFilters struct {
	ClientID     uuid.UUID `json:"clientId" form:"clientId"`
	LicensePlate string    `json:"licensePlate" form:"licensePlate"`
	SearchTerm   string    `json:"search" form:"search"`
}
