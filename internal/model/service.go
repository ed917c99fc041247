package model

// Service represents a wash service offered in the catalog
type Service struct {
	Base
	Name            string  `json:"name" db:"name"`
	Description     string  `json:"description" db:"description"`
	Price           float64 `json:"price" db:"price"`
	DurationMinutes int     `json:"durationMinutes" db:"duration_minutes"`
	Active          bool    `json:"active" db:"active"`
}

// CreateServiceRequest represents service creation parameters
type CreateServiceRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	Price           float64 `json:"price" binding:"required,gte=0"`
	DurationMinutes int     `json:"durationMinutes" binding:"required,gt=0"`
	Active          *bool   `json:"active"`
}

// UpdateServiceRequest represents service update parameters
type UpdateServiceRequest struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	Price           *float64 `json:"price" binding:"omitempty,gte=0"`
	DurationMinutes *int     `json:"durationMinutes" binding:"omitempty,gt=0"`
	Active          *bool    `json:"active"`
}

// ServiceFilters represents catalog search parameters
type ServiceFilters struct {
	Active     *bool  `json:"active" form:"active"`
	SearchTerm string `json:"search" form:"search"`
}
