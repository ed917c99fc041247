package model

// User role constants
const (
	UserRoleAdmin    = "admin"
	UserRoleEmployee = "employee"
)

// User represents a staff member of the wash
type User struct {
	Base
	Name         string `json:"name" db:"name"`
	Surname      string `json:"surname" db:"surname"`
	Email        string `json:"email" db:"email"`
	Phone        string `json:"phone" db:"phone"`
	Role         string `json:"role" db:"role"`
	Password     string `json:"password,omitempty" db:"-"`
	PasswordHash string `json:"-" db:"password_hash"`
}

// CreateUserRequest represents user creation parameters
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Surname  string `json:"surname" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"required,oneof=admin employee"`
	Password string `json:"password" binding:"required,min=8"`
}

// UpdateUserRequest represents user update parameters
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Surname  *string `json:"surname"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone"`
	Role     *string `json:"role" binding:"omitempty,oneof=admin employee"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}

// UserFilters represents user search parameters
type UserFilters struct {
	Role       string `json:"role" form:"role"`
	SearchTerm string `json:"search" form:"search"`
}

// FullName returns the display name used in reports and notifications.
func (u *User) FullName() string {
	if u.Surname == "" {
		return u.Name
	}
	return u.Name + " " + u.Surname
}
