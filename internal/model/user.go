package model

import "time"

const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

const (
	StatusActive  = "active"
	StatusDeleted = "deleted"
)

// User represents a guest or admin account.
// ResetCode and ResetCodeExpiry are set and cleared together; a row never
// carries one without the other.
type User struct {
	ID              int        `json:"id"`
	Email           string     `json:"email"`
	Name            string     `json:"name"`
	Phone           string     `json:"phone"`
	PasswordHash    string     `json:"-"` // Do not expose password hash in JSON responses
	Role            string     `json:"role"`
	Status          string     `json:"status"`
	ResetCode       *string    `json:"-"`
	ResetCodeExpiry *time.Time `json:"-"`
	LastLoginAt     *time.Time `json:"last_login_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// UpdateProfileRequest carries the only self-service mutable fields.
// Role and status are deliberately absent.
type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
}
