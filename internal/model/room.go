package model

import "time"

// Room represents a bookable room type
type Room struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"` // Pointer for optional field
	PriceCents  int64     `json:"price_cents"`           // Nightly rate in smallest currency unit
	Capacity    int       `json:"capacity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateRoomRequest is used by admins to add a new room
type CreateRoomRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	PriceCents  int64   `json:"price_cents" binding:"required,gt=0"`
	Capacity    int     `json:"capacity" binding:"required,gt=0"`
}

type UpdateRoomRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	PriceCents  *int64  `json:"price_cents,omitempty" binding:"omitempty,gt=0"`
	Capacity    *int    `json:"capacity,omitempty" binding:"omitempty,gt=0"`
}
