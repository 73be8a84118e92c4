package model

import "time"

const (
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusCancelled = "cancelled"
)

// Reservation represents a confirmed stay. Code is the opaque confirmation
// reference shown to the guest.
type Reservation struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	RoomID    int64     `json:"room_id"`
	UserID    int       `json:"user_id"`
	CheckIn   time.Time `json:"check_in"`
	CheckOut  time.Time `json:"check_out"`
	Guests    int       `json:"guests"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateReservationRequest is used for checkout
type CreateReservationRequest struct {
	RoomID   int64     `json:"room_id" binding:"required"`
	CheckIn  time.Time `json:"check_in" binding:"required"`
	CheckOut time.Time `json:"check_out" binding:"required"`
	Guests   int       `json:"guests" binding:"required,gt=0"`
}

// AdminReservationFilters contains filter parameters for admin reservation queries
type AdminReservationFilters struct {
	UserID *int
	RoomID *int64
}
