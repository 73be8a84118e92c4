package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel_booking/internal/model"
	"hotel_booking/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrForbidden           = errors.New("forbidden: user does not have permission for this action")
	ErrInvalidStay         = errors.New("check-out must be after check-in")
)

// ReservationService defines operations for reservations
type ReservationService interface {
	CreateReservation(ctx context.Context, userID int, req model.CreateReservationRequest) (*model.Reservation, error)
	GetUserReservations(ctx context.Context, userID int) ([]model.Reservation, error)
	CancelReservation(ctx context.Context, reservationID int64, userID int, userRole string) error

	// Admin methods
	GetAllReservationsAdmin(ctx context.Context, filters model.AdminReservationFilters) ([]model.Reservation, error)
}

type reservationService struct {
	repo     repository.ReservationRepository
	roomRepo repository.RoomRepository
	now      func() time.Time
}

// NewReservationService creates a new ReservationService
func NewReservationService(repo repository.ReservationRepository, roomRepo repository.RoomRepository) ReservationService {
	return &reservationService{repo: repo, roomRepo: roomRepo, now: time.Now}
}

func (s *reservationService) CreateReservation(ctx context.Context, userID int, req model.CreateReservationRequest) (*model.Reservation, error) {
	if !req.CheckOut.After(req.CheckIn) {
		return nil, ErrInvalidStay
	}

	room, err := s.roomRepo.FindByID(ctx, req.RoomID)
	if err != nil {
		return nil, fmt.Errorf("failed to find room for reservation: %w", err)
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}

	reservation := &model.Reservation{
		Code:      uuid.NewString(),
		RoomID:    req.RoomID,
		UserID:    userID,
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
		Guests:    req.Guests,
		Status:    model.ReservationStatusConfirmed,
		CreatedAt: s.now(),
	}

	if err := s.repo.Create(ctx, reservation); err != nil {
		return nil, fmt.Errorf("failed to create reservation in repo: %w", err)
	}
	return reservation, nil
}

func (s *reservationService) GetUserReservations(ctx context.Context, userID int) ([]model.Reservation, error) {
	reservations, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user reservations from repo: %w", err)
	}
	return reservations, nil
}

func (s *reservationService) CancelReservation(ctx context.Context, reservationID int64, userID int, userRole string) error {
	reservation, err := s.repo.FindByID(ctx, reservationID)
	if err != nil {
		return fmt.Errorf("failed to find reservation for cancellation: %w", err)
	}
	if reservation == nil {
		return ErrReservationNotFound
	}

	if userRole != model.RoleAdmin && reservation.UserID != userID {
		return ErrForbidden
	}

	cancelled, err := s.repo.Cancel(ctx, reservationID)
	if err != nil {
		return fmt.Errorf("failed to cancel reservation in repo: %w", err)
	}
	if !cancelled {
		return ErrReservationNotFound // already cancelled
	}
	return nil
}

// --- Admin Methods ---

func (s *reservationService) GetAllReservationsAdmin(ctx context.Context, filters model.AdminReservationFilters) ([]model.Reservation, error) {
	reservations, err := s.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get all reservations for admin: %w", err)
	}
	return reservations, nil
}
