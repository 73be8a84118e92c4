package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel_booking/internal/model"
	"hotel_booking/internal/repository"
)

var ErrRoomNotFound = errors.New("room not found")

// RoomService defines operations for rooms. Browsing is public; mutations
// are admin-only and gated at the route layer.
type RoomService interface {
	ListRooms(ctx context.Context) ([]model.Room, error)
	GetRoom(ctx context.Context, roomID int64) (*model.Room, error)
	CreateRoom(ctx context.Context, req model.CreateRoomRequest) (*model.Room, error)
	UpdateRoom(ctx context.Context, roomID int64, req model.UpdateRoomRequest) (*model.Room, error)
	DeleteRoom(ctx context.Context, roomID int64) error
}

type roomService struct {
	repo repository.RoomRepository
	now  func() time.Time
}

// NewRoomService creates a new RoomService
func NewRoomService(repo repository.RoomRepository) RoomService {
	return &roomService{repo: repo, now: time.Now}
}

func (s *roomService) ListRooms(ctx context.Context) ([]model.Room, error) {
	rooms, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

func (s *roomService) GetRoom(ctx context.Context, roomID int64) (*model.Room, error) {
	room, err := s.repo.FindByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to find room: %w", err)
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

func (s *roomService) CreateRoom(ctx context.Context, req model.CreateRoomRequest) (*model.Room, error) {
	createdAt := s.now()
	room := &model.Room{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Capacity:    req.Capacity,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	if err := s.repo.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to create room in repo: %w", err)
	}
	return room, nil
}

func (s *roomService) UpdateRoom(ctx context.Context, roomID int64, req model.UpdateRoomRequest) (*model.Room, error) {
	room, err := s.repo.FindByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to find room for update: %w", err)
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}

	// Apply updates
	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.Description != nil { // handles setting to "" or null
		room.Description = req.Description
	}
	if req.PriceCents != nil {
		room.PriceCents = *req.PriceCents
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}

	if err := s.repo.Update(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to update room in repo: %w", err)
	}
	return room, nil
}

func (s *roomService) DeleteRoom(ctx context.Context, roomID int64) error {
	room, err := s.repo.FindByID(ctx, roomID)
	if err != nil {
		return fmt.Errorf("failed to find room for deletion: %w", err)
	}
	if room == nil {
		return ErrRoomNotFound
	}
	if err := s.repo.Delete(ctx, roomID); err != nil {
		return fmt.Errorf("failed to delete room in repo: %w", err)
	}
	return nil
}
