package repository

import (
	"context"
	"errors"
	"fmt"

	"hotel_booking/internal/model"

	"github.com/jackc/pgx/v5"
)

// RoomRepository defines operations for room data
type RoomRepository interface {
	Create(ctx context.Context, room *model.Room) error
	FindByID(ctx context.Context, id int64) (*model.Room, error)
	FindAll(ctx context.Context) ([]model.Room, error)
	Update(ctx context.Context, room *model.Room) error
	Delete(ctx context.Context, id int64) error
}

type roomRepository struct {
	db DB
}

// NewRoomRepository creates a new RoomRepository
func NewRoomRepository(db DB) RoomRepository {
	return &roomRepository{db: db}
}

// Create inserts a new room into the database
func (r *roomRepository) Create(ctx context.Context, room *model.Room) error {
	sql := `INSERT INTO rooms (name, description, price_cents, capacity, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, sql, room.Name, room.Description, room.PriceCents, room.Capacity, room.CreatedAt, room.UpdatedAt).
		Scan(&room.ID, &room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

// FindByID retrieves a room by its ID
func (r *roomRepository) FindByID(ctx context.Context, id int64) (*model.Room, error) {
	room := &model.Room{}
	sql := `SELECT id, name, description, price_cents, capacity, created_at, updated_at FROM rooms WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&room.ID, &room.Name, &room.Description, &room.PriceCents, &room.Capacity, &room.CreatedAt, &room.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find room by ID: %w", err)
	}
	return room, nil
}

// FindAll retrieves all rooms ordered by price
func (r *roomRepository) FindAll(ctx context.Context) ([]model.Room, error) {
	sql := `SELECT id, name, description, price_cents, capacity, created_at, updated_at
            FROM rooms ORDER BY price_cents ASC, id ASC`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query rooms: %w", err)
	}
	defer rows.Close()

	var rooms []model.Room
	for rows.Next() {
		var room model.Room
		if err := rows.Scan(
			&room.ID, &room.Name, &room.Description, &room.PriceCents, &room.Capacity, &room.CreatedAt, &room.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan room row: %w", err)
		}
		rooms = append(rooms, room)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating room rows: %w", err)
	}
	return rooms, nil
}

// Update modifies an existing room
func (r *roomRepository) Update(ctx context.Context, room *model.Room) error {
	sql := `UPDATE rooms SET name = $1, description = $2, price_cents = $3, capacity = $4, updated_at = NOW()
            WHERE id = $5 RETURNING updated_at`
	err := r.db.QueryRow(ctx, sql, room.Name, room.Description, room.PriceCents, room.Capacity, room.ID).Scan(&room.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("room not found for update")
		}
		return fmt.Errorf("failed to update room: %w", err)
	}
	return nil
}

// Delete removes a room from the database
func (r *roomRepository) Delete(ctx context.Context, id int64) error {
	sql := `DELETE FROM rooms WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("room not found for deletion")
	}
	return nil
}
