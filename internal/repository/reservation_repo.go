package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotel_booking/internal/model"

	"github.com/jackc/pgx/v5"
)

// ReservationRepository defines operations for reservation data
type ReservationRepository interface {
	Create(ctx context.Context, reservation *model.Reservation) error
	FindByID(ctx context.Context, id int64) (*model.Reservation, error)
	FindByUser(ctx context.Context, userID int) ([]model.Reservation, error)
	FindAll(ctx context.Context, filters model.AdminReservationFilters) ([]model.Reservation, error)
	Cancel(ctx context.Context, id int64) (bool, error)
}

type reservationRepository struct {
	db DB
}

// NewReservationRepository creates a new ReservationRepository
func NewReservationRepository(db DB) ReservationRepository {
	return &reservationRepository{db: db}
}

const reservationColumns = `id, code, room_id, user_id, check_in, check_out, guests, status, created_at`

// Create inserts a new reservation into the database
func (r *reservationRepository) Create(ctx context.Context, res *model.Reservation) error {
	sql := `INSERT INTO reservations (code, room_id, user_id, check_in, check_out, guests, status, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at`
	err := r.db.QueryRow(ctx, sql, res.Code, res.RoomID, res.UserID, res.CheckIn, res.CheckOut, res.Guests, res.Status, res.CreatedAt).
		Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	return nil
}

// FindByID retrieves a reservation by its ID
func (r *reservationRepository) FindByID(ctx context.Context, id int64) (*model.Reservation, error) {
	res := &model.Reservation{}
	sql := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&res.ID, &res.Code, &res.RoomID, &res.UserID, &res.CheckIn, &res.CheckOut, &res.Guests, &res.Status, &res.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find reservation by ID: %w", err)
	}
	return res, nil
}

// FindByUser retrieves reservations belonging to a specific user
func (r *reservationRepository) FindByUser(ctx context.Context, userID int) ([]model.Reservation, error) {
	sql := `SELECT ` + reservationColumns + ` FROM reservations WHERE user_id = $1 ORDER BY check_in DESC, created_at DESC`
	rows, err := r.db.Query(ctx, sql, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations by user: %w", err)
	}
	defer rows.Close()
	return scanReservations(rows)
}

// FindAll retrieves all reservations with optional filters for admin
func (r *reservationRepository) FindAll(ctx context.Context, filters model.AdminReservationFilters) ([]model.Reservation, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + reservationColumns + ` FROM reservations`)

	args := []interface{}{}
	argCount := 1
	var conditions []string

	if filters.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argCount))
		args = append(args, *filters.UserID)
		argCount++
	}
	if filters.RoomID != nil {
		conditions = append(conditions, fmt.Sprintf("room_id = $%d", argCount))
		args = append(args, *filters.RoomID)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY check_in DESC, created_at DESC")

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query all reservations: %w", err)
	}
	defer rows.Close()
	return scanReservations(rows)
}

// Cancel marks a reservation cancelled; returns false when it was already
// cancelled or does not exist.
func (r *reservationRepository) Cancel(ctx context.Context, id int64) (bool, error) {
	sql := `UPDATE reservations SET status = $1 WHERE id = $2 AND status = $3`
	cmdTag, err := r.db.Exec(ctx, sql, model.ReservationStatusCancelled, id, model.ReservationStatusConfirmed)
	if err != nil {
		return false, fmt.Errorf("failed to cancel reservation: %w", err)
	}
	return cmdTag.RowsAffected() == 1, nil
}

func scanReservations(rows pgx.Rows) ([]model.Reservation, error) {
	var reservations []model.Reservation
	for rows.Next() {
		var res model.Reservation
		if err := rows.Scan(
			&res.ID, &res.Code, &res.RoomID, &res.UserID, &res.CheckIn, &res.CheckOut, &res.Guests, &res.Status, &res.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reservation row: %w", err)
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reservation rows: %w", err)
	}
	return reservations, nil
}
