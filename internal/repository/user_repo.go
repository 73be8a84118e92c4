package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel_booking/internal/model"

	"github.com/jackc/pgx/v5"
)

// UserRepository defines operations for user data. Mutations that depend on
// the current row state (reset redemption, soft delete) are single
// conditional statements so concurrent callers cannot both succeed.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id int) (*model.User, error)
	UpdateLastLogin(ctx context.Context, id int, at time.Time) error
	UpdateProfile(ctx context.Context, id int, name, phone string) error
	SetResetCode(ctx context.Context, id int, code string, expiry time.Time) error
	RedeemResetCode(ctx context.Context, id int, code string, now time.Time, newPasswordHash string) (bool, error)
	SoftDelete(ctx context.Context, id int) (bool, error)
}

type userRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, name, phone, password_hash, role, status, reset_code, reset_code_expiry, last_login_at, created_at`

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	sql := `INSERT INTO users (email, name, phone, password_hash, role, status, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := r.db.QueryRow(ctx, sql, user.Email, user.Name, user.Phone, user.PasswordHash, user.Role, user.Status, user.CreatedAt).Scan(&user.ID)
	if err != nil {
		// TODO: Check for unique constraint violation specifically pgerrcode.UniqueViolation
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByEmail retrieves a user by their email address
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	err := r.db.QueryRow(ctx, sql, email).Scan(
		&user.ID, &user.Email, &user.Name, &user.Phone, &user.PasswordHash, &user.Role,
		&user.Status, &user.ResetCode, &user.ResetCodeExpiry, &user.LastLoginAt, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // User not found is not an error for this method's contract, service layer handles it
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

// FindByID retrieves a user by their ID
func (r *userRepository) FindByID(ctx context.Context, id int) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&user.ID, &user.Email, &user.Name, &user.Phone, &user.PasswordHash, &user.Role,
		&user.Status, &user.ResetCode, &user.ResetCodeExpiry, &user.LastLoginAt, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

// UpdateLastLogin records a successful login timestamp
func (r *userRepository) UpdateLastLogin(ctx context.Context, id int, at time.Time) error {
	sql := `UPDATE users SET last_login_at = $1 WHERE id = $2`
	cmdTag, err := r.db.Exec(ctx, sql, at, id)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found for last login update")
	}
	return nil
}

// UpdateProfile updates the self-service profile fields only
func (r *userRepository) UpdateProfile(ctx context.Context, id int, name, phone string) error {
	sql := `UPDATE users SET name = $1, phone = $2 WHERE id = $3`
	cmdTag, err := r.db.Exec(ctx, sql, name, phone, id)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found for profile update")
	}
	return nil
}

// SetResetCode stores a pending reset code and its expiry together.
// A repeated request overwrites any previous pending code (last write wins).
func (r *userRepository) SetResetCode(ctx context.Context, id int, code string, expiry time.Time) error {
	sql := `UPDATE users SET reset_code = $1, reset_code_expiry = $2 WHERE id = $3`
	cmdTag, err := r.db.Exec(ctx, sql, code, expiry, id)
	if err != nil {
		return fmt.Errorf("failed to set reset code: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found for reset code update")
	}
	return nil
}

// RedeemResetCode swaps in the new password hash and clears the pending code
// in one statement, conditional on the code matching and not being expired.
// Returns false when no row qualified, so a code can be redeemed at most once
// even under concurrent attempts.
func (r *userRepository) RedeemResetCode(ctx context.Context, id int, code string, now time.Time, newPasswordHash string) (bool, error) {
	sql := `UPDATE users SET password_hash = $1, reset_code = NULL, reset_code_expiry = NULL
            WHERE id = $2 AND reset_code = $3 AND reset_code_expiry > $4`
	cmdTag, err := r.db.Exec(ctx, sql, newPasswordHash, id, code, now)
	if err != nil {
		return false, fmt.Errorf("failed to redeem reset code: %w", err)
	}
	return cmdTag.RowsAffected() == 1, nil
}

// SoftDelete marks the account deleted without removing the row
func (r *userRepository) SoftDelete(ctx context.Context, id int) (bool, error) {
	sql := `UPDATE users SET status = $1 WHERE id = $2 AND status = $3`
	cmdTag, err := r.db.Exec(ctx, sql, model.StatusDeleted, id, model.StatusActive)
	if err != nil {
		return false, fmt.Errorf("failed to soft delete user: %w", err)
	}
	return cmdTag.RowsAffected() == 1, nil
}
