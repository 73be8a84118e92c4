package repository

import (
	"context"
	"testing"
	"time"

	"hotel_booking/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserRepoMock(t *testing.T) (UserRepository, pgxmock.PgxPoolIface) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewUserRepository(mock), mock
}

func TestUserRepository_Create(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	user := &model.User{
		Email:        "a@x.com",
		Name:         "Alice",
		Phone:        "111",
		PasswordHash: "hash",
		Role:         model.RoleClient,
		Status:       model.StatusActive,
		CreatedAt:    createdAt,
	}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("a@x.com", "Alice", "111", "hash", model.RoleClient, model.StatusActive, createdAt).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(5))

	err := repo.Create(context.Background(), user)
	assert.NoError(t, err)
	assert.Equal(t, 5, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	code := "123456"
	expiry := createdAt.Add(time.Hour)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("a@x.com").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "email", "name", "phone", "password_hash", "role", "status",
			"reset_code", "reset_code_expiry", "last_login_at", "created_at",
		}).AddRow(1, "a@x.com", "Alice", "111", "hash", model.RoleClient, model.StatusActive, &code, &expiry, nil, createdAt))

	user, err := repo.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, model.RoleClient, user.Role)
	require.NotNil(t, user.ResetCode)
	assert.Equal(t, "123456", *user.ResetCode)
	assert.Nil(t, user.LastLoginAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail_NotFound(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("nobody@x.com").
		WillReturnError(pgx.ErrNoRows)

	// Not-found is not an error at the repository level.
	user, err := repo.FindByEmail(context.Background(), "nobody@x.com")
	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_SetResetCode(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	expiry := time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC)
	mock.ExpectExec("UPDATE users SET reset_code").
		WithArgs("123456", expiry, 1).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.SetResetCode(context.Background(), 1, "123456", expiry)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_RedeemResetCode(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	now := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	mock.ExpectExec("UPDATE users SET password_hash").
		WithArgs("newhash", 1, "123456", now).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	redeemed, err := repo.RedeemResetCode(context.Background(), 1, "123456", now, "newhash")
	assert.NoError(t, err)
	assert.True(t, redeemed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_RedeemResetCode_NoRowQualifies(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	// Mismatched or expired code: zero rows affected, no error.
	now := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)
	mock.ExpectExec("UPDATE users SET password_hash").
		WithArgs("newhash", 1, "123456", now).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	redeemed, err := repo.RedeemResetCode(context.Background(), 1, "123456", now, "newhash")
	assert.NoError(t, err)
	assert.False(t, redeemed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_SoftDelete(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	mock.ExpectExec("UPDATE users SET status").
		WithArgs(model.StatusDeleted, 1, model.StatusActive).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	deleted, err := repo.SoftDelete(context.Background(), 1)
	assert.NoError(t, err)
	assert.True(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_SoftDelete_AlreadyDeleted(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	mock.ExpectExec("UPDATE users SET status").
		WithArgs(model.StatusDeleted, 1, model.StatusActive).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	deleted, err := repo.SoftDelete(context.Background(), 1)
	assert.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateLastLogin(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec("UPDATE users SET last_login_at").
		WithArgs(at, 1).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, repo.UpdateLastLogin(context.Background(), 1, at))
	assert.NoError(t, mock.ExpectationsWereMet())
}
