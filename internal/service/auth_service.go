package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"hotel_booking/internal/mailer"
	"hotel_booking/internal/model"
	"hotel_booking/internal/repository"
	"hotel_booking/internal/utils"
)

var (
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrResetCodeInvalid   = errors.New("reset code is invalid or expired")
)

const resetCodeTTL = time.Hour

// loginPadHash is compared against when login hits an unknown email, so the
// unknown-email and wrong-password paths cost the same bcrypt work and
// neither leaks account existence through response timing.
var loginPadHash = func() string {
	h, err := utils.HashPassword("login-timing-pad")
	if err != nil {
		panic(fmt.Sprintf("failed to precompute login pad hash: %v", err))
	}
	return h
}()

// AuthService provides authentication and account services
type AuthService interface {
	Register(ctx context.Context, email, password, name, phone string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, email, code, newPassword string) error
	GetProfile(ctx context.Context, userID int) (*model.User, error)
	UpdateProfile(ctx context.Context, userID int, req model.UpdateProfileRequest) (*model.User, error)
	SoftDelete(ctx context.Context, userID int) error
}

type authService struct {
	userRepo          repository.UserRepository
	jwtUtil           *utils.JWTUtil
	mailer            mailer.Mailer
	initialAdminEmail string
	now               func() time.Time
	rand              io.Reader // nil means crypto/rand
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil, m mailer.Mailer, initialAdminEmail string) AuthService {
	return &authService{
		userRepo:          userRepo,
		jwtUtil:           jwtUtil,
		mailer:            m,
		initialAdminEmail: initialAdminEmail,
		now:               time.Now,
	}
}

// Register creates a new user account and issues a session token
func (s *authService) Register(ctx context.Context, email, password, name, phone string) (*model.User, string, error) {
	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, "", ErrEmailTaken
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	userRole := model.RoleClient // Default role, never client-settable

	// Check for initial admin setup via environment variable
	if s.initialAdminEmail != "" && email == s.initialAdminEmail {
		userRole = model.RoleAdmin
		log.Printf("INFO: User %s is being registered as ADMIN via INITIAL_ADMIN_EMAIL.", email)
	}

	user := &model.User{
		Email:        email,
		Name:         name,
		Phone:        phone,
		PasswordHash: hashedPassword,
		Role:         userRole,
		Status:       model.StatusActive,
		CreatedAt:    s.now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to create user in repository: %w", err)
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Email, user.Role, user.Status)
	if err != nil {
		log.Printf("ERROR: User %s (ID: %d) created, but failed to generate token: %v", user.Email, user.ID, err)
		return user, "", fmt.Errorf("user created, but failed to generate token: %w", err)
	}

	return user, token, nil
}

// Login authenticates a user and returns a session token. Unknown email and
// wrong password come back as the same error so neither leaks which was the
// case; a soft-deleted account is reported as disabled regardless of the
// password supplied.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil {
		utils.CheckPasswordHash(password, loginPadHash) // burn the same hashing cost as a real comparison
		return nil, "", ErrInvalidCredentials           // User not found
	}

	if user.Status == model.StatusDeleted {
		return nil, "", ErrAccountDisabled
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials // Password mismatch
	}

	loginAt := s.now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, loginAt); err != nil {
		return nil, "", fmt.Errorf("failed to record login: %w", err)
	}
	user.LastLoginAt = &loginAt

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Email, user.Role, user.Status)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// RequestPasswordReset starts the reset flow for the given email. The result
// is identical whether or not the account exists, so the endpoint cannot be
// used to probe for registered addresses. A repeated request overwrites any
// previous pending code.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil || user.Status == model.StatusDeleted {
		return nil // Generic success, no mutation
	}

	code, err := utils.GenerateResetCode(s.rand)
	if err != nil {
		return fmt.Errorf("failed to generate reset code: %w", err)
	}

	expiry := s.now().Add(resetCodeTTL)
	if err := s.userRepo.SetResetCode(ctx, user.ID, code, expiry); err != nil {
		return fmt.Errorf("failed to persist reset code: %w", err)
	}

	// Dispatch off the request path: the caller-visible response must not
	// wait on the relay, and a slow relay must not make requests for
	// existing accounts observably slower than those for unknown ones.
	body := fmt.Sprintf("Your password reset code is %s. It expires in one hour.", code)
	go func(email string) {
		if err := s.mailer.Send(email, "Password reset code", body); err != nil {
			// The code is already persisted; delivery failure must not look
			// like a failed request, but it must not pass silently either.
			log.Printf("ERROR: failed to send reset code email to %s: %v", email, err)
		}
	}(user.Email)
	return nil
}

// ConfirmPasswordReset redeems a pending reset code and rotates the
// credential. Wrong code, absent code and expired code are indistinguishable
// to the caller. Redemption happens as one conditional store update, so a
// code is usable at most once even under concurrent attempts.
func (s *authService) ConfirmPasswordReset(ctx context.Context, email, code, newPassword string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil || user.Status == model.StatusDeleted {
		return ErrUserNotFound
	}

	hashedPassword, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	redeemed, err := s.userRepo.RedeemResetCode(ctx, user.ID, code, s.now(), hashedPassword)
	if err != nil {
		return fmt.Errorf("failed to redeem reset code: %w", err)
	}
	if !redeemed {
		return ErrResetCodeInvalid
	}
	return nil
}

// GetProfile returns the user record for the given ID
func (s *authService) GetProfile(ctx context.Context, userID int) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile mutates the caller-permitted fields (name, phone) only
func (s *authService) UpdateProfile(ctx context.Context, userID int, req model.UpdateProfileRequest) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user for profile update: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}

	if err := s.userRepo.UpdateProfile(ctx, user.ID, user.Name, user.Phone); err != nil {
		return nil, fmt.Errorf("failed to update profile in repository: %w", err)
	}
	return user, nil
}

// SoftDelete marks the caller's own account deleted without erasing the row
func (s *authService) SoftDelete(ctx context.Context, userID int) error {
	deleted, err := s.userRepo.SoftDelete(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to soft delete user: %w", err)
	}
	if !deleted {
		return ErrUserNotFound
	}
	return nil
}
