package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hotel_booking/internal/model"
	"hotel_booking/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// stubAuthService returns canned results so handler status mapping can be
// exercised without a store.
type stubAuthService struct {
	registerErr error
	loginErr    error
	requestErr  error
	confirmErr  error
}

func (s *stubAuthService) Register(_ context.Context, email, _, name, phone string) (*model.User, string, error) {
	if s.registerErr != nil {
		return nil, "", s.registerErr
	}
	return &model.User{ID: 1, Email: email, Name: name, Phone: phone, Role: model.RoleClient, Status: model.StatusActive}, "tok", nil
}

func (s *stubAuthService) Login(_ context.Context, email, _ string) (*model.User, string, error) {
	if s.loginErr != nil {
		return nil, "", s.loginErr
	}
	return &model.User{ID: 1, Email: email, Role: model.RoleClient, Status: model.StatusActive}, "tok", nil
}

func (s *stubAuthService) RequestPasswordReset(_ context.Context, _ string) error { return s.requestErr }

func (s *stubAuthService) ConfirmPasswordReset(_ context.Context, _, _, _ string) error {
	return s.confirmErr
}

func (s *stubAuthService) GetProfile(_ context.Context, _ int) (*model.User, error) {
	return nil, service.ErrUserNotFound
}

func (s *stubAuthService) UpdateProfile(_ context.Context, _ int, _ model.UpdateProfileRequest) (*model.User, error) {
	return nil, service.ErrUserNotFound
}

func (s *stubAuthService) SoftDelete(_ context.Context, _ int) error { return service.ErrUserNotFound }

func newAuthTestRouter(svc service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	passthrough := func(c *gin.Context) { c.Next() }
	NewAuthHandler(svc).RegisterAuthRoutes(r.Group("/api/v1"), passthrough, passthrough)
	return r
}

func TestAuthHandler_StatusMapping(t *testing.T) {
	registerBody := `{"email":"a@x.com","password":"pw1pw1","name":"Alice"}`
	loginBody := `{"email":"a@x.com","password":"pw1pw1"}`
	requestBody := `{"email":"a@x.com"}`
	confirmBody := `{"email":"a@x.com","code":"123456","new_password":"pw2pw2"}`

	tests := []struct {
		name       string
		svc        *stubAuthService
		path       string
		body       string
		wantStatus int
	}{
		{"register created", &stubAuthService{}, "/auth/register", registerBody, http.StatusCreated},
		{"register email taken", &stubAuthService{registerErr: service.ErrEmailTaken}, "/auth/register", registerBody, http.StatusConflict},
		{"register repo failure", &stubAuthService{registerErr: assert.AnError}, "/auth/register", registerBody, http.StatusInternalServerError},
		{"login ok", &stubAuthService{}, "/auth/login", loginBody, http.StatusOK},
		{"login bad credentials", &stubAuthService{loginErr: service.ErrInvalidCredentials}, "/auth/login", loginBody, http.StatusUnauthorized},
		{"login disabled account", &stubAuthService{loginErr: service.ErrAccountDisabled}, "/auth/login", loginBody, http.StatusForbidden},
		{"login repo failure", &stubAuthService{loginErr: assert.AnError}, "/auth/login", loginBody, http.StatusInternalServerError},
		{"reset request ok", &stubAuthService{}, "/auth/password-reset/request", requestBody, http.StatusOK},
		{"reset request repo failure", &stubAuthService{requestErr: assert.AnError}, "/auth/password-reset/request", requestBody, http.StatusInternalServerError},
		{"reset confirm ok", &stubAuthService{}, "/auth/password-reset/confirm", confirmBody, http.StatusOK},
		{"reset confirm unknown user", &stubAuthService{confirmErr: service.ErrUserNotFound}, "/auth/password-reset/confirm", confirmBody, http.StatusNotFound},
		{"reset confirm bad code", &stubAuthService{confirmErr: service.ErrResetCodeInvalid}, "/auth/password-reset/confirm", confirmBody, http.StatusBadRequest},
		{"register malformed body", &stubAuthService{}, "/auth/register", `{"email":"not-an-email"}`, http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newAuthTestRouter(tc.svc)
			req := httptest.NewRequest(http.MethodPost, "/api/v1"+tc.path, strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestAuthHandler_ResetRequestResponseIsGeneric(t *testing.T) {
	r := newAuthTestRouter(&stubAuthService{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/password-reset/request",
		strings.NewReader(`{"email":"nobody@x.com"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	// The body never says whether the account exists.
	assert.Contains(t, w.Body.String(), "If the account exists")
}
