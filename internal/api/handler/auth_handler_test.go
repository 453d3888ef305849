package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ayurveda/iam-service/internal/core/domain"
	"github.com/ayurveda/iam-service/internal/core/ports"
)

type stubAuthService struct {
	loginFn func(ctx context.Context, username, password, remoteIP string) (*ports.LoginResult, error)
}

func (s *stubAuthService) Login(ctx context.Context, username, password, remoteIP string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, username, password, remoteIP)
}

type stubUserService struct {
	createFn        func(ctx context.Context, in ports.UserInput) (*domain.User, error)
	updateFn        func(ctx context.Context, id int64, in ports.UserInput) (*domain.User, error)
	deleteFn        func(ctx context.Context, id int64) error
	getFn           func(ctx context.Context, id int64) (*domain.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	listFn          func(ctx context.Context) ([]domain.User, error)
}

func (s *stubUserService) Create(ctx context.Context, in ports.UserInput) (*domain.User, error) {
	return s.createFn(ctx, in)
}

func (s *stubUserService) Update(ctx context.Context, id int64, in ports.UserInput) (*domain.User, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubUserService) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

func (s *stubUserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.getByUsernameFn(ctx, username)
}

func (s *stubUserService) List(ctx context.Context) ([]domain.User, error) {
	return s.listFn(ctx)
}

type stubLastLogin struct {
	ts  int64
	err error
}

func (s *stubLastLogin) Get(context.Context, string) (int64, error) {
	return s.ts, s.err
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func demoUser() *domain.User {
	return &domain.User{
		ID:       7,
		Username: "doctor@test.com",
		Email:    "doctor@test.com",
		Phone:    "9876543211",
		Status:   domain.StatusActive,
		Role:     domain.Role{ID: 3, Name: domain.RoleFaculty},
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	auth := &stubAuthService{
		loginFn: func(_ context.Context, username, password, _ string) (*ports.LoginResult, error) {
			if username != "doctor@test.com" || password != "Doctor@123" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return &ports.LoginResult{
				Token:    "token123",
				UserID:   7,
				Username: username,
				RoleName: domain.RoleFaculty,
			}, nil
		},
	}
	handler := NewAuthHandler(auth, &stubUserService{}, nil)

	body := strings.NewReader(`{"username":"doctor@test.com","password":"Doctor@123"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	if resp["message"] != "Login successful" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
	if resp["username"] != "doctor@test.com" || resp["role"] != domain.RoleFaculty {
		t.Fatalf("unexpected identity payload: %+v", resp)
	}
	if resp["id"] != float64(7) {
		t.Fatalf("unexpected id: %v", resp["id"])
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	auth := &stubAuthService{
		loginFn: func(context.Context, string, string, string) (*ports.LoginResult, error) {
			return nil, domain.ErrAuthenticationFailed
		},
	}
	handler := NewAuthHandler(auth, &stubUserService{}, nil)

	// Unknown username and wrong password surface identically.
	for _, body := range []string{
		`{"username":"ghost","password":"Doctor@123"}`,
		`{"username":"doctor@test.com","password":"wrong"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		_ = handler.Login(c)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		var resp map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if resp["error"] != "invalid credentials" {
			t.Fatalf("expected generic error body, got %v", resp["error"])
		}
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	e := newTestEcho()
	auth := &stubAuthService{
		loginFn: func(context.Context, string, string, string) (*ports.LoginResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(auth, &stubUserService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"doctor@test.com"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Login(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	auth := &stubAuthService{
		loginFn: func(context.Context, string, string, string) (*ports.LoginResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(auth, &stubUserService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("{"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Login(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	e := newTestEcho()
	lastTS := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	users := &stubUserService{
		getByUsernameFn: func(_ context.Context, username string) (*domain.User, error) {
			if username != "doctor@test.com" {
				t.Fatalf("unexpected username: %s", username)
			}
			return demoUser(), nil
		},
	}
	handler := NewAuthHandler(&stubAuthService{}, users, &stubLastLogin{ts: lastTS.Unix()})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("username", "doctor@test.com")
	c.Set("role", domain.RoleFaculty)

	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp meResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.User.Username != "doctor@test.com" || resp.User.Role.Name != domain.RoleFaculty {
		t.Fatalf("unexpected user payload: %+v", resp.User)
	}
	if resp.LastLoginAt == nil || !resp.LastLoginAt.Equal(lastTS) {
		t.Fatalf("unexpected last login: %v", resp.LastLoginAt)
	}
}

func TestAuthHandler_Me_LastLoginUnavailable(t *testing.T) {
	e := newTestEcho()
	users := &stubUserService{
		getByUsernameFn: func(context.Context, string) (*domain.User, error) {
			return demoUser(), nil
		},
	}
	handler := NewAuthHandler(&stubAuthService{}, users, &stubLastLogin{err: errors.New("redis down")})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("username", "doctor@test.com")
	c.Set("role", domain.RoleFaculty)

	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp meResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.LastLoginAt != nil {
		t.Fatalf("expected last login omitted, got %v", resp.LastLoginAt)
	}
}

func TestAuthHandler_Me_MissingClaims(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{}, &stubUserService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Me(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Me_AccountGone(t *testing.T) {
	e := newTestEcho()
	users := &stubUserService{
		getByUsernameFn: func(context.Context, string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	handler := NewAuthHandler(&stubAuthService{}, users, nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("username", "deleted-user")
	c.Set("role", domain.RoleViewer)

	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
