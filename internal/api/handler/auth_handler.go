package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ayurveda/iam-service/internal/api/metrics"
	"github.com/ayurveda/iam-service/internal/core/domain"
	"github.com/ayurveda/iam-service/internal/core/ports"
)

// lastLoginReader exposes the most recent successful login per username.
type lastLoginReader interface {
	Get(ctx context.Context, username string) (int64, error)
}

type AuthHandler struct {
	authService ports.AuthService
	userService ports.UserService
	lastLogin   lastLoginReader
}

func NewAuthHandler(authService ports.AuthService, userService ports.UserService, lastLogin lastLoginReader) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService, lastLogin: lastLogin}
}

// Login authenticates a user and returns a session token. Unknown username
// and wrong password produce the same 401 body; callers cannot tell which
// check failed.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	result, err := h.authService.Login(c.Request().Context(), req.Username, req.Password, c.RealIP())
	if err != nil {
		if errors.Is(err, domain.ErrAuthenticationFailed) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Message:  "Login successful",
		Token:    result.Token,
		ID:       result.UserID,
		Username: result.Username,
		Role:     result.RoleName,
	})
}

// Me returns the profile of the authenticated user, including the most
// recent successful login when one is recorded.
//
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  meResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	username, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.userService.GetByUsername(c.Request().Context(), username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Token outlived the account.
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
		}
		return err
	}

	resp := meResponse{User: toUserResponse(user)}
	if ts := h.lastLoginAt(c.Request().Context(), username); !ts.IsZero() {
		resp.LastLoginAt = &ts
	}
	return c.JSON(http.StatusOK, resp)
}

// lastLoginAt is best effort: a Redis failure degrades the response rather
// than failing it.
func (h *AuthHandler) lastLoginAt(ctx context.Context, username string) time.Time {
	if h.lastLogin == nil {
		return time.Time{}
	}
	ts, err := h.lastLogin.Get(ctx, username)
	if err != nil || ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
