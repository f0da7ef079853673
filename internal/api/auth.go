package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/chefcourse/backend/internal/metrics"
	"github.com/pageza/chefcourse/backend/internal/service"
	"github.com/pageza/chefcourse/backend/internal/types"
)

// AuthHandler serves registration, login, password reset and the current
// user's profile.
type AuthHandler struct {
	auth    service.IAuthService
	metrics *metrics.Metrics
	log     *slog.Logger
}

func NewAuthHandler(auth service.IAuthService, m *metrics.Metrics, log *slog.Logger) *AuthHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AuthHandler{auth: auth, metrics: m, log: log}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := h.auth.Register(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.metrics.Inc(metrics.UsersRegistered)
	h.log.InfoContext(c.Request.Context(), "user registered", slog.String("user_id", user.ID.String()))

	c.JSON(http.StatusCreated, types.AuthResponse{
		Message: "User registered successfully",
		Token:   token,
		User:    types.NewUserResponse(user),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := h.auth.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.metrics.Inc(metrics.LoginFailures)
		}
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, types.AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    types.NewUserResponse(user),
	})
}

// RequestReset opens a password reset window. The response is the same
// whether or not the email is registered.
func (h *AuthHandler) RequestReset(c *gin.Context) {
	var req types.RequestResetRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.auth.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, types.MessageResponse{
		Message: "If that email is registered, a password reset has been started.",
	})
}

func (h *AuthHandler) ForgetPassword(c *gin.Context) {
	var req types.ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.auth.ResetPassword(c.Request.Context(), &req); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, types.MessageResponse{Message: "Password has been successfully reset!"})
}

// GetUser returns the authenticated caller's profile.
func (h *AuthHandler) GetUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.auth.FindByID(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, types.ProfileResponse{
		ID:       user.ID,
		Name:     user.Username,
		Email:    user.Email,
		IsActive: user.IsActive,
		Role:     user.Role,
	})
}
