package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eskalate/jobboard/internal/model"
	"github.com/eskalate/jobboard/internal/service"
)

// AuthHandler handles registration, verification and login endpoints.
type AuthHandler struct {
	authService service.AuthService
	cookieDays  int
}

// NewAuthHandler creates a new auth handler. cookieDays controls the token
// cookie lifetime.
func NewAuthHandler(authService service.AuthService, cookieDays int) *AuthHandler {
	return &AuthHandler{authService: authService, cookieDays: cookieDays}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register godoc
// @Summary Register a new applicant or company
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} Envelope
// @Failure 400 {object} Envelope
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	_, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password, model.Role(req.Role))
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "User registered, verification email sent", nil)
}

// Verify godoc
// @Summary Verify an email address
// @Tags auth
// @Produce json
// @Param token query string true "Verification token"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /auth/verify [get]
func (h *AuthHandler) Verify(c echo.Context) error {
	outcome, err := h.authService.VerifyEmail(c.Request().Context(), c.QueryParam("token"))
	if err != nil {
		return err
	}

	switch outcome {
	case service.AlreadyVerified:
		return respond(c, http.StatusOK, "Email already verified", nil)
	case service.VerificationReissued:
		return respond(c, http.StatusOK, "Token expired, new verification email sent", nil)
	default:
		return respond(c, http.StatusOK, "Email verified successfully", nil)
	}
}

// Login godoc
// @Summary Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} Envelope
// @Failure 401 {object} Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(time.Duration(h.cookieDays) * 24 * time.Hour),
		HttpOnly: true,
		Path:     "/",
	})

	return respond(c, http.StatusOK, "Success", echo.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
		"token": token,
	})
}
