package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abdulkadar0710/Student-Dashboard-task/internal/middleware"
	"github.com/Abdulkadar0710/Student-Dashboard-task/internal/models"
	"github.com/Abdulkadar0710/Student-Dashboard-task/internal/services"
	"github.com/Abdulkadar0710/Student-Dashboard-task/pkg/jwt"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	authService services.AuthServiceInterface
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService services.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login verifies credentials and sets the session cookie.
// A failed attempt returns 401 and leaves any existing session untouched.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request", ParseValidationErrors(err), err)
		return
	}

	userSession, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "Invalid email or password", err)
			return
		}
		respondError(c, http.StatusServiceUnavailable, "Authentication service unavailable", err)
		return
	}

	middleware.SetSessionCookie(c, token,
		h.authService.GetSessionTTL(),
		h.authService.GetCookieDomain(),
		h.authService.GetCookieSecure())

	c.JSON(http.StatusOK, models.AuthResponse{
		Success: true,
		Session: userSession,
	})
}

// Signup creates an account and immediately establishes a session for it
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request", ParseValidationErrors(err), err)
		return
	}

	userSession, token, err := h.authService.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailAlreadyRegistered) {
			respondError(c, http.StatusConflict, "Email already registered", err)
			return
		}
		respondError(c, http.StatusServiceUnavailable, "Authentication service unavailable", err)
		return
	}

	middleware.SetSessionCookie(c, token,
		h.authService.GetSessionTTL(),
		h.authService.GetCookieDomain(),
		h.authService.GetCookieSecure())

	c.JSON(http.StatusCreated, models.AuthResponse{
		Success: true,
		Session: userSession,
	})
}

// Logout revokes the current session token and clears the cookie.
// Idempotent: a request without a valid cookie still succeeds.
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie, err := c.Cookie(middleware.SessionCookieName)
	if err == nil && cookie != "" {
		if claims, validateErr := h.authService.GetTokenManager().ValidateToken(cookie); validateErr == nil {
			h.authService.Logout(claims.ID, claims.ExpiresAt.Unix())
		} else if !errors.Is(validateErr, jwt.ErrExpiredToken) {
			attachError(c, validateErr)
		}
	}

	middleware.ClearSessionCookie(c,
		h.authService.GetCookieDomain(),
		h.authService.GetCookieSecure())

	c.JSON(http.StatusOK, models.LogoutResponse{Success: true})
}

// Session returns the current session. Runs behind the session middleware,
// so reaching this handler means the cookie was valid.
func (h *AuthHandler) Session(c *gin.Context) {
	userSession, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{
		Success: true,
		Session: userSession,
	})
}
