package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Abdulkadar0710/Student-Dashboard-task/internal/models"
	"github.com/Abdulkadar0710/Student-Dashboard-task/internal/session"
	"github.com/Abdulkadar0710/Student-Dashboard-task/pkg/jwt"
	"github.com/gin-gonic/gin"
)

const (
	// SessionCookieName is the name of the session cookie
	SessionCookieName = "student_dashboard_session"

	// SessionContextKey is the key used to store session in context
	SessionContextKey = "user_session"

	// TokenIDContextKey is the key used to store the token ID (for logout revocation)
	TokenIDContextKey = "session_token_id"
)

var (
	ErrSessionNotFound = errors.New("session not found in context")
	ErrInvalidSession  = errors.New("invalid session type")
)

// SessionMiddleware validates the JWT session cookie, rejects revoked
// tokens, and adds the session to the request context. An expired token is
// reported to the session manager as an external expiry.
func SessionMiddleware(tokenManager *jwt.TokenManager, revocations *session.RevocationStore, sessions *session.Manager, cookieDomain string, cookieSecure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(SessionCookieName)
		if err != nil {
			_ = c.Error(fmt.Errorf("missing session cookie")) //nolint:errcheck
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		claims, err := tokenManager.ValidateToken(cookie)
		if err != nil {
			_ = c.Error(fmt.Errorf("invalid session token: %w", err)) //nolint:errcheck

			// Clear invalid cookie
			clearSessionCookie(c, cookieDomain, cookieSecure)

			if errors.Is(err, jwt.ErrExpiredToken) {
				// Session ended outside an explicit logout call
				sessions.SetAnonymous()
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			}
			c.Abort()
			return
		}

		if revocations.IsRevoked(claims.ID) {
			_ = c.Error(fmt.Errorf("revoked session token")) //nolint:errcheck
			clearSessionCookie(c, cookieDomain, cookieSecure)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		userSession := &models.UserSession{
			UserID:    claims.UserID,
			Email:     claims.Email,
			ExpiresAt: claims.ExpiresAt.Unix(),
			IssuedAt:  claims.IssuedAt.Unix(),
		}

		c.Set(SessionContextKey, userSession)
		c.Set(TokenIDContextKey, claims.ID)
		c.Next()
	}
}

// GetUserSession extracts the session from context
func GetUserSession(c *gin.Context) (*models.UserSession, error) {
	val, exists := c.Get(SessionContextKey)
	if !exists {
		return nil, ErrSessionNotFound
	}

	userSession, ok := val.(*models.UserSession)
	if !ok {
		return nil, ErrInvalidSession
	}

	return userSession, nil
}

// GetTokenID extracts the session token ID from context
func GetTokenID(c *gin.Context) string {
	val, exists := c.Get(TokenIDContextKey)
	if !exists {
		return ""
	}
	id, _ := val.(string)
	return id
}

// SetSessionCookie sets the session cookie
func SetSessionCookie(c *gin.Context, token string, ttlSeconds int, domain string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		SessionCookieName,
		token,
		ttlSeconds,
		"/",
		domain,
		secure,
		true, // HttpOnly
	)
}

// ClearSessionCookie clears the session cookie
func ClearSessionCookie(c *gin.Context, domain string, secure bool) {
	clearSessionCookie(c, domain, secure)
}

func clearSessionCookie(c *gin.Context, domain string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		SessionCookieName,
		"",
		-1,
		"/",
		domain,
		secure,
		true, // HttpOnly
	)
}
