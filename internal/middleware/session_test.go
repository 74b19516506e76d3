package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Abdulkadar0710/Student-Dashboard-task/internal/middleware"
	"github.com/Abdulkadar0710/Student-Dashboard-task/internal/session"
	"github.com/Abdulkadar0710/Student-Dashboard-task/pkg/jwt"
	"github.com/Abdulkadar0710/Student-Dashboard-task/pkg/logger"
)

const testSecret = "test-secret-key-for-unit-tests-only!"

func init() {
	gin.SetMode(gin.TestMode)

	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

type sessionFixture struct {
	tokenManager *jwt.TokenManager
	revocations  *session.RevocationStore
	sessions     *session.Manager
	router       *gin.Engine
}

func newSessionFixture(t *testing.T, ttlHours int) *sessionFixture {
	t.Helper()

	f := &sessionFixture{
		tokenManager: jwt.NewTokenManager(testSecret, "test", ttlHours),
		revocations:  session.NewRevocationStore(),
		sessions:     session.NewManager(),
	}
	f.sessions.Resolve(nil)

	f.router = gin.New()
	f.router.GET("/protected",
		middleware.SessionMiddleware(f.tokenManager, f.revocations, f.sessions, "", false),
		func(c *gin.Context) {
			userSession, err := middleware.GetUserSession(c)
			assert.NoError(t, err)
			c.JSON(http.StatusOK, gin.H{
				"user_id":  userSession.UserID,
				"token_id": middleware.GetTokenID(c),
			})
		})
	return f
}

func (f *sessionFixture) request(token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestSessionMiddleware_ValidToken(t *testing.T) {
	f := newSessionFixture(t, 1)

	token, err := f.tokenManager.GenerateToken("user-1", "admin@school.edu")
	assert.NoError(t, err)

	w := f.request(token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}

func TestSessionMiddleware_MissingCookie(t *testing.T) {
	f := newSessionFixture(t, 1)

	w := f.request("")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionMiddleware_GarbageToken(t *testing.T) {
	f := newSessionFixture(t, 1)

	w := f.request("not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionMiddleware_ExpiredToken(t *testing.T) {
	// Zero TTL issues an already expired token
	f := newSessionFixture(t, 0)

	token, err := f.tokenManager.GenerateToken("user-1", "admin@school.edu")
	assert.NoError(t, err)

	w := f.request(token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Session expired")

	// Expiry outside an explicit logout still drops the shared state
	state, _ := f.sessions.Current()
	assert.Equal(t, session.StateAnonymous, state)

	// And the stale cookie is cleared
	cookies := w.Result().Cookies()
	assert.NotEmpty(t, cookies)
	assert.Empty(t, cookies[0].Value)
}

func TestSessionMiddleware_RevokedToken(t *testing.T) {
	f := newSessionFixture(t, 1)

	token, err := f.tokenManager.GenerateToken("user-1", "admin@school.edu")
	assert.NoError(t, err)
	claims, err := f.tokenManager.ValidateToken(token)
	assert.NoError(t, err)

	// Works before revocation
	assert.Equal(t, http.StatusOK, f.request(token).Code)

	f.revocations.Revoke(claims.ID, f.tokenManager.GetExpirationTime())

	// Rejected after
	assert.Equal(t, http.StatusUnauthorized, f.request(token).Code)
}

func TestSessionMiddleware_RevocationIsPerToken(t *testing.T) {
	f := newSessionFixture(t, 1)

	first, err := f.tokenManager.GenerateToken("user-1", "admin@school.edu")
	assert.NoError(t, err)
	second, err := f.tokenManager.GenerateToken("user-1", "admin@school.edu")
	assert.NoError(t, err)

	claims, err := f.tokenManager.ValidateToken(first)
	assert.NoError(t, err)
	f.revocations.Revoke(claims.ID, f.tokenManager.GetExpirationTime())

	assert.Equal(t, http.StatusUnauthorized, f.request(first).Code)
	assert.Equal(t, http.StatusOK, f.request(second).Code)
}
