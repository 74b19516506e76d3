package services

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Abdulkadar0710/Student-Dashboard-task/config"
	"github.com/Abdulkadar0710/Student-Dashboard-task/internal/models"
	"github.com/Abdulkadar0710/Student-Dashboard-task/internal/repository"
	"github.com/Abdulkadar0710/Student-Dashboard-task/internal/session"
	apperrors "github.com/Abdulkadar0710/Student-Dashboard-task/pkg/errors"
	"github.com/Abdulkadar0710/Student-Dashboard-task/pkg/jwt"
	"github.com/Abdulkadar0710/Student-Dashboard-task/pkg/logger"
	"github.com/Abdulkadar0710/Student-Dashboard-task/pkg/metrics"
	"go.uber.org/zap"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so the login surface never reveals which one failed
	ErrInvalidCredentials = apperrors.AuthenticationError("invalid email or password")

	// ErrEmailAlreadyRegistered is returned on signup with a taken email
	ErrEmailAlreadyRegistered = apperrors.AuthenticationError("email already registered")

	// ErrAuthBackendUnavailable is returned when the principal store cannot
	// be reached during a credential or account operation
	ErrAuthBackendUnavailable = apperrors.AuthenticationError("authentication backend unavailable")
)

// AuthService owns the login, signup and logout entry points. It is the
// only writer of the process-wide session state besides the middleware's
// expiry detection.
type AuthService struct {
	userRepo     repository.UserRepositoryInterface
	config       *config.Config
	tokenManager *jwt.TokenManager
	sessions     *session.Manager
	revocations  *session.RevocationStore
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repository.UserRepositoryInterface,
	cfg *config.Config,
	sessions *session.Manager,
	revocations *session.RevocationStore,
) *AuthService {
	tokenManager := jwt.NewTokenManager(
		cfg.Session.JWTSecret,
		cfg.Session.JWTIssuer,
		cfg.Session.SessionTTLHours,
	)

	return &AuthService{
		userRepo:     userRepo,
		config:       cfg,
		tokenManager: tokenManager,
		sessions:     sessions,
		revocations:  revocations,
	}
}

// Login verifies credentials and establishes a session. A failed login
// leaves the session state unchanged.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.UserSession, string, error) {
	start := time.Now()

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Login attempt for unknown email", zap.String("email", email))
			metrics.AuthLoginAttempts.WithLabelValues("unknown_email").Inc()
			return nil, "", ErrInvalidCredentials
		}
		logger.Error("Login failed: user lookup error", zap.Error(err))
		metrics.AuthLoginAttempts.WithLabelValues("backend_error").Inc()
		return nil, "", ErrAuthBackendUnavailable
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Warn("Login attempt with wrong password", zap.String("user_id", user.ID))
		metrics.AuthLoginAttempts.WithLabelValues("wrong_password").Inc()
		return nil, "", ErrInvalidCredentials
	}

	userSession, token, err := s.establishSession(user)
	if err != nil {
		metrics.AuthLoginAttempts.WithLabelValues("token_error").Inc()
		return nil, "", err
	}

	metrics.AuthLoginAttempts.WithLabelValues("success").Inc()
	logger.Info("Login successful",
		zap.String("user_id", user.ID),
		zap.Duration("duration", time.Since(start)))

	return userSession, token, nil
}

// Signup creates a new principal and establishes a session for it
func (s *AuthService) Signup(ctx context.Context, email, password string) (*models.UserSession, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash password", zap.Error(err))
		metrics.AuthSignupAttempts.WithLabelValues("hash_error").Inc()
		return nil, "", apperrors.AuthenticationError("failed to process credentials")
	}

	user, err := s.userRepo.Create(ctx, email, string(hash))
	if err != nil {
		if apperrors.Is(err, repository.ErrEmailTaken) {
			logger.Warn("Signup with already registered email", zap.String("email", email))
			metrics.AuthSignupAttempts.WithLabelValues("email_taken").Inc()
			return nil, "", ErrEmailAlreadyRegistered
		}
		logger.Error("Signup failed: user create error", zap.Error(err))
		metrics.AuthSignupAttempts.WithLabelValues("backend_error").Inc()
		return nil, "", ErrAuthBackendUnavailable
	}

	userSession, token, err := s.establishSession(user)
	if err != nil {
		metrics.AuthSignupAttempts.WithLabelValues("token_error").Inc()
		return nil, "", err
	}

	metrics.AuthSignupAttempts.WithLabelValues("success").Inc()
	logger.Info("Signup successful", zap.String("user_id", user.ID))

	return userSession, token, nil
}

// Logout revokes the session token and transitions the session to
// anonymous. Best-effort: callers must not assume the token was still
// valid when logout ran.
func (s *AuthService) Logout(tokenID string, expiresAt int64) {
	remaining := time.Until(time.Unix(expiresAt, 0))
	s.revocations.Revoke(tokenID, remaining)
	s.sessions.SetAnonymous()

	logger.Info("Logout", zap.String("token_id", tokenID))
}

// establishSession issues a JWT and updates the shared session state
func (s *AuthService) establishSession(user *models.User) (*models.UserSession, string, error) {
	token, err := s.tokenManager.GenerateToken(user.ID, user.Email)
	if err != nil {
		logger.Error("Failed to generate session token",
			zap.String("user_id", user.ID),
			zap.Error(err))
		return nil, "", apperrors.AuthenticationError("failed to create session")
	}

	now := time.Now()
	userSession := &models.UserSession{
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: now.Add(s.tokenManager.GetExpirationTime()).Unix(),
		IssuedAt:  now.Unix(),
	}

	s.sessions.SetAuthenticated(session.Identity{UserID: user.ID, Email: user.Email})

	return userSession, token, nil
}

// GetSessionTTL returns the session TTL in seconds
func (s *AuthService) GetSessionTTL() int {
	return s.config.Session.SessionTTLHours * 3600
}

// GetCookieDomain returns the cookie domain
func (s *AuthService) GetCookieDomain() string {
	return s.config.Session.CookieDomain
}

// GetCookieSecure returns whether cookies should be secure
func (s *AuthService) GetCookieSecure() bool {
	return s.config.Session.CookieSecure
}

// GetTokenManager returns the JWT token manager
func (s *AuthService) GetTokenManager() *jwt.TokenManager {
	return s.tokenManager
}
