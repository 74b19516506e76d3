package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/Abdulkadar0710/Student-Dashboard-task/config"
	"github.com/Abdulkadar0710/Student-Dashboard-task/internal/models"
	"github.com/Abdulkadar0710/Student-Dashboard-task/internal/repository"
	"github.com/Abdulkadar0710/Student-Dashboard-task/internal/services"
	"github.com/Abdulkadar0710/Student-Dashboard-task/internal/session"
	apperrors "github.com/Abdulkadar0710/Student-Dashboard-task/pkg/errors"
)

func testConfig() *config.Config {
	return &config.Config{
		Session: config.SessionConfig{
			JWTSecret:       "test-secret-key-for-unit-tests-only!",
			JWTIssuer:       "test",
			SessionTTLHours: 1,
		},
	}
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func newAuthService(userRepo repository.UserRepositoryInterface) (*services.AuthService, *session.Manager) {
	sessions := session.NewManager()
	sessions.Resolve(nil)
	return services.NewAuthService(userRepo, testConfig(), sessions, session.NewRevocationStore()), sessions
}

func TestAuthService_Login_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service, sessions := newAuthService(mockRepo)
	ctx := context.Background()

	user := &models.User{
		ID:           "user-1",
		Email:        "admin@school.edu",
		PasswordHash: hashPassword(t, "correct horse"),
	}
	mockRepo.On("GetByEmail", ctx, "admin@school.edu").Return(user, nil).Once()

	userSession, token, err := service.Login(ctx, "admin@school.edu", "correct horse")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "user-1", userSession.UserID)
	assert.Equal(t, "admin@school.edu", userSession.Email)

	state, identity := sessions.Current()
	assert.Equal(t, session.StateAuthenticated, state)
	assert.Equal(t, "user-1", identity.UserID)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service, sessions := newAuthService(mockRepo)
	ctx := context.Background()

	user := &models.User{
		ID:           "user-1",
		Email:        "admin@school.edu",
		PasswordHash: hashPassword(t, "correct horse"),
	}
	mockRepo.On("GetByEmail", ctx, "admin@school.edu").Return(user, nil).Once()

	userSession, token, err := service.Login(ctx, "admin@school.edu", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	assert.Nil(t, userSession)
	assert.Empty(t, token)

	// A failed attempt must not change the session state
	state, _ := sessions.Current()
	assert.Equal(t, session.StateAnonymous, state)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service, _ := newAuthService(mockRepo)
	ctx := context.Background()

	mockRepo.On("GetByEmail", ctx, "nobody@school.edu").
		Return(nil, apperrors.NotFoundError("user")).Once()

	_, _, err := service.Login(ctx, "nobody@school.edu", "whatever")

	// Unknown email and wrong password are indistinguishable to the caller
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login_BackendUnavailable(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service, sessions := newAuthService(mockRepo)
	ctx := context.Background()

	mockRepo.On("GetByEmail", ctx, "admin@school.edu").
		Return(nil, apperrors.DataAccessError("get user", assert.AnError)).Once()

	_, _, err := service.Login(ctx, "admin@school.edu", "correct horse")
	assert.ErrorIs(t, err, services.ErrAuthBackendUnavailable)
	assert.True(t, apperrors.Is(err, apperrors.ErrAuthentication))

	state, _ := sessions.Current()
	assert.Equal(t, session.StateAnonymous, state)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Signup_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service, sessions := newAuthService(mockRepo)
	ctx := context.Background()

	created := &models.User{ID: "user-2", Email: "new@school.edu"}
	mockRepo.On("Create", ctx, "new@school.edu", mock.AnythingOfType("string")).
		Return(created, nil).Once()

	userSession, token, err := service.Signup(ctx, "new@school.edu", "longpassword")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "user-2", userSession.UserID)

	state, identity := sessions.Current()
	assert.Equal(t, session.StateAuthenticated, state)
	assert.Equal(t, "new@school.edu", identity.Email)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Signup_EmailTaken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service, _ := newAuthService(mockRepo)
	ctx := context.Background()

	mockRepo.On("Create", ctx, "taken@school.edu", mock.AnythingOfType("string")).
		Return(nil, repository.ErrEmailTaken).Once()

	_, _, err := service.Signup(ctx, "taken@school.edu", "longpassword")
	assert.ErrorIs(t, err, services.ErrEmailAlreadyRegistered)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Logout_TransitionsToAnonymous(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service, sessions := newAuthService(mockRepo)
	ctx := context.Background()

	user := &models.User{
		ID:           "user-1",
		Email:        "admin@school.edu",
		PasswordHash: hashPassword(t, "correct horse"),
	}
	mockRepo.On("GetByEmail", ctx, "admin@school.edu").Return(user, nil).Once()

	userSession, token, err := service.Login(ctx, "admin@school.edu", "correct horse")
	assert.NoError(t, err)

	claims, err := service.GetTokenManager().ValidateToken(token)
	assert.NoError(t, err)

	service.Logout(claims.ID, userSession.ExpiresAt)

	state, identity := sessions.Current()
	assert.Equal(t, session.StateAnonymous, state)
	assert.Nil(t, identity)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	sessions := session.NewManager()
	sessions.Resolve(nil)
	revocations := session.NewRevocationStore()
	service := services.NewAuthService(mockRepo, testConfig(), sessions, revocations)
	ctx := context.Background()

	user := &models.User{
		ID:           "user-1",
		Email:        "admin@school.edu",
		PasswordHash: hashPassword(t, "correct horse"),
	}
	mockRepo.On("GetByEmail", ctx, "admin@school.edu").Return(user, nil).Once()

	userSession, token, err := service.Login(ctx, "admin@school.edu", "correct horse")
	assert.NoError(t, err)

	claims, err := service.GetTokenManager().ValidateToken(token)
	assert.NoError(t, err)
	assert.False(t, revocations.IsRevoked(claims.ID))

	service.Logout(claims.ID, userSession.ExpiresAt)
	assert.True(t, revocations.IsRevoked(claims.ID))
	mockRepo.AssertExpectations(t)
}
