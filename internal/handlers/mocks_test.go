package handlers_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Abdulkadar0710/Student-Dashboard-task/internal/models"
	"github.com/Abdulkadar0710/Student-Dashboard-task/pkg/jwt"
)

// MockAuthService is a mock implementation of AuthServiceInterface
type MockAuthService struct {
	mock.Mock
	tokenManager *jwt.TokenManager
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.UserSession, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.UserSession), args.String(1), args.Error(2)
}

func (m *MockAuthService) Signup(ctx context.Context, email, password string) (*models.UserSession, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.UserSession), args.String(1), args.Error(2)
}

func (m *MockAuthService) Logout(tokenID string, expiresAt int64) {
	m.Called(tokenID, expiresAt)
}

func (m *MockAuthService) GetSessionTTL() int {
	return 3600
}

func (m *MockAuthService) GetCookieDomain() string {
	return ""
}

func (m *MockAuthService) GetCookieSecure() bool {
	return false
}

func (m *MockAuthService) GetTokenManager() *jwt.TokenManager {
	return m.tokenManager
}

// MockStudentService is a mock implementation of StudentServiceInterface
type MockStudentService struct {
	mock.Mock
}

func (m *MockStudentService) ListStudents(ctx context.Context, query, course string) ([]*models.Student, error) {
	args := m.Called(ctx, query, course)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Student), args.Error(1)
}

func (m *MockStudentService) GetStudentByID(ctx context.Context, id string) (*models.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStudentService) CreateStudent(ctx context.Context, req *models.CreateStudentRequest) (*models.Student, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStudentService) Courses() []models.Course {
	return models.AllCourses
}

// MockExportService is a mock implementation of ExportServiceInterface
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) ExportRoster(ctx context.Context) (*models.ExportResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExportResponse), args.Error(1)
}
