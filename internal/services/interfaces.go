package services

import (
	"context"

	"github.com/Abdulkadar0710/Student-Dashboard-task/internal/models"
	"github.com/Abdulkadar0710/Student-Dashboard-task/pkg/jwt"
)

// AuthServiceInterface defines the session mutation entry points
type AuthServiceInterface interface {
	Login(ctx context.Context, email, password string) (*models.UserSession, string, error)
	Signup(ctx context.Context, email, password string) (*models.UserSession, string, error)
	Logout(tokenID string, expiresAt int64)
	GetSessionTTL() int
	GetCookieDomain() string
	GetCookieSecure() bool
	GetTokenManager() *jwt.TokenManager
}

// StudentServiceInterface defines the record operations
type StudentServiceInterface interface {
	ListStudents(ctx context.Context, query, course string) ([]*models.Student, error)
	GetStudentByID(ctx context.Context, id string) (*models.Student, error)
	CreateStudent(ctx context.Context, req *models.CreateStudentRequest) (*models.Student, error)
	Courses() []models.Course
}

// ExportServiceInterface defines the roster snapshot export
type ExportServiceInterface interface {
	ExportRoster(ctx context.Context) (*models.ExportResponse, error)
}

// Ensure services implement their interfaces
var _ AuthServiceInterface = (*AuthService)(nil)
var _ StudentServiceInterface = (*StudentService)(nil)
var _ ExportServiceInterface = (*ExportService)(nil)
