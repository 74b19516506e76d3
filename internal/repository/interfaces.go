package repository

import (
	"context"

	"github.com/Abdulkadar0710/Student-Dashboard-task/internal/models"
)

// StudentRepositoryInterface is the record-collection contract. There is
// deliberately no update or delete: records are immutable once created.
type StudentRepositoryInterface interface {
	// ListAll returns the full current record set, unordered, all-or-nothing.
	ListAll(ctx context.Context) ([]*models.Student, error)

	// GetByID returns the matching record, or ErrNotFound when absent.
	GetByID(ctx context.Context, id string) (*models.Student, error)

	// Create persists one record and returns it with the assigned ID.
	// Performs no validation; callers validate. Not idempotent.
	Create(ctx context.Context, student *models.Student) (*models.Student, error)
}

// UserRepositoryInterface is the auth principal store contract
type UserRepositoryInterface interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, email, passwordHash string) (*models.User, error)
}

var _ StudentRepositoryInterface = (*StudentRepository)(nil)
var _ UserRepositoryInterface = (*UserRepository)(nil)
