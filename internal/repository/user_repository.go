package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Abdulkadar0710/Student-Dashboard-task/internal/models"
	apperrors "github.com/Abdulkadar0710/Student-Dashboard-task/pkg/errors"
)

// ErrEmailTaken is returned when creating an account with an email that is
// already registered
var ErrEmailTaken = errors.New("email already registered")

// UserRepository handles auth principal data access
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		pool: pool,
	}
}

// GetByEmail returns the user with the given email, or ErrNotFound.
// Email matching is case-insensitive.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	start := time.Now()
	operation := "getUserByEmail"

	query := `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE lower(email) = lower($1)
	`

	var user models.User
	err := r.pool.QueryRow(ctx, query, email).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			recordDBMetrics(operation, "not_found", start)
			return nil, apperrors.NotFoundError("user")
		}
		recordDBMetrics(operation, "error", start)
		return nil, apperrors.DataAccessError("failed to get user", err)
	}

	recordDBMetrics(operation, "success", start)
	return &user, nil
}

// Create inserts a new user. Returns ErrEmailTaken on a unique violation.
func (r *UserRepository) Create(ctx context.Context, email, passwordHash string) (*models.User, error) {
	start := time.Now()
	operation := "createUser"

	query := `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, email, password_hash, created_at
	`

	var user models.User
	err := r.pool.QueryRow(ctx, query, email, passwordHash).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			recordDBMetrics(operation, "conflict", start)
			return nil, ErrEmailTaken
		}
		recordDBMetrics(operation, "error", start)
		return nil, apperrors.DataAccessError("failed to create user", err)
	}

	recordDBMetrics(operation, "success", start)
	return &user, nil
}
