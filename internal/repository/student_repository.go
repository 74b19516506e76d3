package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Abdulkadar0710/Student-Dashboard-task/internal/models"
	apperrors "github.com/Abdulkadar0710/Student-Dashboard-task/pkg/errors"
	"github.com/Abdulkadar0710/Student-Dashboard-task/pkg/metrics"
)

// StudentRepository provides access to the student record collection.
// Records are never cached: every call goes to the database.
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		pool: pool,
	}
}

// studentRow is the scan target for student queries. enrollment_date and
// phone are nullable in the schema.
type studentRow struct {
	ID             string
	Name           string
	Email          string
	Phone          *string
	Course         string
	EnrollmentDate *time.Time
}

func (r studentRow) toModel() *models.Student {
	s := &models.Student{
		ID:     r.ID,
		Name:   r.Name,
		Email:  r.Email,
		Course: r.Course,
	}
	if r.Phone != nil {
		s.Phone = *r.Phone
	}
	if r.EnrollmentDate != nil {
		s.EnrollmentDate = r.EnrollmentDate.Format("2006-01-02")
	}
	return s
}

// ListAll returns every student record in insertion order. The in-memory
// filter preserves this order, so the API surfaces a stable listing.
func (r *StudentRepository) ListAll(ctx context.Context) ([]*models.Student, error) {
	start := time.Now()
	operation := "listStudents"

	query := `
		SELECT id, name, email, phone, course, enrollment_date
		FROM students
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		recordDBMetrics(operation, "error", start)
		return nil, apperrors.DataAccessError("failed to list students", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		var row studentRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Email, &row.Phone, &row.Course, &row.EnrollmentDate); err != nil {
			recordDBMetrics(operation, "error", start)
			return nil, apperrors.DataAccessError("failed to scan student", err)
		}
		students = append(students, row.toModel())
	}
	if err := rows.Err(); err != nil {
		// All-or-nothing: a mid-stream failure discards partial results
		recordDBMetrics(operation, "error", start)
		return nil, apperrors.DataAccessError("failed to read students", err)
	}

	recordDBMetrics(operation, "success", start)
	return students, nil
}

// GetByID returns the student with the given identifier. A missing record
// yields ErrNotFound, which is distinct from a backend failure.
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	start := time.Now()
	operation := "getStudent"

	query := `
		SELECT id, name, email, phone, course, enrollment_date
		FROM students
		WHERE id = $1
	`

	var row studentRow
	err := r.pool.QueryRow(ctx, query, id).Scan(&row.ID, &row.Name, &row.Email, &row.Phone, &row.Course, &row.EnrollmentDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			recordDBMetrics(operation, "not_found", start)
			return nil, apperrors.NotFoundError("student")
		}
		recordDBMetrics(operation, "error", start)
		return nil, apperrors.DataAccessError("failed to get student", err)
	}

	recordDBMetrics(operation, "success", start)
	return row.toModel(), nil
}

// Create inserts one student record and returns it with the database-assigned
// identifier. Retrying after a timeout may create a duplicate record; there
// is no client-supplied idempotency key.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) (*models.Student, error) {
	start := time.Now()
	operation := "createStudent"

	query := `
		INSERT INTO students (name, email, phone, course, enrollment_date)
		VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, '')::date)
		RETURNING id, name, email, phone, course, enrollment_date
	`

	var row studentRow
	err := r.pool.QueryRow(ctx, query,
		student.Name,
		student.Email,
		student.Phone,
		student.Course,
		student.EnrollmentDate,
	).Scan(&row.ID, &row.Name, &row.Email, &row.Phone, &row.Course, &row.EnrollmentDate)
	if err != nil {
		recordDBMetrics(operation, "error", start)
		return nil, apperrors.DataAccessError("failed to create student", err)
	}

	recordDBMetrics(operation, "success", start)
	return row.toModel(), nil
}

func recordDBMetrics(operation, status string, start time.Time) {
	duration := metrics.MeasureDuration(start)
	metrics.DBRequestDuration.WithLabelValues(operation, status).Observe(duration)
	metrics.DBRequestTotal.WithLabelValues(operation, status).Inc()
}
