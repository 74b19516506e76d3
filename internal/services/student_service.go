package services

import (
	"context"

	"github.com/Abdulkadar0710/Student-Dashboard-task/config"
	"github.com/Abdulkadar0710/Student-Dashboard-task/internal/models"
	"github.com/Abdulkadar0710/Student-Dashboard-task/internal/repository"
	"github.com/Abdulkadar0710/Student-Dashboard-task/pkg/httpclient"
	"github.com/Abdulkadar0710/Student-Dashboard-task/pkg/logger"
	"github.com/Abdulkadar0710/Student-Dashboard-task/pkg/metrics"
	"github.com/Abdulkadar0710/Student-Dashboard-task/pkg/trigger"
	"go.uber.org/zap"
)

// StudentService exposes the record operations consumed by handlers.
// There is no caching layer: every call reads through to the repository.
type StudentService struct {
	studentRepo repository.StudentRepositoryInterface
	config      *config.Config
	httpClient  httpclient.Client
}

// NewStudentService creates a new StudentService
func NewStudentService(studentRepo repository.StudentRepositoryInterface, cfg *config.Config, httpClient httpclient.Client) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		config:      cfg,
		httpClient:  httpClient,
	}
}

// ListStudents returns the record set, filtered by the free-text query and
// course selector. The full set is fetched on every call and the filter is
// applied in memory.
func (s *StudentService) ListStudents(ctx context.Context, query, course string) ([]*models.Student, error) {
	students, err := s.studentRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := "no"
	if query != "" || course != "" {
		filtered = "yes"
	}
	metrics.StudentListRequests.WithLabelValues(filtered).Inc()

	return FilterStudents(students, query, course), nil
}

// GetStudentByID returns one record; ErrNotFound when absent
func (s *StudentService) GetStudentByID(ctx context.Context, id string) (*models.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// CreateStudent persists a new record and returns it with the assigned
// identifier. The request is assumed validated by the handler; the gateway
// itself performs no validation.
func (s *StudentService) CreateStudent(ctx context.Context, req *models.CreateStudentRequest) (*models.Student, error) {
	student := &models.Student{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Course:         req.Course,
		EnrollmentDate: req.EnrollmentDate,
	}

	created, err := s.studentRepo.Create(ctx, student)
	if err != nil {
		metrics.StudentsCreated.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.StudentsCreated.WithLabelValues("success").Inc()
	logger.Info("Student created",
		zap.String("student_id", created.ID),
		zap.String("course", created.Course))

	if s.config.EventTriggers.StudentCreatedTriggerURL != "" {
		payload := map[string]interface{}{
			"type":       "student_created",
			"student_id": created.ID,
			"course":     created.Course,
		}
		trigger.CallAsyncWithPayload(s.config.EventTriggers.StudentCreatedTriggerURL, payload, s.httpClient)
	}

	return created, nil
}

// Courses returns the enumerated course list offered by the school
func (s *StudentService) Courses() []models.Course {
	return models.AllCourses
}
