package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Abdulkadar0710/Student-Dashboard-task/internal/models"
	"github.com/Abdulkadar0710/Student-Dashboard-task/internal/repository"
	"github.com/Abdulkadar0710/Student-Dashboard-task/pkg/logger"
	"github.com/Abdulkadar0710/Student-Dashboard-task/pkg/metrics"
	"github.com/Abdulkadar0710/Student-Dashboard-task/pkg/storage"
	"go.uber.org/zap"
)

// ExportService snapshots the roster to S3-compatible object storage
type ExportService struct {
	studentRepo repository.StudentRepositoryInterface
	storage     storage.ClientInterface
}

// NewExportService creates a new ExportService
func NewExportService(studentRepo repository.StudentRepositoryInterface, storageClient storage.ClientInterface) *ExportService {
	return &ExportService{
		studentRepo: studentRepo,
		storage:     storageClient,
	}
}

// ExportRoster uploads a JSON snapshot of the full record set and returns
// the object URL
func (s *ExportService) ExportRoster(ctx context.Context) (*models.ExportResponse, error) {
	students, err := s.studentRepo.ListAll(ctx)
	if err != nil {
		metrics.RosterExports.WithLabelValues("error").Inc()
		return nil, err
	}

	snapshot, err := json.MarshalIndent(students, "", "  ")
	if err != nil {
		metrics.RosterExports.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to encode roster snapshot: %w", err)
	}

	key := fmt.Sprintf("exports/students-%s.json", time.Now().UTC().Format("20060102T150405Z"))
	url, err := s.storage.UploadObject(ctx, key, "application/json", snapshot)
	if err != nil {
		metrics.RosterExports.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.RosterExports.WithLabelValues("success").Inc()
	logger.Info("Roster snapshot exported",
		zap.String("key", key),
		zap.Int("count", len(students)))

	return &models.ExportResponse{
		Success: true,
		URL:     url,
		Count:   len(students),
	}, nil
}
