package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abdulkadar0710/Student-Dashboard-task/internal/models"
	"github.com/Abdulkadar0710/Student-Dashboard-task/internal/services"
	apperrors "github.com/Abdulkadar0710/Student-Dashboard-task/pkg/errors"
)

// StudentHandler handles student record requests
type StudentHandler struct {
	studentService services.StudentServiceInterface
}

// NewStudentHandler creates a new StudentHandler
func NewStudentHandler(studentService services.StudentServiceInterface) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// List returns the filtered student collection. The query parameter matches
// name or email as a case-insensitive substring; the course parameter must
// match exactly. A course nobody is enrolled in yields an empty list, not
// an error.
func (h *StudentHandler) List(c *gin.Context) {
	query := c.Query("query")
	course := c.Query("course")

	students, err := h.studentService.ListStudents(c.Request.Context(), query, course)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to load students", err)
		return
	}

	c.JSON(http.StatusOK, models.StudentListResponse{
		Students: students,
		Total:    len(students),
	})
}

// GetByID returns a single student record. A missing record is 404;
// a store failure is 500. Clients rely on the distinction.
func (h *StudentHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondError(c, http.StatusBadRequest, "Student ID is required", nil)
		return
	}

	student, err := h.studentService.GetStudentByID(c.Request.Context(), id)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Student not found", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to load student", err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// Create adds a new student record and returns it with its assigned ID
func (h *StudentHandler) Create(c *gin.Context) {
	var req models.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request", ParseValidationErrors(err), err)
		return
	}

	if !models.Course(req.Course).IsValid() {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request", []ValidationError{
			{Field: "Course", Message: "Course must be one of the offered subjects"},
		}, nil)
		return
	}

	student, err := h.studentService.CreateStudent(c.Request.Context(), &req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to save student", err)
		return
	}

	c.JSON(http.StatusCreated, student)
}

// Courses returns the offered course list, in display order
func (h *StudentHandler) Courses(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"courses": h.studentService.Courses()})
}
