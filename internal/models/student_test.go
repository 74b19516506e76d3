package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Abdulkadar0710/Student-Dashboard-task/internal/models"
)

func TestCourse_IsValid(t *testing.T) {
	for _, course := range models.AllCourses {
		assert.True(t, course.IsValid(), "expected %q to be valid", course)
	}

	assert.False(t, models.Course("computer science").IsValid(), "matching is case-sensitive")
	assert.False(t, models.Course("Computer").IsValid())
	assert.False(t, models.Course("").IsValid())
	assert.False(t, models.Course("History").IsValid())
}

func TestStudent_JSONShape(t *testing.T) {
	s := &models.Student{
		ID:     "1",
		Name:   "Jane Smith",
		Email:  "jane.smith@example.com",
		Course: "Computer Science",
	}

	data, err := json.Marshal(s)
	assert.NoError(t, err)

	// Optional fields are omitted entirely when empty
	assert.NotContains(t, string(data), "phone")
	assert.NotContains(t, string(data), "enrollmentDate")

	s.Phone = "+1 555 0100"
	s.EnrollmentDate = "2026-01-15"
	data, err = json.Marshal(s)
	assert.NoError(t, err)
	assert.Contains(t, string(data), `"phone":"+1 555 0100"`)
	assert.Contains(t, string(data), `"enrollmentDate":"2026-01-15"`)
}

func TestUser_PasswordHashNeverSerialized(t *testing.T) {
	u := &models.User{
		ID:           "user-1",
		Email:        "admin@school.edu",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
	}

	data, err := json.Marshal(u)
	assert.NoError(t, err)
	assert.NotContains(t, string(data), "$2a$10$")
}
