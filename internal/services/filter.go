package services

import (
	"strings"

	"github.com/Abdulkadar0710/Student-Dashboard-task/internal/models"
)

// FilterStudents returns the subset of students matching a free-text query
// and an optional course selector.
//
// The text query matches case-insensitively as a substring of the name or
// the email; an empty query matches everything. The course selector matches
// by exact, case-sensitive equality; an empty selector matches everything.
// The result is the intersection of both, preserving input order. The
// predicate is recomputed in full on every call.
func FilterStudents(students []*models.Student, query, course string) []*models.Student {
	result := make([]*models.Student, 0, len(students))
	q := strings.ToLower(query)

	for _, s := range students {
		if q != "" &&
			!strings.Contains(strings.ToLower(s.Name), q) &&
			!strings.Contains(strings.ToLower(s.Email), q) {
			continue
		}
		if course != "" && s.Course != course {
			continue
		}
		result = append(result, s)
	}

	return result
}
