package models

// Course is the subject a student is enrolled in. Stored as plain text;
// the allowed set is enforced at the API boundary, not by the database.
type Course string

const (
	CourseComputerScience Course = "Computer Science"
	CourseMathematics     Course = "Mathematics"
	CoursePhysics         Course = "Physics"
	CourseChemistry       Course = "Chemistry"
	CourseBiology         Course = "Biology"
)

// AllCourses lists every course offered, in display order.
var AllCourses = []Course{
	CourseComputerScience,
	CourseMathematics,
	CoursePhysics,
	CourseChemistry,
	CourseBiology,
}

// IsValid reports whether the course is one of the offered subjects.
// Matching is case-sensitive: "computer science" is not a valid course.
func (c Course) IsValid() bool {
	for _, course := range AllCourses {
		if c == course {
			return true
		}
	}
	return false
}

// Student represents one student record in the collection. The ID is
// assigned by the database on creation and never changes afterwards.
type Student struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	Course         string `json:"course"`
	EnrollmentDate string `json:"enrollmentDate,omitempty"`
}

// CreateStudentRequest is the payload for creating a student record.
// Phone format is intentionally unvalidated; enrollment date must be an
// ISO calendar date when present.
type CreateStudentRequest struct {
	Name           string `json:"name" binding:"required,min=2,max=200"`
	Email          string `json:"email" binding:"required,email,max=255"`
	Phone          string `json:"phone" binding:"omitempty,max=50"`
	Course         string `json:"course" binding:"required"`
	EnrollmentDate string `json:"enrollmentDate" binding:"omitempty,datetime=2006-01-02"`
}

// StudentListResponse is returned by the list endpoint
type StudentListResponse struct {
	Students []*Student `json:"students"`
	Total    int        `json:"total"`
}

// ExportResponse is returned after a roster snapshot export
type ExportResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url,omitempty"`
	Count   int    `json:"count"`
}
