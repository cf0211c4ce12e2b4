package domain

// Enrollment is the authoritative Student–Course link.
type Enrollment struct {
	StudentID int64
	CourseID  int64
}
