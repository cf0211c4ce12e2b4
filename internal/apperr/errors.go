package apperr

import (
	"errors"
	"fmt"
)

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrConflict indicates a uniqueness or state conflict (HTTP 409).
var ErrConflict = errors.New("conflict")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrAlreadyConnected indicates that a link between two entities already exists.
var ErrAlreadyConnected = errors.New("already connected")

// ErrNotConnected indicates that a link the operation needs to remove does not exist.
var ErrNotConnected = errors.New("not connected")

// Kind names the entity an error refers to.
type Kind string

const (
	KindTeacher Kind = "teacher"
	KindStudent Kind = "student"
	KindCourse  Kind = "course"
)

// NotFoundError reports a missing entity together with the identifier that was looked up.
type NotFoundError struct {
	Kind Kind
	ID   int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("the %s with id %d doesn't exist in the database", e.Kind, e.ID)
}

// Is makes errors.Is(err, ErrNotFound) hold for every NotFoundError.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// TeacherNotFound returns the error for a missing teacher.
func TeacherNotFound(id int64) error { return &NotFoundError{Kind: KindTeacher, ID: id} }

// StudentNotFound returns the error for a missing student.
func StudentNotFound(id int64) error { return &NotFoundError{Kind: KindStudent, ID: id} }

// CourseNotFound returns the error for a missing course.
func CourseNotFound(id int64) error { return &NotFoundError{Kind: KindCourse, ID: id} }

// AlreadyConnectedError reports an attempt to create a link that is already present.
type AlreadyConnectedError struct {
	Left    Kind
	LeftID  int64
	Right   Kind
	RightID int64
}

func (e *AlreadyConnectedError) Error() string {
	return fmt.Sprintf("the %s with id %d is already enrolled in the %s with id %d thus cannot be enrolled again",
		e.Left, e.LeftID, e.Right, e.RightID)
}

// Is matches ErrAlreadyConnected and the broader ErrConflict.
func (e *AlreadyConnectedError) Is(target error) bool {
	return target == ErrAlreadyConnected || target == ErrConflict
}

// NotConnectedError reports an attempt to remove a link that does not exist.
type NotConnectedError struct {
	Left    Kind
	LeftID  int64
	Right   Kind
	RightID int64
}

func (e *NotConnectedError) Error() string {
	if e.Left == KindTeacher {
		return fmt.Sprintf("the teacher with id %d is not assigned to the %s with id %d thus cannot be resigned from it",
			e.LeftID, e.Right, e.RightID)
	}
	return fmt.Sprintf("the %s with id %d is not enrolled in the %s with id %d thus cannot be excluded from it",
		e.Left, e.LeftID, e.Right, e.RightID)
}

// Is matches ErrNotConnected.
func (e *NotConnectedError) Is(target error) bool { return target == ErrNotConnected }

// StudentCourseAlreadyConnected is returned when enrolling a student twice.
func StudentCourseAlreadyConnected(studentID, courseID int64) error {
	return &AlreadyConnectedError{Left: KindStudent, LeftID: studentID, Right: KindCourse, RightID: courseID}
}

// StudentCourseNotConnected is returned when excluding a student that is not enrolled.
func StudentCourseNotConnected(studentID, courseID int64) error {
	return &NotConnectedError{Left: KindStudent, LeftID: studentID, Right: KindCourse, RightID: courseID}
}

// TeacherCourseNotConnected is returned when resigning a teacher from a course they do not teach.
func TeacherCourseNotConnected(teacherID, courseID int64) error {
	return &NotConnectedError{Left: KindTeacher, LeftID: teacherID, Right: KindCourse, RightID: courseID}
}
