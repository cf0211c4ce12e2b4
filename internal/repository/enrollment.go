package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"academy-service/internal/apperr"
	"academy-service/internal/domain"
)

// InsertEnrollment - links a student with a course.
func (r *TxRepo) InsertEnrollment(ctx context.Context, e domain.Enrollment) error {
	_, err := r.exec(ctx, r.sb.Insert("enrollments").
		Columns("student_id", "course_id").
		Values(e.StudentID, e.CourseID))
	if err != nil {
		if IsDuplicate(err) {
			return apperr.StudentCourseAlreadyConnected(e.StudentID, e.CourseID)
		}
		return fmt.Errorf("insert enrollment (%d,%d): %w", e.StudentID, e.CourseID, err)
	}
	return nil
}

// DeleteEnrollment - removes the link between a student and a course.
func (r *TxRepo) DeleteEnrollment(ctx context.Context, e domain.Enrollment) error {
	n, err := r.exec(ctx, r.sb.Delete("enrollments").
		Where(squirrel.Eq{"student_id": e.StudentID, "course_id": e.CourseID}))
	if err != nil {
		return fmt.Errorf("delete enrollment (%d,%d): %w", e.StudentID, e.CourseID, err)
	}
	if n == 0 {
		return fmt.Errorf("delete enrollment (%d,%d): %w", e.StudentID, e.CourseID, apperr.ErrNotFound)
	}
	return nil
}
