// Package lookup resolves entities inside a unit of work and turns absence
// into the matching typed not-found error.
package lookup

import (
	"context"

	"academy-service/internal/apperr"
	"academy-service/internal/domain"
	"academy-service/internal/ports/academytx"
)

// Teacher fetches a teacher or fails with apperr.TeacherNotFound.
func Teacher(ctx context.Context, tx academytx.Repository, id int64, opts academytx.FetchOptions) (*domain.Teacher, error) {
	t, err := tx.GetTeacher(ctx, id, opts)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperr.TeacherNotFound(id)
	}
	return t, nil
}

// Student fetches a student or fails with apperr.StudentNotFound.
func Student(ctx context.Context, tx academytx.Repository, id int64, opts academytx.FetchOptions) (*domain.Student, error) {
	s, err := tx.GetStudent(ctx, id, opts)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, apperr.StudentNotFound(id)
	}
	return s, nil
}

// Course fetches a course or fails with apperr.CourseNotFound.
func Course(ctx context.Context, tx academytx.Repository, id int64, opts academytx.FetchOptions) (*domain.Course, error) {
	c, err := tx.GetCourse(ctx, id, opts)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.CourseNotFound(id)
	}
	return c, nil
}

// Opts builds FetchOptions for a read that optionally loads related collections.
func Opts(includeRelated, trackChanges bool) academytx.FetchOptions {
	return academytx.FetchOptions{IncludeRelated: includeRelated, TrackChanges: trackChanges}
}

// Read runs fn in a read-only unit of work. Locking reads need a read/write one,
// so trackChanges falls back to WithTx.
func Read(ctx context.Context, runner academytx.Runner, trackChanges bool, fn func(tx academytx.Repository) error) error {
	if trackChanges {
		return runner.WithTx(ctx, fn)
	}
	return runner.WithReadTx(ctx, fn)
}
