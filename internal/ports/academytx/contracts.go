package academytx

import (
	"context"

	"academy-service/internal/domain"
)

//go:generate mockgen -destination=academytxmock/runner_mock.go -package=academytxmock academy-service/internal/ports/academytx Runner

// FetchOptions controls how an entity is read inside a unit of work.
type FetchOptions struct {
	// IncludeRelated loads the derived collections (courses, students, teacher).
	IncludeRelated bool
	// TrackChanges locks the fetched row until the unit of work ends.
	TrackChanges bool
}

// Repository is the storage view available inside a single unit of work.
// Getters return (nil, nil) when the entity does not exist.
type Repository interface {
	GetTeacher(ctx context.Context, id int64, opts FetchOptions) (*domain.Teacher, error)
	ListTeachers(ctx context.Context) ([]domain.Teacher, error)
	InsertTeacher(ctx context.Context, t *domain.Teacher) error
	UpdateTeacher(ctx context.Context, t *domain.Teacher) error
	DeleteTeacher(ctx context.Context, id int64) error

	GetStudent(ctx context.Context, id int64, opts FetchOptions) (*domain.Student, error)
	ListStudents(ctx context.Context) ([]domain.Student, error)
	InsertStudent(ctx context.Context, s *domain.Student) error
	UpdateStudent(ctx context.Context, s *domain.Student) error
	DeleteStudent(ctx context.Context, id int64) error

	GetCourse(ctx context.Context, id int64, opts FetchOptions) (*domain.Course, error)
	ListCourses(ctx context.Context) ([]domain.Course, error)
	InsertCourse(ctx context.Context, c *domain.Course) error
	UpdateCourse(ctx context.Context, c *domain.Course) error
	DeleteCourse(ctx context.Context, id int64) error

	InsertEnrollment(ctx context.Context, e domain.Enrollment) error
	DeleteEnrollment(ctx context.Context, e domain.Enrollment) error
}

// Runner executes fn inside one unit of work. WithTx commits once when fn returns nil
// and rolls back otherwise. WithReadTx never persists anything; writes and
// TrackChanges reads fail inside it.
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
	WithReadTx(ctx context.Context, fn func(tx Repository) error) error
}
