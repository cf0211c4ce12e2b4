package handlers

import (
	"context"

	"academy-service/internal/domain"
	"academy-service/internal/service/course"
	"academy-service/internal/service/student"
	"academy-service/internal/service/teacher"
)

type teacherUsecase interface {
	Create(ctx context.Context, in domain.NewTeacher) (*domain.Teacher, error)
	Get(ctx context.Context, id int64, trackChanges bool) (*domain.Teacher, error)
	List(ctx context.Context) ([]domain.Teacher, error)
	Update(ctx context.Context, id int64, u domain.TeacherUpdate, trackChanges bool) error
	Delete(ctx context.Context, id int64, trackChanges bool) error
	ResignTeacherFromCourse(ctx context.Context, teacherID, courseID int64, u domain.TeacherUpdate, trackChanges bool) error
}

// NewTeacherUsecase wires a teacher Service into a teacherUsecase.
func NewTeacherUsecase(svc *teacher.Service) teacherUsecase {
	return svc
}

type studentUsecase interface {
	Create(ctx context.Context, in domain.NewStudent) (*domain.Student, error)
	Get(ctx context.Context, id int64, trackChanges bool) (*domain.Student, error)
	List(ctx context.Context) ([]domain.Student, error)
	Update(ctx context.Context, id int64, u domain.StudentUpdate, trackChanges bool) error
	Delete(ctx context.Context, id int64, trackChanges bool) error
	EnrollStudentInCourse(ctx context.Context, studentID, courseID int64, u domain.StudentUpdate, trackChanges bool) error
}

// NewStudentUsecase wires a student Service into a studentUsecase.
func NewStudentUsecase(svc *student.Service) studentUsecase {
	return svc
}

type courseUsecase interface {
	Create(ctx context.Context, in domain.NewCourse) (*domain.Course, error)
	Get(ctx context.Context, id int64, trackChanges bool) (*domain.Course, error)
	List(ctx context.Context) ([]domain.Course, error)
	Update(ctx context.Context, id int64, u domain.CourseUpdate, trackChanges bool) error
	Delete(ctx context.Context, id int64, trackChanges bool) error
	AppointTeacherForCourse(ctx context.Context, courseID, teacherID int64, u domain.CourseUpdate, trackChanges bool) error
	ExcludeStudentFromCourse(ctx context.Context, courseID, studentID int64, u domain.CourseUpdate, trackChanges bool) error
}

// NewCourseUsecase wires a course Service into a courseUsecase.
func NewCourseUsecase(svc *course.Service) courseUsecase {
	return svc
}
