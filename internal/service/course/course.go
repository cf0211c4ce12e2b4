package course

import (
	"context"
	"time"

	"academy-service/internal/apperr"
	"academy-service/internal/domain"
	"academy-service/internal/logx"
	"academy-service/internal/metrics"
	"academy-service/internal/ports/academytx"
	"academy-service/internal/service/lookup"
)

// Service coordinates course business logic, teacher appointment and student exclusion.
type Service struct {
	runner           academytx.Runner
	operationTimeout time.Duration
	logger           logx.Logger
	changes          changeCounter
}

// NewService creates and configures a course Service.
func NewService(runner academytx.Runner, timeout time.Duration, logger logx.Logger, changes changeCounter) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	if changes == nil {
		changes = nopCounter{}
	}
	return &Service{
		runner:           runner,
		operationTimeout: timeout,
		logger:           logger,
		changes:          changes,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Create persists a new course without a teacher.
func (s *Service) Create(ctx context.Context, in domain.NewCourse) (*domain.Course, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	c := &domain.Course{Title: in.Title}
	if err := s.runner.WithTx(ctx, func(tx academytx.Repository) error {
		return tx.InsertCourse(ctx, c)
	}); err != nil {
		return nil, err
	}
	c.Students = []domain.Student{}

	s.logger.Info("course created", logx.Int64("course_id", c.ID))
	return c, nil
}

// Get returns a course with its teacher and enrolled students.
func (s *Service) Get(ctx context.Context, id int64, trackChanges bool) (*domain.Course, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var out *domain.Course
	err := lookup.Read(ctx, s.runner, trackChanges, func(tx academytx.Repository) error {
		c, err := lookup.Course(ctx, tx, id, lookup.Opts(true, trackChanges))
		out = c
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List returns all courses ordered by id.
func (s *Service) List(ctx context.Context) ([]domain.Course, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var out []domain.Course
	err := s.runner.WithReadTx(ctx, func(tx academytx.Repository) error {
		list, err := tx.ListCourses(ctx)
		out = list
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update overlays the present fields of u onto the stored course.
func (s *Service) Update(ctx context.Context, id int64, u domain.CourseUpdate, trackChanges bool) error {
	if err := u.Validate(); err != nil {
		return err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if u.Empty() {
		return lookup.Read(ctx, s.runner, trackChanges, func(tx academytx.Repository) error {
			_, err := lookup.Course(ctx, tx, id, lookup.Opts(false, trackChanges))
			return err
		})
	}

	return s.runner.WithTx(ctx, func(tx academytx.Repository) error {
		c, err := lookup.Course(ctx, tx, id, lookup.Opts(false, trackChanges))
		if err != nil {
			return err
		}
		if !u.Apply(c) {
			return nil
		}
		return tx.UpdateCourse(ctx, c)
	})
}

// Delete removes a course and its enrollments.
func (s *Service) Delete(ctx context.Context, id int64, trackChanges bool) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.runner.WithTx(ctx, func(tx academytx.Repository) error {
		if _, err := lookup.Course(ctx, tx, id, lookup.Opts(false, trackChanges)); err != nil {
			return err
		}
		return tx.DeleteCourse(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("course deleted", logx.Int64("course_id", id))
	return nil
}

// AppointTeacherForCourse assigns the teacher to the course and applies u to the course.
// A course that already has a teacher is reassigned; the previous teacher loses it.
func (s *Service) AppointTeacherForCourse(
	ctx context.Context,
	courseID, teacherID int64,
	u domain.CourseUpdate,
	trackChanges bool,
) error {
	if err := u.Validate(); err != nil {
		return err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var previous *int64
	err := s.runner.WithTx(ctx, func(tx academytx.Repository) error {
		t, err := lookup.Teacher(ctx, tx, teacherID, lookup.Opts(false, trackChanges))
		if err != nil {
			return err
		}
		c, err := lookup.Course(ctx, tx, courseID, lookup.Opts(false, trackChanges))
		if err != nil {
			return err
		}

		previous = c.TeacherID
		c.AssignTeacher(t)
		u.Apply(c)
		return tx.UpdateCourse(ctx, c)
	})
	if err != nil {
		return err
	}

	s.changes.Inc(metrics.OpAppoint)
	fields := []logx.Field{
		logx.String("event", "teacher_appointed"),
		logx.Int64("course_id", courseID),
		logx.Int64("teacher_id", teacherID),
	}
	if previous != nil && *previous != teacherID {
		fields = append(fields, logx.Int64Ptr("previous_teacher_id", previous))
	}
	s.logger.Info("teacher appointed for course", fields...)
	return nil
}

// ExcludeStudentFromCourse removes the student's enrollment and applies u to the course.
// The student is resolved before the course.
func (s *Service) ExcludeStudentFromCourse(
	ctx context.Context,
	courseID, studentID int64,
	u domain.CourseUpdate,
	trackChanges bool,
) error {
	if err := u.Validate(); err != nil {
		return err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.runner.WithTx(ctx, func(tx academytx.Repository) error {
		if _, err := lookup.Student(ctx, tx, studentID, lookup.Opts(false, trackChanges)); err != nil {
			return err
		}
		c, err := lookup.Course(ctx, tx, courseID, lookup.Opts(true, trackChanges))
		if err != nil {
			return err
		}
		if !c.HasStudent(studentID) {
			return apperr.StudentCourseNotConnected(studentID, courseID)
		}

		if err := tx.DeleteEnrollment(ctx, domain.Enrollment{StudentID: studentID, CourseID: courseID}); err != nil {
			return err
		}
		if u.Apply(c) {
			return tx.UpdateCourse(ctx, c)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.changes.Inc(metrics.OpExclude)
	s.logger.Info("student excluded from course",
		logx.String("event", "student_excluded"),
		logx.Int64("course_id", courseID),
		logx.Int64("student_id", studentID),
	)
	return nil
}
