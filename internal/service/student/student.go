package student

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

// Service coordinates student business logic and enrollment.
type Service struct {
	runner           academytx.Runner
	operationTimeout time.Duration
	logger           logx.Logger
	changes          changeCounter
}

// NewService creates and configures a student Service.
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

// Create persists a new student.
func (s *Service) Create(ctx context.Context, in domain.NewStudent) (*domain.Student, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	st := &domain.Student{FirstName: in.FirstName, LastName: in.LastName}
	if err := s.runner.WithTx(ctx, func(tx academytx.Repository) error {
		return tx.InsertStudent(ctx, st)
	}); err != nil {
		return nil, err
	}
	st.Courses = []domain.Course{}

	s.logger.Info("student created", logx.Int64("student_id", st.ID))
	return st, nil
}

// Get returns a student together with the courses they are enrolled in.
func (s *Service) Get(ctx context.Context, id int64, trackChanges bool) (*domain.Student, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var out *domain.Student
	err := lookup.Read(ctx, s.runner, trackChanges, func(tx academytx.Repository) error {
		st, err := lookup.Student(ctx, tx, id, lookup.Opts(true, trackChanges))
		out = st
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List returns all students ordered by id.
func (s *Service) List(ctx context.Context) ([]domain.Student, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var out []domain.Student
	err := s.runner.WithReadTx(ctx, func(tx academytx.Repository) error {
		list, err := tx.ListStudents(ctx)
		out = list
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update overlays the present fields of u onto the stored student.
func (s *Service) Update(ctx context.Context, id int64, u domain.StudentUpdate, trackChanges bool) error {
	if err := u.Validate(); err != nil {
		return err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if u.Empty() {
		return lookup.Read(ctx, s.runner, trackChanges, func(tx academytx.Repository) error {
			_, err := lookup.Student(ctx, tx, id, lookup.Opts(false, trackChanges))
			return err
		})
	}

	return s.runner.WithTx(ctx, func(tx academytx.Repository) error {
		st, err := lookup.Student(ctx, tx, id, lookup.Opts(false, trackChanges))
		if err != nil {
			return err
		}
		if !u.Apply(st) {
			return nil
		}
		return tx.UpdateStudent(ctx, st)
	})
}

// Delete removes a student and their enrollments.
func (s *Service) Delete(ctx context.Context, id int64, trackChanges bool) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.runner.WithTx(ctx, func(tx academytx.Repository) error {
		if _, err := lookup.Student(ctx, tx, id, lookup.Opts(false, trackChanges)); err != nil {
			return err
		}
		return tx.DeleteStudent(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("student deleted", logx.Int64("student_id", id))
	return nil
}

// EnrollStudentInCourse links the student with the course and applies u to the student.
// The student is resolved before the course.
func (s *Service) EnrollStudentInCourse(
	ctx context.Context,
	studentID, courseID int64,
	u domain.StudentUpdate,
	trackChanges bool,
) error {
	if err := u.Validate(); err != nil {
		return err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.runner.WithTx(ctx, func(tx academytx.Repository) error {
		st, err := lookup.Student(ctx, tx, studentID, lookup.Opts(true, trackChanges))
		if err != nil {
			return err
		}
		if _, err := lookup.Course(ctx, tx, courseID, lookup.Opts(false, trackChanges)); err != nil {
			return err
		}
		if st.EnrolledIn(courseID) {
			return apperr.StudentCourseAlreadyConnected(studentID, courseID)
		}

		if err := tx.InsertEnrollment(ctx, domain.Enrollment{StudentID: studentID, CourseID: courseID}); err != nil {
			return err
		}
		if u.Apply(st) {
			return tx.UpdateStudent(ctx, st)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.changes.Inc(metrics.OpEnroll)
	s.logger.Info("student enrolled in course",
		logx.String("event", "student_enrolled"),
		logx.Int64("student_id", studentID),
		logx.Int64("course_id", courseID),
	)
	return nil
}
