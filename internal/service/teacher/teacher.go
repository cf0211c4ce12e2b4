package teacher

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

// Service coordinates teacher business logic. It holds no per-call state.
type Service struct {
	runner           academytx.Runner
	operationTimeout time.Duration
	logger           logx.Logger
	changes          changeCounter
}

// NewService creates and configures a teacher Service.
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

// Create persists a new teacher.
func (s *Service) Create(ctx context.Context, in domain.NewTeacher) (*domain.Teacher, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	t := &domain.Teacher{Name: in.Name}
	err := s.runner.WithTx(ctx, func(tx academytx.Repository) error {
		return tx.InsertTeacher(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	t.Courses = []domain.Course{}

	s.logger.Info("teacher created", logx.Int64("teacher_id", t.ID))
	return t, nil
}

// Get returns a teacher together with the courses assigned to them.
func (s *Service) Get(ctx context.Context, id int64, trackChanges bool) (*domain.Teacher, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var out *domain.Teacher
	err := lookup.Read(ctx, s.runner, trackChanges, func(tx academytx.Repository) error {
		t, err := lookup.Teacher(ctx, tx, id, lookup.Opts(true, trackChanges))
		if err != nil {
			return err
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List returns all teachers ordered by id.
func (s *Service) List(ctx context.Context) ([]domain.Teacher, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var out []domain.Teacher
	err := s.runner.WithReadTx(ctx, func(tx academytx.Repository) error {
		list, err := tx.ListTeachers(ctx)
		out = list
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update overlays the present fields of u onto the stored teacher.
func (s *Service) Update(ctx context.Context, id int64, u domain.TeacherUpdate, trackChanges bool) error {
	if err := u.Validate(); err != nil {
		return err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if u.Empty() {
		return lookup.Read(ctx, s.runner, trackChanges, func(tx academytx.Repository) error {
			_, err := lookup.Teacher(ctx, tx, id, lookup.Opts(false, trackChanges))
			return err
		})
	}

	return s.runner.WithTx(ctx, func(tx academytx.Repository) error {
		t, err := lookup.Teacher(ctx, tx, id, lookup.Opts(false, trackChanges))
		if err != nil {
			return err
		}
		if !u.Apply(t) {
			return nil
		}
		return tx.UpdateTeacher(ctx, t)
	})
}

// Delete removes a teacher. Their courses stay and lose the teacher reference.
func (s *Service) Delete(ctx context.Context, id int64, trackChanges bool) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.runner.WithTx(ctx, func(tx academytx.Repository) error {
		if _, err := lookup.Teacher(ctx, tx, id, lookup.Opts(false, trackChanges)); err != nil {
			return err
		}
		return tx.DeleteTeacher(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("teacher deleted", logx.Int64("teacher_id", id))
	return nil
}

// ResignTeacherFromCourse detaches the teacher from a course they are assigned to
// and applies u to the teacher. The check consults only the course's teacher id.
func (s *Service) ResignTeacherFromCourse(
	ctx context.Context,
	teacherID, courseID int64,
	u domain.TeacherUpdate,
	trackChanges bool,
) error {
	if err := u.Validate(); err != nil {
		return err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.runner.WithTx(ctx, func(tx academytx.Repository) error {
		t, err := lookup.Teacher(ctx, tx, teacherID, lookup.Opts(false, trackChanges))
		if err != nil {
			return err
		}
		c, err := lookup.Course(ctx, tx, courseID, lookup.Opts(false, trackChanges))
		if err != nil {
			return err
		}
		if !c.TaughtBy(teacherID) {
			return apperr.TeacherCourseNotConnected(teacherID, courseID)
		}

		c.ClearTeacher()
		if err := tx.UpdateCourse(ctx, c); err != nil {
			return err
		}
		if u.Apply(t) {
			return tx.UpdateTeacher(ctx, t)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.changes.Inc(metrics.OpResign)
	s.logger.Info("teacher resigned from course",
		logx.String("event", "teacher_resigned"),
		logx.Int64("teacher_id", teacherID),
		logx.Int64("course_id", courseID),
	)
	return nil
}
