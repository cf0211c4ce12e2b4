package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"academy-service/internal/apperr"
	"academy-service/internal/domain"
	"academy-service/internal/ports/academytx"
)

// GetCourse - returns a course by ID, optionally with its teacher and students.
func (r *TxRepo) GetCourse(ctx context.Context, id int64, opts academytx.FetchOptions) (*domain.Course, error) {
	row, err := r.queryRow(ctx, lockIf(
		r.sb.Select("id", "title", "teacher_id").From("courses").Where(squirrel.Eq{"id": id}), opts))
	if err != nil {
		return nil, err
	}

	var c domain.Course
	if err := row.Scan(&c.ID, &c.Title, &c.TeacherID); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get course %d: %w", id, err)
	}
	if !opts.IncludeRelated {
		return &c, nil
	}

	if c.TeacherID != nil {
		t, err := r.GetTeacher(ctx, *c.TeacherID, academytx.FetchOptions{})
		if err != nil {
			return nil, fmt.Errorf("get course %d teacher: %w", id, err)
		}
		c.Teacher = t
	}

	c.Students, err = r.scanStudents(ctx, r.sb.Select("s.id", "s.first_name", "s.last_name").
		From("students s").
		Join("enrollments e ON e.student_id = s.id").
		Where(squirrel.Eq{"e.course_id": id}).
		OrderBy("s.id"))
	if err != nil {
		return nil, fmt.Errorf("get course %d students: %w", id, err)
	}
	return &c, nil
}

// ListCourses - returns courses ordered by id.
func (r *TxRepo) ListCourses(ctx context.Context) ([]domain.Course, error) {
	out, err := r.scanCourses(ctx, r.sb.Select("id", "title", "teacher_id").From("courses").OrderBy("id"))
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return out, nil
}

// InsertCourse - creates a course and stores the generated ID in c.
func (r *TxRepo) InsertCourse(ctx context.Context, c *domain.Course) error {
	row, err := r.queryRow(ctx, r.sb.Insert("courses").
		Columns("title", "teacher_id").
		Values(c.Title, c.TeacherID).
		Suffix("RETURNING id"))
	if err != nil {
		return err
	}
	if err := row.Scan(&c.ID); err != nil {
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("insert course: %w", apperr.ErrConflict)
		}
		return fmt.Errorf("insert course: %w", err)
	}
	return nil
}

// UpdateCourse - writes the title and the teacher reference of c.
func (r *TxRepo) UpdateCourse(ctx context.Context, c *domain.Course) error {
	n, err := r.exec(ctx, r.sb.Update("courses").
		Set("title", c.Title).
		Set("teacher_id", c.TeacherID).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": c.ID}))
	if err != nil {
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("update course %d: %w", c.ID, apperr.ErrConflict)
		}
		return fmt.Errorf("update course %d: %w", c.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("update course %d: %w", c.ID, apperr.ErrNotFound)
	}
	return nil
}

// DeleteCourse - removes a course; enrollments cascade.
func (r *TxRepo) DeleteCourse(ctx context.Context, id int64) error {
	n, err := r.exec(ctx, r.sb.Delete("courses").Where(squirrel.Eq{"id": id}))
	if err != nil {
		return fmt.Errorf("delete course %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete course %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}

func (r *TxRepo) scanCourses(ctx context.Context, q squirrel.SelectBuilder) ([]domain.Course, error) {
	rows, err := r.query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Course, 0)
	for rows.Next() {
		var c domain.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.TeacherID); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
