package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"academy-service/internal/apperr"
	"academy-service/internal/domain"
	"academy-service/internal/ports/academytx"
)

// GetStudent - returns a student by ID, optionally with their courses.
func (r *TxRepo) GetStudent(ctx context.Context, id int64, opts academytx.FetchOptions) (*domain.Student, error) {
	row, err := r.queryRow(ctx, lockIf(
		r.sb.Select("id", "first_name", "last_name").From("students").Where(squirrel.Eq{"id": id}), opts))
	if err != nil {
		return nil, err
	}

	var s domain.Student
	if err := row.Scan(&s.ID, &s.FirstName, &s.LastName); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get student %d: %w", id, err)
	}

	if opts.IncludeRelated {
		s.Courses, err = r.scanCourses(ctx, r.sb.Select("c.id", "c.title", "c.teacher_id").
			From("courses c").
			Join("enrollments e ON e.course_id = c.id").
			Where(squirrel.Eq{"e.student_id": id}).
			OrderBy("c.id"))
		if err != nil {
			return nil, fmt.Errorf("get student %d courses: %w", id, err)
		}
	}
	return &s, nil
}

// ListStudents - returns students ordered by id.
func (r *TxRepo) ListStudents(ctx context.Context) ([]domain.Student, error) {
	out, err := r.scanStudents(ctx, r.sb.Select("id", "first_name", "last_name").From("students").OrderBy("id"))
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return out, nil
}

// InsertStudent - creates a student and stores the generated ID in s.
func (r *TxRepo) InsertStudent(ctx context.Context, s *domain.Student) error {
	row, err := r.queryRow(ctx, r.sb.Insert("students").
		Columns("first_name", "last_name").
		Values(s.FirstName, s.LastName).
		Suffix("RETURNING id"))
	if err != nil {
		return err
	}
	if err := row.Scan(&s.ID); err != nil {
		return fmt.Errorf("insert student: %w", err)
	}
	return nil
}

// UpdateStudent - writes the scalar fields of s.
func (r *TxRepo) UpdateStudent(ctx context.Context, s *domain.Student) error {
	n, err := r.exec(ctx, r.sb.Update("students").
		SetMap(map[string]any{
			"first_name": s.FirstName,
			"last_name":  s.LastName,
			"updated_at": squirrel.Expr("now()"),
		}).
		Where(squirrel.Eq{"id": s.ID}))
	if err != nil {
		return fmt.Errorf("update student %d: %w", s.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("update student %d: %w", s.ID, apperr.ErrNotFound)
	}
	return nil
}

// DeleteStudent - removes a student; enrollments cascade.
func (r *TxRepo) DeleteStudent(ctx context.Context, id int64) error {
	n, err := r.exec(ctx, r.sb.Delete("students").Where(squirrel.Eq{"id": id}))
	if err != nil {
		return fmt.Errorf("delete student %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete student %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}

func (r *TxRepo) scanStudents(ctx context.Context, q squirrel.SelectBuilder) ([]domain.Student, error) {
	rows, err := r.query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Student, 0)
	for rows.Next() {
		var s domain.Student
		if err := rows.Scan(&s.ID, &s.FirstName, &s.LastName); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
