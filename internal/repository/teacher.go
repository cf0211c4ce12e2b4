package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"academy-service/internal/apperr"
	"academy-service/internal/domain"
	"academy-service/internal/ports/academytx"
)

// GetTeacher - returns a teacher by ID, optionally with their courses.
func (r *TxRepo) GetTeacher(ctx context.Context, id int64, opts academytx.FetchOptions) (*domain.Teacher, error) {
	row, err := r.queryRow(ctx, lockIf(
		r.sb.Select("id", "name").From("teachers").Where(squirrel.Eq{"id": id}), opts))
	if err != nil {
		return nil, err
	}

	var t domain.Teacher
	if err := row.Scan(&t.ID, &t.Name); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get teacher %d: %w", id, err)
	}

	if opts.IncludeRelated {
		t.Courses, err = r.scanCourses(ctx, r.sb.Select("id", "title", "teacher_id").
			From("courses").
			Where(squirrel.Eq{"teacher_id": id}).
			OrderBy("id"))
		if err != nil {
			return nil, fmt.Errorf("get teacher %d courses: %w", id, err)
		}
	}
	return &t, nil
}

// ListTeachers - returns teachers ordered by id.
func (r *TxRepo) ListTeachers(ctx context.Context) ([]domain.Teacher, error) {
	rows, err := r.query(ctx, r.sb.Select("id", "name").From("teachers").OrderBy("id"))
	if err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Teacher, 0)
	for rows.Next() {
		var t domain.Teacher
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scan teacher: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// InsertTeacher - creates a teacher and stores the generated ID in t.
func (r *TxRepo) InsertTeacher(ctx context.Context, t *domain.Teacher) error {
	row, err := r.queryRow(ctx, r.sb.Insert("teachers").
		Columns("name").
		Values(t.Name).
		Suffix("RETURNING id"))
	if err != nil {
		return err
	}
	if err := row.Scan(&t.ID); err != nil {
		return fmt.Errorf("insert teacher: %w", err)
	}
	return nil
}

// UpdateTeacher - writes the scalar fields of t.
func (r *TxRepo) UpdateTeacher(ctx context.Context, t *domain.Teacher) error {
	n, err := r.exec(ctx, r.sb.Update("teachers").
		Set("name", t.Name).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": t.ID}))
	if err != nil {
		return fmt.Errorf("update teacher %d: %w", t.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("update teacher %d: %w", t.ID, apperr.ErrNotFound)
	}
	return nil
}

// DeleteTeacher - removes a teacher; courses lose the reference through ON DELETE SET NULL.
func (r *TxRepo) DeleteTeacher(ctx context.Context, id int64) error {
	n, err := r.exec(ctx, r.sb.Delete("teachers").Where(squirrel.Eq{"id": id}))
	if err != nil {
		return fmt.Errorf("delete teacher %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete teacher %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}
