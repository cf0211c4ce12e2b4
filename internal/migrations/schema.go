package migrations

import (
	"context"

	"github.com/jackc/pgx/v5"
)

func execAll(ctx context.Context, tx pgx.Tx, stmts ...string) error {
	for _, s := range stmts {
		if _, err := tx.Exec(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// Schema creates the teachers, students, courses and enrollments tables.
var Schema = Migration{
	Version: 1,
	Name:    "initial_schema",
	Up: func(ctx context.Context, tx pgx.Tx) error {
		return execAll(ctx, tx,
			`CREATE TABLE IF NOT EXISTS teachers (
				id         BIGSERIAL PRIMARY KEY,
				name       VARCHAR(60) NOT NULL,
				created_at TIMESTAMP WITHOUT TIME ZONE DEFAULT now() NOT NULL,
				updated_at TIMESTAMP WITHOUT TIME ZONE DEFAULT now() NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS students (
				id         BIGSERIAL PRIMARY KEY,
				first_name VARCHAR(60) NOT NULL,
				last_name  VARCHAR(60) NOT NULL,
				created_at TIMESTAMP WITHOUT TIME ZONE DEFAULT now() NOT NULL,
				updated_at TIMESTAMP WITHOUT TIME ZONE DEFAULT now() NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS courses (
				id         BIGSERIAL PRIMARY KEY,
				title      VARCHAR(60) NOT NULL,
				teacher_id BIGINT REFERENCES teachers(id) ON DELETE SET NULL,
				created_at TIMESTAMP WITHOUT TIME ZONE DEFAULT now() NOT NULL,
				updated_at TIMESTAMP WITHOUT TIME ZONE DEFAULT now() NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_courses_teacher_id ON courses(teacher_id)`,
			`CREATE TABLE IF NOT EXISTS enrollments (
				student_id BIGINT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
				course_id  BIGINT NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
				PRIMARY KEY (student_id, course_id)
			)`,
			`CREATE INDEX IF NOT EXISTS idx_enrollments_course_id ON enrollments(course_id)`,
		)
	},
}

// Seed inserts the reference teachers, courses and students.
var Seed = Migration{
	Version: 2,
	Name:    "seed_reference_data",
	Up: func(ctx context.Context, tx pgx.Tx) error {
		return execAll(ctx, tx,
			`INSERT INTO teachers (id, name) VALUES (1, 'Ken Berry'), (2, 'Anthony Chaffee')
				ON CONFLICT (id) DO NOTHING`,
			`INSERT INTO courses (id, title, teacher_id) VALUES (1, 'Calculus', 1), (2, 'History', 2)
				ON CONFLICT (id) DO NOTHING`,
			`INSERT INTO students (id, first_name, last_name) VALUES (1, 'Mary', 'Ostin'), (2, 'Alice', 'Morgan')
				ON CONFLICT (id) DO NOTHING`,
			`SELECT setval(pg_get_serial_sequence('teachers', 'id'), (SELECT MAX(id) FROM teachers))`,
			`SELECT setval(pg_get_serial_sequence('courses', 'id'), (SELECT MAX(id) FROM courses))`,
			`SELECT setval(pg_get_serial_sequence('students', 'id'), (SELECT MAX(id) FROM students))`,
		)
	},
}

// All returns the schema migrations and, when seed is set, the reference data.
func All(seed bool) []Migration {
	if seed {
		return []Migration{Schema, Seed}
	}
	return []Migration{Schema}
}
