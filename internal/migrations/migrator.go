package migrations

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Migration is a versioned schema change applied inside its own transaction.
type Migration struct {
	Version int64
	Name    string
	Up      func(ctx context.Context, tx pgx.Tx) error
}

// Migrator applies pending migrations in version order.
type Migrator struct {
	db         *pgxpool.Pool
	migrations []Migration
}

// NewMigrator creates a Migrator with the given migrations.
func NewMigrator(db *pgxpool.Pool, ms ...Migration) *Migrator {
	m := &Migrator{db: db}
	for _, mg := range ms {
		m.AddMigration(mg)
	}
	return m
}

// AddMigration registers a migration.
func (m *Migrator) AddMigration(mg Migration) {
	m.migrations = append(m.migrations, mg)
	sort.Slice(m.migrations, func(i, j int) bool {
		return m.migrations[i].Version < m.migrations[j].Version
	})
}

// Migrations returns the registered migrations in version order.
func (m *Migrator) Migrations() []Migration {
	return m.migrations
}

// Run applies every migration newer than the recorded version and returns how many ran.
func (m *Migrator) Run(ctx context.Context) (int, error) {
	if _, err := m.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    BIGINT PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at TIMESTAMP WITHOUT TIME ZONE DEFAULT now() NOT NULL
		)
	`); err != nil {
		return 0, fmt.Errorf("create migrations table: %w", err)
	}

	current, err := m.CurrentVersion(ctx)
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, mg := range m.migrations {
		if mg.Version <= current {
			continue
		}
		if err := m.apply(ctx, mg); err != nil {
			return applied, fmt.Errorf("migration %d (%s): %w", mg.Version, mg.Name, err)
		}
		applied++
	}
	return applied, nil
}

// CurrentVersion returns the highest applied version, or 0.
func (m *Migrator) CurrentVersion(ctx context.Context) (int64, error) {
	var v int64
	if err := m.db.QueryRow(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&v); err != nil {
		return 0, fmt.Errorf("current version: %w", err)
	}
	return v, nil
}

func (m *Migrator) apply(ctx context.Context, mg Migration) error {
	tx, err := m.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := mg.Up(ctx, tx); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`, mg.Version, mg.Name,
	); err != nil {
		return fmt.Errorf("record version: %w", err)
	}
	return tx.Commit(ctx)
}
