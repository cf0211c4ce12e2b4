package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"academy-service/internal/ports/academytx"
)

// AcademyRepo runs units of work against PostgreSQL.
type AcademyRepo struct {
	db *pgxpool.Pool
}

// NewAcademyRepo creates a new AcademyRepo.
func NewAcademyRepo(db *pgxpool.Pool) *AcademyRepo {
	return &AcademyRepo{db: db}
}

var _ academytx.Runner = (*AcademyRepo)(nil)

// WithTx opens a read/write transaction and executes fn within it.
func (r *AcademyRepo) WithTx(ctx context.Context, fn func(tx academytx.Repository) error) error {
	return r.run(ctx, pgx.TxOptions{}, fn)
}

// WithReadTx executes fn in a read-only transaction. Row locks are not allowed there.
func (r *AcademyRepo) WithReadTx(ctx context.Context, fn func(tx academytx.Repository) error) error {
	return r.run(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly}, fn)
}

func (r *AcademyRepo) run(ctx context.Context, opts pgx.TxOptions, fn func(tx academytx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(newTxRepo(tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// TxRepo implements academytx.Repository on top of a single transaction.
type TxRepo struct {
	tx pgx.Tx
	sb squirrel.StatementBuilderType
}

func newTxRepo(tx pgx.Tx) *TxRepo {
	return &TxRepo{
		tx: tx,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var _ academytx.Repository = (*TxRepo)(nil)

func lockIf(q squirrel.SelectBuilder, opts academytx.FetchOptions) squirrel.SelectBuilder {
	if opts.TrackChanges {
		return q.Suffix("FOR UPDATE")
	}
	return q
}

func (r *TxRepo) exec(ctx context.Context, b squirrel.Sqlizer) (int64, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}
	ct, err := r.tx.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

func (r *TxRepo) queryRow(ctx context.Context, b squirrel.Sqlizer) (pgx.Row, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	return r.tx.QueryRow(ctx, sql, args...), nil
}

func (r *TxRepo) query(ctx context.Context, b squirrel.Sqlizer) (pgx.Rows, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	return r.tx.Query(ctx, sql, args...)
}
