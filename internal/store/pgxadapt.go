package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chomba/rackd/internal/db"
)

// pgxResult adapts pgconn.CommandTag to db.Result.
type pgxResult struct{ rowsAffected int64 }

func (r pgxResult) RowsAffected() int64 { return r.rowsAffected }

// pgxRows adapts pgx.Rows to db.Rows.
type pgxRows struct{ rows pgx.Rows }

func (r pgxRows) Next() bool             { return r.rows.Next() }
func (r pgxRows) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r pgxRows) Err() error             { return r.rows.Err() }
func (r pgxRows) Close()                 { r.rows.Close() }

// pgxRow adapts pgx.Row to db.Row.
type pgxRow struct{ row pgx.Row }

func (r pgxRow) Scan(dest ...any) error { return r.row.Scan(dest...) }

// PoolDatabase adapts a *pgxpool.Pool to db.Database.
type PoolDatabase struct {
	Pool *pgxpool.Pool
}

func (d *PoolDatabase) Exec(ctx context.Context, sql string, args ...any) (db.Result, error) {
	tag, err := d.Pool.Exec(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgxResult{tag.RowsAffected()}, nil
}

func (d *PoolDatabase) QueryRow(ctx context.Context, sql string, args ...any) db.Row {
	return pgxRow{d.Pool.QueryRow(ctx, sql, args...)}
}

func (d *PoolDatabase) Query(ctx context.Context, sql string, args ...any) (db.Rows, error) {
	rows, err := d.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgxRows{rows}, nil
}

func (d *PoolDatabase) BeginTx(ctx context.Context, opts *db.TxOptions) (db.Tx, error) {
	pgxOpts := pgx.TxOptions{}
	if opts != nil {
		if opts.ReadOnly {
			pgxOpts.AccessMode = pgx.ReadOnly
		}
		if opts.IsolationLevel == "serializable" {
			pgxOpts.IsoLevel = pgx.Serializable
		}
	}
	tx, err := d.Pool.BeginTx(ctx, pgxOpts)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return &PgxTx{tx: tx}, nil
}

func (d *PoolDatabase) Ping(ctx context.Context) error { return d.Pool.Ping(ctx) }
func (d *PoolDatabase) Close() error                   { d.Pool.Close(); return nil }
func (d *PoolDatabase) DriverName() string             { return "postgres" }

// PgxTx adapts a pgx.Tx to db.Tx.
type PgxTx struct {
	tx pgx.Tx
}

func (t *PgxTx) Exec(ctx context.Context, sql string, args ...any) (db.Result, error) {
	tag, err := t.tx.Exec(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgxResult{tag.RowsAffected()}, nil
}

func (t *PgxTx) QueryRow(ctx context.Context, sql string, args ...any) db.Row {
	return pgxRow{t.tx.QueryRow(ctx, sql, args...)}
}

func (t *PgxTx) Query(ctx context.Context, sql string, args ...any) (db.Rows, error) {
	rows, err := t.tx.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgxRows{rows}, nil
}

func (t *PgxTx) Commit(ctx context.Context) error   { return t.tx.Commit(ctx) }
func (t *PgxTx) Rollback(ctx context.Context) error { return t.tx.Rollback(ctx) }

// Raw exposes the underlying pgx.Tx for callers (migration runner, advisory
// locks) that need pgx-specific behaviour the db.Tx abstraction doesn't
// carry.
func (t *PgxTx) Raw() pgx.Tx { return t.tx }
