package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chomba/rackd/internal/db"
)

// PostgresStore is the Command Actor's single write handle: one pgxpool.Pool
// wrapped to satisfy db.Database, with the migration runner applied at
// construction time.
type PostgresStore struct {
	*PoolDatabase
}

// NewPostgresStore opens dsn, runs pending migrations under the advisory
// lock, and returns a ready-to-use store.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}

	s := &PostgresStore{PoolDatabase: &PoolDatabase{Pool: pool}}
	if err := s.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if err := Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewQueryPool opens a read pool against dsn without running migrations;
// used by the Query Actor(s), which may point at a replica.
func NewQueryPool(ctx context.Context, dsn string) (*PoolDatabase, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}
	d := &PoolDatabase{Pool: pool}
	if err := d.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return d, nil
}

var _ db.Database = (*PostgresStore)(nil)
