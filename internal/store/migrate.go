package store

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/mod/semver"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// migrationVersionKey is the key_value row the runner reads/writes to track
// the highest successfully applied migration.
const migrationVersionKey = "metadata.version"

// migrationHook is an optional programmatic step run right after a
// migration's SQL commits, for changes embedded SQL can't express (e.g. a
// backfill keyed off application logic). None are registered yet; the map
// exists so a future migration can add one without restructuring the
// runner.
var migrationHooks = map[string]func(ctx context.Context, pool *pgxpool.Pool) error{}

type migration struct {
	version string
	sql     string
}

func loadMigrations() ([]migration, error) {
	entries, err := fs.ReadDir(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}
	var out []migration
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, "_up.sql") {
			continue
		}
		version := "v" + strings.TrimSuffix(strings.TrimPrefix(name, "v"), "_up.sql")
		if !semver.IsValid(version) {
			return nil, fmt.Errorf("migration file %q has no valid semver prefix", name)
		}
		data, err := migrationFiles.ReadFile("migrations/" + name)
		if err != nil {
			return nil, fmt.Errorf("read migration %q: %w", name, err)
		}
		out = append(out, migration{version: version, sql: string(data)})
	}
	sort.Slice(out, func(i, j int) bool { return semver.Compare(out[i].version, out[j].version) < 0 })
	return out, nil
}

// BinaryVersion is the highest schema version this build knows how to run
// against. Migrate refuses to start if a previously-applied version is
// newer than this, guarding against a downgrade rollout.
const BinaryVersion = "v0.1.0"

// Migrate applies every migration newer than the stored metadata.version,
// in order, each in its own transaction. A single pooled connection holds a
// session-scoped advisory lock for the whole pass (pg_advisory_lock, not
// the transaction-scoped variant, since it must survive across the
// per-migration commits) so two daemon instances racing to start never
// interleave.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire migration connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, `SELECT pg_advisory_lock($1)`, migrationLockKey); err != nil {
		return fmt.Errorf("acquire migration lock: %w", err)
	}
	defer conn.Exec(ctx, `SELECT pg_advisory_unlock($1)`, migrationLockKey)

	bootstrap := &PoolDatabase{Pool: pool}
	if _, err := bootstrap.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS key_value (
			key   TEXT PRIMARY KEY,
			value JSONB NOT NULL
		)`); err != nil {
		return fmt.Errorf("bootstrap key_value: %w", err)
	}

	migrations, err := loadMigrations()
	if err != nil {
		return err
	}

	stored, err := GetKV[string](ctx, bootstrap, migrationVersionKey)
	if err != nil {
		if err != ErrNotFound {
			return fmt.Errorf("read stored migration version: %w", err)
		}
		stored = "v0.0.0"
	}
	if semver.Compare(stored, BinaryVersion) > 0 {
		return fmt.Errorf("stored schema version %s is newer than binary version %s", stored, BinaryVersion)
	}

	for _, m := range migrations {
		if semver.Compare(m.version, stored) <= 0 {
			continue
		}
		tx, err := conn.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin migration %s: %w", m.version, err)
		}
		pgxTx := &PgxTx{tx: tx}
		if _, err := pgxTx.Exec(ctx, m.sql); err != nil {
			tx.Rollback(ctx)
			return fmt.Errorf("apply migration %s: %w", m.version, err)
		}
		if err := SetKV(ctx, pgxTx, migrationVersionKey, m.version); err != nil {
			tx.Rollback(ctx)
			return fmt.Errorf("record migration %s: %w", m.version, err)
		}
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit migration %s: %w", m.version, err)
		}
		if hook, ok := migrationHooks[m.version]; ok {
			if err := hook(ctx, pool); err != nil {
				return fmt.Errorf("migration %s hook: %w", m.version, err)
			}
		}
		stored = m.version
	}
	return nil
}
