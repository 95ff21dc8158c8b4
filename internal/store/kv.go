package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chomba/rackd/internal/db"
)

// GetKV reads key from key_value and unmarshals it into T. Returns
// ErrNotFound if the key doesn't exist.
func GetKV[T any](ctx context.Context, ex db.Executor, key string) (T, error) {
	var zero T
	var raw json.RawMessage
	row := ex.QueryRow(ctx, `SELECT value FROM key_value WHERE key = $1`, key)
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, ErrNotFound
		}
		return zero, fmt.Errorf("get kv %q: %w", key, err)
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return zero, fmt.Errorf("unmarshal kv %q: %w", key, err)
	}
	return v, nil
}

// SetKV writes key with value v, replacing any prior value.
func SetKV[T any](ctx context.Context, ex db.Executor, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal kv %q: %w", key, err)
	}
	_, err = ex.Exec(ctx, `
		INSERT INTO key_value (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`, key, raw)
	if err != nil {
		return fmt.Errorf("set kv %q: %w", key, err)
	}
	return nil
}
