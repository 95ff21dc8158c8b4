package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chomba/rackd/internal/db"
	"github.com/chomba/rackd/internal/ids"
)

// upsertSnapshot writes the entity's full current JSON representation,
// overwriting whatever was previously stored for id.
func upsertSnapshot(ctx context.Context, ex db.Executor, id ids.Id, value json.RawMessage) error {
	_, err := ex.Exec(ctx, `
		INSERT INTO entity (id, value) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET value = EXCLUDED.value`,
		id.String(), value)
	if err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the raw JSON snapshot stored for id.
func LoadSnapshot(ctx context.Context, ex db.Executor, id ids.Id) (json.RawMessage, error) {
	var value json.RawMessage
	row := ex.QueryRow(ctx, `SELECT value FROM entity WHERE id = $1`, id.String())
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return value, nil
}
