package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/chomba/rackd/internal/db"
	"github.com/chomba/rackd/internal/event"
	"github.com/chomba/rackd/internal/ids"
)

const pgUniqueViolation = "23505"

// appendEvents inserts each event into the append-only log, in order,
// translating a (stream_id, version) unique violation into
// ErrVersionConflict.
func appendEvents(ctx context.Context, ex db.Executor, events []event.Event) error {
	for _, e := range events {
		data, err := json.Marshal(e.Payload)
		if err != nil {
			return fmt.Errorf("marshal event payload: %w", err)
		}
		_, err = ex.Exec(ctx, `
			INSERT INTO event (id, stream_id, version, kind, data)
			VALUES ($1, $2, $3, $4, $5)`,
			e.ID.String(), e.StreamID.String(), e.Version, e.Payload.Kind(), data)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
				return fmt.Errorf("append event %s v%d: %w", e.StreamID, e.Version, ErrVersionConflict)
			}
			return fmt.Errorf("append event: %w", err)
		}
	}
	return nil
}

// LoadEvents returns every event recorded for streamID, ordered by version.
func LoadEvents(ctx context.Context, ex db.Executor, streamID ids.Id) ([]event.Event, error) {
	rows, err := ex.Query(ctx, `
		SELECT id, stream_id, version, kind, data
		FROM event WHERE stream_id = $1 ORDER BY version ASC`, streamID.String())
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	defer rows.Close()

	var out []event.Event
	for rows.Next() {
		var (
			idStr, streamStr, kind string
			version                int
			data                   json.RawMessage
		)
		if err := rows.Scan(&idStr, &streamStr, &version, &kind, &data); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e, err := decodeEvent(idStr, streamStr, version, kind, data)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return out, nil
}

func decodeEvent(idStr, streamStr string, version int, kind string, data json.RawMessage) (event.Event, error) {
	envelope, err := json.Marshal(struct {
		ID       string          `json:"id"`
		StreamID string          `json:"stream_id"`
		Version  int             `json:"version"`
		Kind     string          `json:"kind"`
		Data     json.RawMessage `json:"data"`
	}{idStr, streamStr, version, kind, data})
	if err != nil {
		return event.Event{}, fmt.Errorf("re-encode event row: %w", err)
	}
	var e event.Event
	if err := json.Unmarshal(envelope, &e); err != nil {
		return event.Event{}, fmt.Errorf("decode event row: %w", err)
	}
	return e, nil
}

