package store

import "errors"

var (
	// ErrVersionConflict surfaces Postgres unique-violation (23505) on the
	// event log's (stream_id, version) constraint: another writer already
	// appended at this version.
	ErrVersionConflict = errors.New("store: version conflict")
	// ErrNotFound is returned when a snapshot or key_value entry does not
	// exist.
	ErrNotFound = errors.New("store: not found")
)
