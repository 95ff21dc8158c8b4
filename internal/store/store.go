package store

import (
	"encoding/json"

	"github.com/chomba/rackd/internal/event"
	"github.com/chomba/rackd/internal/ids"
)

// Metadata is embedded in every entity snapshot: the stream's current
// version plus any events recorded by a command but not yet flushed to the
// event log. Save clears PendingEvents once they've been appended.
type Metadata struct {
	Version       int           `json:"version"`
	PendingEvents []event.Event `json:"pending_events,omitempty"`
}

// Record appends a new event to the stream, bumping Version and queuing the
// event for the next Save call. Commands call this from Exec while building
// the result; nothing is persisted until Save runs inside the owning
// transaction.
func (m *Metadata) Record(streamID ids.Id, payload event.Payload) event.Event {
	m.Version++
	e := event.Event{ID: ids.New(), StreamID: streamID, Version: m.Version, Payload: payload}
	m.PendingEvents = append(m.PendingEvents, e)
	return e
}

// Entity is implemented by every aggregate root persisted through Save:
// rack.Rack, trunk.Trunk, wan.Wan.
type Entity interface {
	StreamID() ids.Id
	Meta() *Metadata
}

// Snapshot is the JSONB-backed row Save upserts: the entity's full current
// state, including its embedded Metadata.
type Snapshot struct {
	ID    ids.Id
	Value json.RawMessage
}
