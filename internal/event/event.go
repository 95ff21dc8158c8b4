// Package event defines the append-only event record and the closed set
// of payload kinds the network aggregates emit.
package event

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/chomba/rackd/internal/ids"
)

// Event is one row of a stream's append-only log: a versioned, typed
// payload tied to the aggregate (stream) it mutates.
type Event struct {
	ID       ids.Id
	StreamID ids.Id
	Version  int
	Payload  Payload
}

// Payload is implemented by every concrete event type. Kind is the
// discriminant persisted in the event table's "kind" column; the payload
// itself is marshaled to the "data" column as JSON.
type Payload interface {
	Kind() string
}

// kinds maps the persisted discriminant back to a zero-value payload used
// as an unmarshal target. Each payload file registers itself via init().
var kinds = map[string]func() Payload{}

func register(kind string, zero func() Payload) {
	kinds[kind] = zero
}

// wireEvent is the JSON shape Event round-trips through: the envelope plus
// the payload's kind tag and raw data.
type wireEvent struct {
	ID       ids.Id          `json:"id"`
	StreamID ids.Id          `json:"stream_id"`
	Version  int             `json:"version"`
	Kind     string          `json:"kind"`
	Data     json.RawMessage `json:"data"`
}

func (e Event) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(e.Payload)
	if err != nil {
		return nil, fmt.Errorf("event: marshal payload: %w", err)
	}
	return json.Marshal(wireEvent{
		ID:       e.ID,
		StreamID: e.StreamID,
		Version:  e.Version,
		Kind:     e.Payload.Kind(),
		Data:     data,
	})
}

func (e *Event) UnmarshalJSON(b []byte) error {
	var w wireEvent
	if err := json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("event: unmarshal envelope: %w", err)
	}
	zero, ok := kinds[w.Kind]
	if !ok {
		return fmt.Errorf("event: unknown kind %q", w.Kind)
	}
	payload := zero()
	if err := json.Unmarshal(w.Data, payload); err != nil {
		return fmt.Errorf("event: unmarshal payload %q: %w", w.Kind, err)
	}
	// payload is always a pointer (needed as an addressable unmarshal
	// target); deref it so Payload holds the same value kind that commands
	// construct in-process, keeping type switches uniform either way.
	e.ID, e.StreamID, e.Version = w.ID, w.StreamID, w.Version
	e.Payload = reflect.ValueOf(payload).Elem().Interface().(Payload)
	return nil
}
