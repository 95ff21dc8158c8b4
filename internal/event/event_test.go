package event

import (
	"encoding/json"
	"testing"

	"github.com/chomba/rackd/internal/ids"
	"github.com/chomba/rackd/internal/valobj"
)

func TestEventRoundTripsThroughJSON(t *testing.T) {
	name, err := valobj.NewName("uplink-a")
	if err != nil {
		t.Fatalf("NewName: %v", err)
	}
	want := Event{
		ID:       ids.New(),
		StreamID: ids.New(),
		Version:  1,
		Payload:  TrunkCreated{TrunkID: ids.New(), Name: name},
	}

	data, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got Event
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got.ID != want.ID || got.StreamID != want.StreamID || got.Version != want.Version {
		t.Fatalf("envelope mismatch: got %+v, want %+v", got, want)
	}
	gotPayload, ok := got.Payload.(TrunkCreated)
	if !ok {
		t.Fatalf("payload type = %T, want TrunkCreated", got.Payload)
	}
	wantPayload := want.Payload.(TrunkCreated)
	if gotPayload.TrunkID != wantPayload.TrunkID || gotPayload.Name != wantPayload.Name {
		t.Fatalf("payload mismatch: got %+v, want %+v", gotPayload, wantPayload)
	}
}

func TestEventUnmarshalRejectsUnknownKind(t *testing.T) {
	raw := []byte(`{"id":"` + ids.New().String() + `","stream_id":"` + ids.New().String() + `","version":1,"kind":"not_a_real_kind","data":{}}`)
	var e Event
	if err := json.Unmarshal(raw, &e); err == nil {
		t.Fatal("expected an error for an unknown event kind")
	}
}
