package grpc

import (
	"testing"

	"github.com/chomba/rackd/internal/ids"
	"github.com/chomba/rackd/internal/netcmd"
)

func TestDecodeCommandCreateTrunk(t *testing.T) {
	cmd, err := decodeCommand("CreateTrunk", []byte(`{"Name":"rack-trunk-1"}`))
	if err != nil {
		t.Fatalf("decodeCommand: %v", err)
	}
	ct, ok := cmd.(netcmd.CreateTrunk)
	if !ok {
		t.Fatalf("decoded type = %T, want netcmd.CreateTrunk", cmd)
	}
	if ct.Name != "rack-trunk-1" {
		t.Fatalf("Name = %q, want rack-trunk-1", ct.Name)
	}
}

func TestDecodeCommandRenameWan(t *testing.T) {
	id := ids.New()
	payload := `{"ID":"` + id.String() + `","Name":"uplink"}`
	cmd, err := decodeCommand("RenameWan", []byte(payload))
	if err != nil {
		t.Fatalf("decodeCommand: %v", err)
	}
	rw, ok := cmd.(netcmd.RenameWan)
	if !ok {
		t.Fatalf("decoded type = %T, want netcmd.RenameWan", cmd)
	}
	if rw.ID != id || rw.Name != "uplink" {
		t.Fatalf("decoded = %+v, want ID=%s Name=uplink", rw, id)
	}
}

func TestDecodeCommandUnknownKind(t *testing.T) {
	if _, err := decodeCommand("NotARealCommand", nil); err == nil {
		t.Fatal("expected error for unknown command kind")
	}
}

func TestDecodeCommandBadPayload(t *testing.T) {
	if _, err := decodeCommand("CreateTrunk", []byte(`{not json`)); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
