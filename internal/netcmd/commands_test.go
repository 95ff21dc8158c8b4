package netcmd

import (
	"errors"
	"net"
	"testing"

	"github.com/chomba/rackd/internal/ids"
	"github.com/chomba/rackd/internal/rack"
	"github.com/chomba/rackd/internal/trunk"
	"github.com/chomba/rackd/internal/valobj"
	"github.com/chomba/rackd/internal/wan"
)

func mustName(t *testing.T, raw string) valobj.Name {
	t.Helper()
	n, err := valobj.NewName(raw)
	if err != nil {
		t.Fatalf("NewName(%q): %v", raw, err)
	}
	return n
}

func TestCreateTrunkRejectsDuplicateNameCaseInsensitively(t *testing.T) {
	r := &rack.Rack{ID: rack.SingletonID}

	cmd := CreateTrunk{Name: "trunk1"}
	created, _, err := cmd.Exec(createTrunkReads{rack: r, nameExists: false})
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	if created.Name.String() != "trunk1" {
		t.Fatalf("name = %q", created.Name)
	}

	if _, _, err := (CreateTrunk{Name: "trunk1"}).Exec(createTrunkReads{rack: r, nameExists: true}); !errors.Is(err, ErrNameAlreadyInUse) {
		t.Fatalf("expected NameAlreadyInUse, got %v", err)
	}
	if _, _, err := (CreateTrunk{Name: "TRUNK1"}).Exec(createTrunkReads{rack: r, nameExists: true}); !errors.Is(err, ErrNameAlreadyInUse) {
		t.Fatalf("expected NameAlreadyInUse for case-insensitive collision, got %v", err)
	}
}

func TestCreateTrunkRequiresRack(t *testing.T) {
	_, _, err := (CreateTrunk{Name: "trunk1"}).Exec(createTrunkReads{rack: nil})
	if !errors.Is(err, ErrRackUninitialized) {
		t.Fatalf("expected RackUninitialized, got %v", err)
	}
}

func TestCreateWanRejectsTrunkVlanCollision(t *testing.T) {
	r := &rack.Rack{ID: rack.SingletonID}
	tr := &trunk.Trunk{ID: ids.New(), Name: mustName(t, "uplink")}

	_, _, err := (CreateWan{TrunkID: tr.ID, Vlan: 1005, Name: "at&t", Mode: valobj.ConnIPoE}).
		Exec(createWanReads{rack: r, trunk: tr})
	if err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, _, err = (CreateWan{TrunkID: tr.ID, Vlan: 1005, Name: "verizon", Mode: valobj.ConnIPoE}).
		Exec(createWanReads{rack: r, trunk: tr, trunkVlanUsed: true})
	if !errors.Is(err, ErrTrunkVlanAlreadyInUse) {
		t.Fatalf("expected TrunkVlanAlreadyInUse, got %v", err)
	}
}

func TestRenameWanRejectsCaseInsensitiveSelfRename(t *testing.T) {
	w := &wan.Wan{ID: ids.New(), Name: mustName(t, "at&t")}

	for _, name := range []string{"at&t", "AT&T"} {
		_, _, err := (RenameWan{ID: w.ID, Name: name}).Exec(renameWanReads{wan: w, nameExists: true})
		if !errors.Is(err, ErrNameAlreadyInUse) {
			t.Fatalf("rename to %q: expected NameAlreadyInUse, got %v", name, err)
		}
	}
}

func TestRenameWanRejectsCollision(t *testing.T) {
	w := &wan.Wan{ID: ids.New(), Name: mustName(t, "at&t")}
	_, _, err := (RenameWan{ID: w.ID, Name: "verizon"}).Exec(renameWanReads{wan: w, nameExists: true})
	if !errors.Is(err, ErrNameAlreadyInUse) {
		t.Fatalf("expected NameAlreadyInUse, got %v", err)
	}
}

func TestRenameWanSucceedsOnFreeName(t *testing.T) {
	w := &wan.Wan{ID: ids.New(), Name: mustName(t, "at&t")}
	updated, events, err := (RenameWan{ID: w.ID, Name: "verizon"}).Exec(renameWanReads{wan: w, nameExists: false})
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if updated.Name.String() != "verizon" {
		t.Fatalf("name = %q, want verizon", updated.Name)
	}
}

func TestSetIpv4ParamsIsIdempotent(t *testing.T) {
	w := &wan.Wan{ID: ids.New(), Mode: valobj.ConnIPoE, Ipv4: valobj.DHCPIpv4()}

	if _, _, err := (SetIpv4Params{ID: w.ID, Params: valobj.DHCPIpv4()}).Exec(w); !errors.Is(err, ErrAlreadySet) {
		t.Fatalf("expected AlreadySet for re-applying DHCP, got %v", err)
	}

	static, err := valobj.NewStaticIpv4(net.ParseIP("10.10.100.10"), 24, net.ParseIP("10.10.100.1"))
	if err != nil {
		t.Fatalf("NewStaticIpv4: %v", err)
	}
	updated, events, err := (SetIpv4Params{ID: w.ID, Params: static}).Exec(w)
	if err != nil {
		t.Fatalf("set static ipv4: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if !updated.Ipv4.Equal(static) {
		t.Fatal("ipv4 params not updated")
	}
}

func TestSetIpv4ParamsRejectsOnPPPoE(t *testing.T) {
	w := &wan.Wan{ID: ids.New(), Mode: valobj.ConnPPPoE, Ipv4: valobj.DHCPIpv4()}
	static, err := valobj.NewStaticIpv4(net.ParseIP("10.10.100.10"), 24, net.ParseIP("10.10.100.1"))
	if err != nil {
		t.Fatalf("NewStaticIpv4: %v", err)
	}
	if _, _, err := (SetIpv4Params{ID: w.ID, Params: static}).Exec(w); !errors.Is(err, ErrConnectionIsPPPoE) {
		t.Fatalf("expected ConnectionIsPPPoE, got %v", err)
	}
}

func TestSetIpv6ParamsStaticValidation(t *testing.T) {
	if _, err := valobj.NewStaticIpv6(net.ParseIP("2800:200:44:8814::"), 64, net.ParseIP("fe80::1")); err != nil {
		t.Fatalf("expected valid static ipv6, got %v", err)
	}
	if _, err := valobj.NewStaticIpv6(net.ParseIP("2800:200:44:8814::"), 48, net.ParseIP("fe80::1")); !errors.Is(err, valobj.ErrInvalidPrefixLength) {
		t.Fatalf("expected InvalidPrefixLength for plen=48, got %v", err)
	}
	if _, err := valobj.NewStaticIpv6(net.ParseIP("2800:200:44:8814::"), 64, net.ParseIP("2001::1")); !errors.Is(err, valobj.ErrInvalidIpv6Gateway) {
		t.Fatalf("expected InvalidIpv6Gateway for a non-link-local gw, got %v", err)
	}
}

func TestSetIpv6ParamsAlreadySetTakesPrecedenceOverPPPoE(t *testing.T) {
	w := &wan.Wan{ID: ids.New(), Mode: valobj.ConnPPPoE, Ipv6: valobj.FromRAIpv6()}
	if _, _, err := (SetIpv6Params{ID: w.ID, Params: valobj.FromRAIpv6()}).Exec(w); !errors.Is(err, ErrAlreadySet) {
		t.Fatalf("expected AlreadySet before the PPPoE rejection, got %v", err)
	}
}

func TestSetMacAddrRejectsOnPPPoE(t *testing.T) {
	w := &wan.Wan{ID: ids.New(), Mode: valobj.ConnPPPoE, Mac: valobj.AutoMac()}
	spoof, err := valobj.SpoofMac("02:00:00:00:00:01")
	if err != nil {
		t.Fatalf("SpoofMac: %v", err)
	}
	if _, _, err := (SetMacAddr{ID: w.ID, Policy: spoof}).Exec(w); !errors.Is(err, ErrConnectionIsPPPoE) {
		t.Fatalf("expected ConnectionIsPPPoE, got %v", err)
	}
}
