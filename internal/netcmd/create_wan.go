package netcmd

import (
	"context"
	"fmt"

	"github.com/chomba/rackd/internal/db"
	"github.com/chomba/rackd/internal/event"
	"github.com/chomba/rackd/internal/ids"
	"github.com/chomba/rackd/internal/query"
	"github.com/chomba/rackd/internal/rack"
	"github.com/chomba/rackd/internal/store"
	"github.com/chomba/rackd/internal/trunk"
	"github.com/chomba/rackd/internal/valobj"
	"github.com/chomba/rackd/internal/wan"
)

// CreateWan attaches a new WAN to a trunk+VLAN pair.
type CreateWan struct {
	TrunkID ids.Id
	Vlan    int
	Name    string
	Mode    valobj.ConnMode
}

func (CreateWan) Serializable() bool { return true }

type createWanReads struct {
	rack          *rack.Rack
	trunk         *trunk.Trunk
	nameExists    bool
	trunkVlanUsed bool
}

func (c CreateWan) Exec(reads createWanReads) (*wan.Wan, []event.Event, error) {
	if reads.rack == nil {
		return nil, nil, ErrRackNotFound
	}
	if reads.trunk == nil {
		return nil, nil, ErrTrunkNotFound
	}
	name, err := valobj.NewName(c.Name)
	if err != nil {
		return nil, nil, err
	}
	vlan, err := valobj.NewVlan(c.Vlan)
	if err != nil {
		return nil, nil, err
	}
	if !c.Mode.Valid() {
		return nil, nil, fmt.Errorf("%w: unrecognised connection mode %q", valobj.ErrInvalidFormat, c.Mode)
	}
	// Deterministic first-error-wins: name collision is checked before the
	// (trunk, vlan) collision, matching the read order in Process.
	if reads.nameExists {
		return nil, nil, ErrNameAlreadyInUse
	}
	if reads.trunkVlanUsed {
		return nil, nil, ErrTrunkVlanAlreadyInUse
	}

	w := &wan.Wan{
		ID:      ids.New(),
		RackID:  reads.rack.ID,
		TrunkID: reads.trunk.ID,
		Vlan:    vlan,
		Name:    name,
		Mode:    c.Mode,
		Mac:     valobj.AutoMac(),
		Ipv4:    valobj.DHCPIpv4(),
		Ipv6:    valobj.FromRAIpv6(),
	}
	evt := w.Metadata.Record(w.ID, event.WanCreated{
		WanID:   w.ID,
		RackID:  w.RackID,
		TrunkID: w.TrunkID,
		Vlan:    vlan,
		Name:    name,
		Mode:    c.Mode,
	})
	return w, []event.Event{evt}, nil
}

func (c CreateWan) Process(ctx context.Context, tx db.Tx) (any, error) {
	r, err := query.LoadRack(ctx, tx)
	if err != nil && err != store.ErrNotFound {
		return nil, fmt.Errorf("load rack: %w", err)
	}
	t, err := query.LoadTrunk(ctx, tx, c.TrunkID)
	if err != nil && err != store.ErrNotFound {
		return nil, fmt.Errorf("load trunk: %w", err)
	}

	foldKey := valobj.Name(c.Name).FoldKey()
	_, err = query.FindNetworkViewByName(ctx, tx, foldKey)
	nameExists := err == nil
	if err != nil && err != store.ErrNotFound {
		return nil, fmt.Errorf("find network_view by name: %w", err)
	}

	_, err = query.FindNetworkViewByTrunkVlan(ctx, tx, c.TrunkID, c.Vlan)
	trunkVlanUsed := err == nil
	if err != nil && err != store.ErrNotFound {
		return nil, fmt.Errorf("find network_view by trunk/vlan: %w", err)
	}

	w, _, err := c.Exec(createWanReads{rack: r, trunk: t, nameExists: nameExists, trunkVlanUsed: trunkVlanUsed})
	if err != nil {
		return nil, err
	}
	if err := store.Save(ctx, tx, w); err != nil {
		return nil, fmt.Errorf("save wan: %w", err)
	}
	return w, nil
}
