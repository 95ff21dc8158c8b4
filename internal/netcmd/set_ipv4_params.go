package netcmd

import (
	"context"
	"fmt"

	"github.com/chomba/rackd/internal/db"
	"github.com/chomba/rackd/internal/event"
	"github.com/chomba/rackd/internal/ids"
	"github.com/chomba/rackd/internal/query"
	"github.com/chomba/rackd/internal/store"
	"github.com/chomba/rackd/internal/valobj"
	"github.com/chomba/rackd/internal/wan"
)

// SetIpv4Params sets a WAN's IPv4 configuration. Params must already be a
// validated valobj.Ipv4Params (built via valobj.NewStaticIpv4 or
// valobj.DHCPIpv4 by the caller, e.g. the gRPC handler), so Exec only
// checks the preconditions, not the value's internal validity.
type SetIpv4Params struct {
	ID     ids.Id
	Params valobj.Ipv4Params
}

func (SetIpv4Params) Serializable() bool { return false }

func (c SetIpv4Params) Exec(w *wan.Wan) (*wan.Wan, []event.Event, error) {
	if w == nil {
		return nil, nil, ErrWanNotFound
	}
	// Per the redesign resolved in DESIGN.md: all explicit IP/MAC setters
	// reject on a PPPoE connection, not only SetIpv6Params.
	if w.Mode == valobj.ConnPPPoE {
		return nil, nil, ErrConnectionIsPPPoE
	}
	if w.Ipv4.Equal(c.Params) {
		return nil, nil, ErrAlreadySet
	}

	w.Ipv4 = c.Params
	evt := w.Metadata.Record(w.ID, event.WanIpv4ParamsSet{WanID: w.ID, Params: c.Params})
	return w, []event.Event{evt}, nil
}

func (c SetIpv4Params) Process(ctx context.Context, tx db.Tx) (any, error) {
	w, err := query.LoadWan(ctx, tx, c.ID)
	if err != nil && err != store.ErrNotFound {
		return nil, fmt.Errorf("load wan: %w", err)
	}
	updated, _, err := c.Exec(w)
	if err != nil {
		return nil, err
	}
	if err := store.Save(ctx, tx, updated); err != nil {
		return nil, fmt.Errorf("save wan: %w", err)
	}
	return updated, nil
}
