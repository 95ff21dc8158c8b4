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

// SetIpv6Params sets a WAN's IPv6 configuration, either pinning it to a
// validated static address/gateway or reverting it to router-advertisement
// derivation. Params is assumed already validated by valobj.NewStaticIpv6
// or valobj.FromRAIpv6.
type SetIpv6Params struct {
	ID     ids.Id
	Params valobj.Ipv6Params
}

func (SetIpv6Params) Serializable() bool { return false }

func (c SetIpv6Params) Exec(w *wan.Wan) (*wan.Wan, []event.Event, error) {
	if w == nil {
		return nil, nil, ErrWanNotFound
	}
	if w.Ipv6.Equal(c.Params) {
		return nil, nil, ErrAlreadySet
	}
	if w.Mode == valobj.ConnPPPoE {
		return nil, nil, ErrConnectionIsPPPoE
	}

	w.Ipv6 = c.Params
	var payload event.Payload
	if c.Params.Mode == valobj.Ipv6Static {
		payload = event.WanIpv6SetToStatic{WanID: w.ID, Params: c.Params}
	} else {
		payload = event.WanIpv6SetToRA{WanID: w.ID}
	}
	evt := w.Metadata.Record(w.ID, payload)
	return w, []event.Event{evt}, nil
}

func (c SetIpv6Params) Process(ctx context.Context, tx db.Tx) (any, error) {
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
