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

// SetMacAddr sets a WAN's MAC policy. Idempotent: setting the same policy
// again is rejected with AlreadySet rather than re-applied.
type SetMacAddr struct {
	ID     ids.Id
	Policy valobj.MacPolicy
}

func (SetMacAddr) Serializable() bool { return false }

func (c SetMacAddr) Exec(w *wan.Wan) (*wan.Wan, []event.Event, error) {
	if w == nil {
		return nil, nil, ErrWanNotFound
	}
	if w.Mode == valobj.ConnPPPoE {
		return nil, nil, ErrConnectionIsPPPoE
	}
	if w.Mac.Equal(c.Policy) {
		return nil, nil, ErrAlreadySet
	}

	w.Mac = c.Policy
	evt := w.Metadata.Record(w.ID, event.WanMacAddrSet{WanID: w.ID, Policy: c.Policy})
	return w, []event.Event{evt}, nil
}

func (c SetMacAddr) Process(ctx context.Context, tx db.Tx) (any, error) {
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
