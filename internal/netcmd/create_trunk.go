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
)

// CreateTrunk creates a trunk with the given name, rejecting a duplicate
// name case-insensitively.
type CreateTrunk struct {
	Name string
}

func (CreateTrunk) Serializable() bool { return true }

// createTrunkReads is everything Exec needs, gathered by Process before
// calling it, so Exec stays a pure function of its inputs.
type createTrunkReads struct {
	rack       *rack.Rack
	nameExists bool
}

// Exec is the authoritative rule: given the declared reads, decide the
// result and the events to emit. It performs no I/O.
func (c CreateTrunk) Exec(reads createTrunkReads) (*trunk.Trunk, []event.Event, error) {
	if reads.rack == nil {
		return nil, nil, ErrRackUninitialized
	}
	name, err := valobj.NewName(c.Name)
	if err != nil {
		return nil, nil, err
	}
	if reads.nameExists {
		return nil, nil, ErrNameAlreadyInUse
	}

	t := &trunk.Trunk{ID: ids.New(), Name: name}
	evt := t.Metadata.Record(t.ID, event.TrunkCreated{TrunkID: t.ID, Name: name})
	return t, []event.Event{evt}, nil
}

func (c CreateTrunk) Process(ctx context.Context, tx db.Tx) (any, error) {
	r, err := query.LoadRack(ctx, tx)
	if err != nil && err != store.ErrNotFound {
		return nil, fmt.Errorf("load rack: %w", err)
	}

	foldKey := valobj.Name(c.Name).FoldKey()
	_, err = query.FindTrunkViewByName(ctx, tx, foldKey)
	nameExists := err == nil
	if err != nil && err != store.ErrNotFound {
		return nil, fmt.Errorf("find trunk_view by name: %w", err)
	}

	t, _, err := c.Exec(createTrunkReads{rack: r, nameExists: nameExists})
	if err != nil {
		return nil, err
	}
	if err := store.Save(ctx, tx, t); err != nil {
		return nil, fmt.Errorf("save trunk: %w", err)
	}
	return t, nil
}
