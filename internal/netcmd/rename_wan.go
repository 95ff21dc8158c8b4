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

// RenameWan changes a WAN's display name, case-insensitively rejecting a
// collision with any live network's name, including the WAN's own
// current name.
type RenameWan struct {
	ID   ids.Id
	Name string
}

func (RenameWan) Serializable() bool { return true }

type renameWanReads struct {
	wan        *wan.Wan
	nameExists bool
}

func (c RenameWan) Exec(reads renameWanReads) (*wan.Wan, []event.Event, error) {
	if reads.wan == nil {
		return nil, nil, ErrWanNotFound
	}
	name, err := valobj.NewName(c.Name)
	if err != nil {
		return nil, nil, err
	}
	if reads.nameExists {
		return nil, nil, ErrNameAlreadyInUse
	}

	w := reads.wan
	w.Name = name
	evt := w.Metadata.Record(w.ID, event.WanRenamed{WanID: w.ID, Name: name})
	return w, []event.Event{evt}, nil
}

func (c RenameWan) Process(ctx context.Context, tx db.Tx) (any, error) {
	w, err := query.LoadWan(ctx, tx, c.ID)
	if err != nil && err != store.ErrNotFound {
		return nil, fmt.Errorf("load wan: %w", err)
	}

	foldKey := valobj.Name(c.Name).FoldKey()
	_, err = query.FindNetworkViewByName(ctx, tx, foldKey)
	nameExists := err == nil
	if err != nil && err != store.ErrNotFound {
		return nil, fmt.Errorf("find network_view by name: %w", err)
	}

	updated, _, err := c.Exec(renameWanReads{wan: w, nameExists: nameExists})
	if err != nil {
		return nil, err
	}
	if err := store.Save(ctx, tx, updated); err != nil {
		return nil, fmt.Errorf("save wan: %w", err)
	}
	return updated, nil
}
