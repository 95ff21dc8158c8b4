package netcmd

import (
	"context"
	"fmt"
	"net"

	"github.com/chomba/rackd/internal/db"
	"github.com/chomba/rackd/internal/event"
	"github.com/chomba/rackd/internal/ids"
	"github.com/chomba/rackd/internal/prefix"
	"github.com/chomba/rackd/internal/query"
	"github.com/chomba/rackd/internal/store"
	"github.com/chomba/rackd/internal/wan"
)

// RecordLinkWentUp appends a LinkWentUp event to the WAN whose id equals
// the tracked link's id. Submitted by the tracker's status poller as a
// fire-and-forget internal command (the spec's "internal events" variant),
// never issued by an external caller.
type RecordLinkWentUp struct {
	LinkID ids.Id
	Prefix prefix.Ipv4Prefix
}

func (RecordLinkWentUp) Serializable() bool { return false }

func (c RecordLinkWentUp) Process(ctx context.Context, tx db.Tx) (any, error) {
	return recordOnTrackedWan(ctx, tx, c.LinkID, func(*wan.Wan) event.Payload {
		return event.LinkWentUp{LinkID: c.LinkID, Prefix: c.Prefix}
	})
}

// RecordLinkWentDown appends a LinkWentDown event for the tracked link.
type RecordLinkWentDown struct {
	LinkID ids.Id
	Reason string
}

func (RecordLinkWentDown) Serializable() bool { return false }

func (c RecordLinkWentDown) Process(ctx context.Context, tx db.Tx) (any, error) {
	return recordOnTrackedWan(ctx, tx, c.LinkID, func(*wan.Wan) event.Payload {
		return event.LinkWentDown{LinkID: c.LinkID, Reason: c.Reason}
	})
}

// RecordGatewayChanged appends a GatewayChanged event for the tracked
// link's newly observed gateway address (either family).
type RecordGatewayChanged struct {
	LinkID  ids.Id
	Gateway net.IP
}

func (RecordGatewayChanged) Serializable() bool { return false }

func (c RecordGatewayChanged) Process(ctx context.Context, tx db.Tx) (any, error) {
	return recordOnTrackedWan(ctx, tx, c.LinkID, func(*wan.Wan) event.Payload {
		return event.GatewayChanged{LinkID: c.LinkID, Gateway: c.Gateway}
	})
}

// recordOnTrackedWan loads the WAN identified by linkID, records the
// payload built from it as a new pending event, and saves the result.
// Tracker-originated commands have no business-rule preconditions to
// enforce (unlike the external catalogue) — the link either still exists
// as a WAN or it doesn't, in which case there is nothing to record.
func recordOnTrackedWan(ctx context.Context, tx db.Tx, linkID ids.Id, payload func(*wan.Wan) event.Payload) (any, error) {
	w, err := query.LoadWan(ctx, tx, linkID)
	if err == store.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load tracked wan: %w", err)
	}

	w.Metadata.Record(w.ID, payload(w))
	if err := store.Save(ctx, tx, w); err != nil {
		return nil, fmt.Errorf("save link event: %w", err)
	}
	return nil, nil
}
