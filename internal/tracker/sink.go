package tracker

import (
	"context"
	"net"

	"github.com/chomba/rackd/internal/actor"
	"github.com/chomba/rackd/internal/ids"
	"github.com/chomba/rackd/internal/netcmd"
	"github.com/chomba/rackd/internal/prefix"
)

// CommandSink delivers tracker observations to the Command Actor's inbox
// as fire-and-forget internal commands, so LinkWentUp/LinkWentDown/
// GatewayChanged are recorded through the same event-sourced path as
// externally submitted commands.
type CommandSink struct {
	Actor *actor.CommandActor
}

// Emit implements Sink by translating the observation into the matching
// netcmd Record* command and notifying the actor without waiting for it
// to be processed.
func (s CommandSink) Emit(linkID ids.Id, down *DownReason, up *Status, routedPrefix prefix.Ipv4Prefix, gateway *GatewayObservation) {
	ctx := context.Background()
	switch {
	case down != nil:
		_ = s.Actor.Notify(ctx, netcmd.RecordLinkWentDown{LinkID: linkID, Reason: down.String()})
	case up != nil:
		_ = s.Actor.Notify(ctx, netcmd.RecordLinkWentUp{LinkID: linkID, Prefix: routedPrefix})
	case gateway != nil:
		s.emitGateway(ctx, linkID, gateway)
	}
}

func (s CommandSink) emitGateway(ctx context.Context, linkID ids.Id, gateway *GatewayObservation) {
	var zero4 [4]byte
	if gateway.Ipv4 != zero4 {
		_ = s.Actor.Notify(ctx, netcmd.RecordGatewayChanged{LinkID: linkID, Gateway: net.IP(gateway.Ipv4[:])})
		return
	}
	var zero16 [16]byte
	if gateway.Ipv6 != zero16 {
		_ = s.Actor.Notify(ctx, netcmd.RecordGatewayChanged{LinkID: linkID, Gateway: net.IP(gateway.Ipv6[:])})
	}
}

var _ Sink = CommandSink{}
