package netcmd

import "github.com/chomba/rackd/internal/actor"

// Compile-time assertions that every catalogue entry satisfies
// actor.Command: Process(ctx, tx) (any, error) plus Serializable() bool.
var (
	_ actor.Command = CreateTrunk{}
	_ actor.Command = CreateWan{}
	_ actor.Command = RenameWan{}
	_ actor.Command = SetMacAddr{}
	_ actor.Command = SetIpv4Params{}
	_ actor.Command = SetIpv6Params{}
	_ actor.Command = RecordLinkWentUp{}
	_ actor.Command = RecordLinkWentDown{}
	_ actor.Command = RecordGatewayChanged{}
)
