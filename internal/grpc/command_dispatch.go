package grpc

import (
	"encoding/json"
	"fmt"

	"github.com/chomba/rackd/internal/actor"
	"github.com/chomba/rackd/internal/netcmd"
)

// decodeCommand unmarshals payload into the netcmd catalogue entry named
// by kind. Unknown kinds are a caller error (codes.InvalidArgument at the
// RPC boundary), not a server fault.
func decodeCommand(kind string, payload []byte) (actor.Command, error) {
	switch kind {
	case "CreateTrunk":
		var c netcmd.CreateTrunk
		if err := unmarshalCommand(payload, &c); err != nil {
			return nil, err
		}
		return c, nil
	case "CreateWan":
		var c netcmd.CreateWan
		if err := unmarshalCommand(payload, &c); err != nil {
			return nil, err
		}
		return c, nil
	case "RenameWan":
		var c netcmd.RenameWan
		if err := unmarshalCommand(payload, &c); err != nil {
			return nil, err
		}
		return c, nil
	case "SetMacAddr":
		var c netcmd.SetMacAddr
		if err := unmarshalCommand(payload, &c); err != nil {
			return nil, err
		}
		return c, nil
	case "SetIpv4Params":
		var c netcmd.SetIpv4Params
		if err := unmarshalCommand(payload, &c); err != nil {
			return nil, err
		}
		return c, nil
	case "SetIpv6Params":
		var c netcmd.SetIpv6Params
		if err := unmarshalCommand(payload, &c); err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown command kind %q", kind)
	}
}

func unmarshalCommand(payload []byte, dst any) error {
	if len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return fmt.Errorf("decode command payload: %w", err)
	}
	return nil
}
