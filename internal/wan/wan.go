// Package wan holds the Wan aggregate: a WAN network attached to a
// trunk+VLAN pair, with its MAC policy and IPv4/IPv6 configuration.
package wan

import (
	"github.com/chomba/rackd/internal/ids"
	"github.com/chomba/rackd/internal/store"
	"github.com/chomba/rackd/internal/valobj"
)

// Dhcp6Opts carries the handful of DHCPv6 options a WAN may request;
// meaningful only when Ipv6 is not statically configured.
type Dhcp6Opts struct {
	RequestPrefixDelegation bool `json:"request_prefix_delegation,omitempty"`
}

// Wan is the wan aggregate. Name is unique among all networks (trunks and
// wans share the same namespace via the NetworkView projection);
// (TrunkID, Vlan) is unique among wans. Ipv4/Ipv6 are only meaningful when
// Mode is IPoE.
type Wan struct {
	ID       ids.Id            `json:"id"`
	RackID   ids.Id            `json:"rack_id"`
	TrunkID  ids.Id            `json:"trunk_id"`
	Vlan     valobj.Vlan       `json:"vlan"`
	Name     valobj.Name       `json:"name"`
	Mode     valobj.ConnMode   `json:"mode"`
	Mac      valobj.MacPolicy  `json:"mac"`
	Ipv4     valobj.Ipv4Params `json:"ipv4"`
	Ipv6     valobj.Ipv6Params `json:"ipv6"`
	Dhcp6    Dhcp6Opts         `json:"dhcp6"`
	Metadata store.Metadata    `json:"metadata"`
}

func (w *Wan) StreamID() ids.Id      { return w.ID }
func (w *Wan) Meta() *store.Metadata { return &w.Metadata }

var _ store.Entity = (*Wan)(nil)
