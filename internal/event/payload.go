package event

import (
	"net"

	"github.com/chomba/rackd/internal/ids"
	"github.com/chomba/rackd/internal/prefix"
	"github.com/chomba/rackd/internal/valobj"
)

// TrunkCreated records the creation of a trunk aggregate.
type TrunkCreated struct {
	TrunkID ids.Id
	Name    valobj.Name
}

func (TrunkCreated) Kind() string { return "trunk_created" }

// WanCreated records the creation of a WAN attached to a trunk+VLAN pair.
type WanCreated struct {
	WanID   ids.Id
	RackID  ids.Id
	TrunkID ids.Id
	Vlan    valobj.Vlan
	Name    valobj.Name
	Mode    valobj.ConnMode
}

func (WanCreated) Kind() string { return "wan_created" }

// WanRenamed records a WAN's display name changing.
type WanRenamed struct {
	WanID ids.Id
	Name  valobj.Name
}

func (WanRenamed) Kind() string { return "wan_renamed" }

// WanMacAddrSet records a WAN's MAC policy changing.
type WanMacAddrSet struct {
	WanID  ids.Id
	Policy valobj.MacPolicy
}

func (WanMacAddrSet) Kind() string { return "wan_mac_addr_set" }

// WanIpv4ParamsSet records a WAN's IPv4 parameters changing.
type WanIpv4ParamsSet struct {
	WanID  ids.Id
	Params valobj.Ipv4Params
}

func (WanIpv4ParamsSet) Kind() string { return "wan_ipv4_params_set" }

// WanIpv6SetToStatic records a WAN's IPv6 parameters being pinned to a
// static address/gateway.
type WanIpv6SetToStatic struct {
	WanID  ids.Id
	Params valobj.Ipv6Params
}

func (WanIpv6SetToStatic) Kind() string { return "wan_ipv6_set_to_static" }

// WanIpv6SetToRA records a WAN's IPv6 parameters reverting to
// router-advertisement derivation.
type WanIpv6SetToRA struct {
	WanID ids.Id
}

func (WanIpv6SetToRA) Kind() string { return "wan_ipv6_set_to_ra" }

// LinkWentUp records a tracked link transitioning to an Up status.
type LinkWentUp struct {
	LinkID ids.Id
	Prefix prefix.Ipv4Prefix
}

func (LinkWentUp) Kind() string { return "link_went_up" }

// LinkWentDown records a tracked link transitioning to a Down status.
type LinkWentDown struct {
	LinkID ids.Id
	Reason string
}

func (LinkWentDown) Kind() string { return "link_went_down" }

// GatewayChanged records the eBPF gateway-map poller observing a new
// gateway MAC/IP pair for a link.
type GatewayChanged struct {
	LinkID  ids.Id
	Gateway net.IP
}

func (GatewayChanged) Kind() string { return "gateway_changed" }

func init() {
	register("trunk_created", func() Payload { return &TrunkCreated{} })
	register("wan_created", func() Payload { return &WanCreated{} })
	register("wan_renamed", func() Payload { return &WanRenamed{} })
	register("wan_mac_addr_set", func() Payload { return &WanMacAddrSet{} })
	register("wan_ipv4_params_set", func() Payload { return &WanIpv4ParamsSet{} })
	register("wan_ipv6_set_to_static", func() Payload { return &WanIpv6SetToStatic{} })
	register("wan_ipv6_set_to_ra", func() Payload { return &WanIpv6SetToRA{} })
	register("link_went_up", func() Payload { return &LinkWentUp{} })
	register("link_went_down", func() Payload { return &LinkWentDown{} })
	register("gateway_changed", func() Payload { return &GatewayChanged{} })
}
