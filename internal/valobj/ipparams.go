package valobj

import (
	"errors"
	"fmt"
	"net"
)

// Ipv4Mode discriminates the Ipv4Params union.
type Ipv4Mode string

const (
	Ipv4DHCP   Ipv4Mode = "dhcp"
	Ipv4Static Ipv4Mode = "static"
)

// Ipv4Params is the sum type {DHCP, Static{addr, mask, gw}}.
type Ipv4Params struct {
	Mode    Ipv4Mode
	Addr    net.IP
	MaskLen uint8
	Gateway net.IP
}

// DHCPIpv4 returns the DHCP variant, the WAN default.
func DHCPIpv4() Ipv4Params {
	return Ipv4Params{Mode: Ipv4DHCP}
}

// Validation-class sentinels for the static IP parameter setters
// (spec.md §7, "Validation").
var (
	ErrInvalidMaskLength   = errors.New("invalid mask length")
	ErrInvalidIpv4Address  = errors.New("invalid ipv4 address")
	ErrInvalidIpv4Gateway  = errors.New("invalid ipv4 gateway")
	ErrInvalidPrefixLength = errors.New("invalid prefix length")
	ErrInvalidIpv6Address  = errors.New("invalid ipv6 address")
	ErrInvalidIpv6Gateway  = errors.New("invalid ipv6 gateway")
)

// NewStaticIpv4 validates and constructs the Static variant per spec.md
// §4.3 SetIpv4Params: mask in 8..=32, addr and gw unicast host addresses
// (not broadcast/doc/link-local/loopback/multicast/reserved).
func NewStaticIpv4(addr net.IP, maskLen int, gw net.IP) (Ipv4Params, error) {
	if maskLen < 8 || maskLen > 32 {
		return Ipv4Params{}, fmt.Errorf("%w: mask length %d not in [8, 32]", ErrInvalidMaskLength, maskLen)
	}
	if !isUnicastIpv4Host(addr) {
		return Ipv4Params{}, fmt.Errorf("%w: %s is not a unicast host address", ErrInvalidIpv4Address, addr)
	}
	if !isUnicastIpv4Host(gw) {
		return Ipv4Params{}, fmt.Errorf("%w: %s is not a unicast host address", ErrInvalidIpv4Gateway, gw)
	}
	return Ipv4Params{Mode: Ipv4Static, Addr: addr.To4(), MaskLen: uint8(maskLen), Gateway: gw.To4()}, nil
}

func isUnicastIpv4Host(ip net.IP) bool {
	v4 := ip.To4()
	if v4 == nil {
		return false
	}
	if v4.IsLoopback() || v4.IsMulticast() || v4.IsUnspecified() || v4.IsLinkLocalUnicast() {
		return false
	}
	if v4.Equal(net.IPv4bcast) {
		return false
	}
	// Documentation ranges (RFC 5737) and other reserved space.
	if inCIDR(v4, "192.0.2.0/24") || inCIDR(v4, "198.51.100.0/24") || inCIDR(v4, "203.0.113.0/24") {
		return false
	}
	if inCIDR(v4, "240.0.0.0/4") {
		return false
	}
	return true
}

func inCIDR(ip net.IP, cidr string) bool {
	_, block, err := net.ParseCIDR(cidr)
	if err != nil {
		return false
	}
	return block.Contains(ip)
}

// Equal reports whether p and other represent the same configured value,
// used by the idempotent setters' "AlreadySet" check.
func (p Ipv4Params) Equal(other Ipv4Params) bool {
	if p.Mode != other.Mode {
		return false
	}
	if p.Mode == Ipv4DHCP {
		return true
	}
	return p.Addr.Equal(other.Addr) && p.MaskLen == other.MaskLen && p.Gateway.Equal(other.Gateway)
}

// Ipv6Mode discriminates the Ipv6Params union.
type Ipv6Mode string

const (
	Ipv6FromRA Ipv6Mode = "from_ra"
	Ipv6Static Ipv6Mode = "static"
)

// Ipv6Params is the sum type {FromRA, Static{addr/plen, gw}}.
type Ipv6Params struct {
	Mode      Ipv6Mode
	Addr      net.IP
	PrefixLen uint8
	Gateway   net.IP
}

// FromRAIpv6 returns the router-advertisement-derived variant.
func FromRAIpv6() Ipv6Params {
	return Ipv6Params{Mode: Ipv6FromRA}
}

// NewStaticIpv6 validates and constructs the Static variant per spec.md
// §4.3 SetIpv6Params: plen >= 64, addr a global unicast address, gw a
// link-local unicast address.
func NewStaticIpv6(addr net.IP, plen int, gw net.IP) (Ipv6Params, error) {
	if plen < 64 || plen > 128 {
		return Ipv6Params{}, fmt.Errorf("%w: prefix length %d not >= 64", ErrInvalidPrefixLength, plen)
	}
	if addr.To4() != nil || !addr.IsGlobalUnicast() || addr.IsLinkLocalUnicast() {
		return Ipv6Params{}, fmt.Errorf("%w: %s is not a global unicast ipv6 address", ErrInvalidIpv6Address, addr)
	}
	if gw.To4() != nil || !gw.IsLinkLocalUnicast() {
		return Ipv6Params{}, fmt.Errorf("%w: %s is not a link-local ipv6 gateway", ErrInvalidIpv6Gateway, gw)
	}
	return Ipv6Params{Mode: Ipv6Static, Addr: addr.To16(), PrefixLen: uint8(plen), Gateway: gw.To16()}, nil
}

// Equal reports whether p and other represent the same configured value.
func (p Ipv6Params) Equal(other Ipv6Params) bool {
	if p.Mode != other.Mode {
		return false
	}
	if p.Mode == Ipv6FromRA {
		return true
	}
	return p.Addr.Equal(other.Addr) && p.PrefixLen == other.PrefixLen && p.Gateway.Equal(other.Gateway)
}
