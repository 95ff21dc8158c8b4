package prefix

import (
	"fmt"
	"math/big"
	"net"
	"strconv"
	"strings"
)

// Ipv6Prefix is a canonicalised IPv6 network prefix: addr has all bits
// beyond len zeroed. Addresses are held as a big-endian 16-byte array and
// compared via big.Int since Go has no native uint128.
type Ipv6Prefix struct {
	addr [16]byte
	len  uint8
}

// NewIpv6Prefix builds a canonical prefix from a host address and length.
// len is taken modulo 129 to mirror the reference implementation's
// wrapping behaviour for out-of-range lengths.
func NewIpv6Prefix(addr [16]byte, length uint8) Ipv6Prefix {
	if length > 128 {
		length = length % 129
	}
	return Ipv6Prefix{addr: maskV6(addr, length), len: length}
}

func maskV6(addr [16]byte, length uint8) [16]byte {
	var out [16]byte
	fullBytes := int(length) / 8
	copy(out[:fullBytes], addr[:fullBytes])
	rem := length % 8
	if rem != 0 && fullBytes < 16 {
		mask := byte(0xFF << (8 - rem))
		out[fullBytes] = addr[fullBytes] & mask
	}
	return out
}

// Len reports the prefix length in bits.
func (p Ipv6Prefix) Len() uint8 { return p.len }

// Addr returns the canonical network address.
func (p Ipv6Prefix) Addr() [16]byte { return p.addr }

// First returns the first address in the prefix (equal to Addr).
func (p Ipv6Prefix) First() [16]byte { return p.addr }

// Last returns the last address in the prefix.
func (p Ipv6Prefix) Last() [16]byte {
	if p.len == 0 || p.len == 128 {
		return p.addr
	}
	var out [16]byte
	copy(out[:], p.addr[:])
	fullBytes := int(p.len) / 8
	rem := p.len % 8
	for i := fullBytes + 1; i < 16; i++ {
		out[i] = 0xFF
	}
	if rem != 0 {
		hostMask := byte(0xFF >> rem)
		out[fullBytes] |= hostMask
	} else if fullBytes < 16 {
		out[fullBytes] = 0xFF
	}
	return out
}

// Endpoints returns (First, Last).
func (p Ipv6Prefix) Endpoints() ([16]byte, [16]byte) {
	return p.First(), p.Last()
}

// Truncate shortens the prefix to length, returning ok=false if length is
// not strictly shorter than the current prefix.
func (p Ipv6Prefix) Truncate(length uint8) (Ipv6Prefix, bool) {
	if length >= p.len {
		return Ipv6Prefix{}, false
	}
	return NewIpv6Prefix(maskV6(p.addr, length), length), true
}

// Extend concatenates a longer child prefix into the free host bits of p,
// aligned to a 16-bit (hextet) boundary. It returns ok=false if child is
// not strictly longer than p, or if child's high bits (once aligned)
// disagree with p's fixed bits.
func (p Ipv6Prefix) Extend(child Ipv6Prefix) (Ipv6Prefix, bool) {
	if child.len <= p.len {
		return Ipv6Prefix{}, false
	}
	offset := p.len
	if p.len%16 != 0 {
		offset = (p.len / 16) * 16
	}
	shifted := shiftRight128(child.addr, offset)
	tc := maskV6(shifted, p.len)

	if orBytes(tc, p.addr) != p.addr {
		return Ipv6Prefix{}, false
	}
	return NewIpv6Prefix(orBytes(p.addr, shifted), child.len), true
}

func orBytes(a, b [16]byte) [16]byte {
	var out [16]byte
	for i := range a {
		out[i] = a[i] | b[i]
	}
	return out
}

func shiftRight128(addr [16]byte, bits uint8) [16]byte {
	if bits == 0 {
		return addr
	}
	v := new(big.Int).SetBytes(addr[:])
	v.Rsh(v, uint(bits))
	var out [16]byte
	b := v.Bytes()
	copy(out[16-len(b):], b)
	return out
}

// Ipv6Overlap classifies how two prefixes' address ranges relate.
type Ipv6Overlap int

const (
	Ipv6OverlapEqual Ipv6Overlap = iota
	Ipv6OverlapSubset
	Ipv6OverlapPartial
)

// Overlaps classifies the overlap between p and other, reporting ok=false
// when the two ranges are disjoint. Overlaps is symmetric:
// p.Overlaps(other) == other.Overlaps(p).
func (p Ipv6Prefix) Overlaps(other Ipv6Prefix) (Ipv6Overlap, bool) {
	a0, a1 := p.Endpoints()
	b0, b1 := other.Endpoints()

	if cmp16(a0, b0) > 0 || (cmp16(a0, b0) == 0 && cmp16(a1, b1) > 0) {
		a0, a1, b0, b1 = b0, b1, a0, a1
	}

	switch {
	case cmp16(a0, b0) == 0 && cmp16(a1, b1) == 0:
		return Ipv6OverlapEqual, true
	case cmp16(a1, b1) >= 0:
		return Ipv6OverlapSubset, true
	case cmp16(a1, b0) >= 0:
		return Ipv6OverlapPartial, true
	default:
		return 0, false
	}
}

func cmp16(a, b [16]byte) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// String renders the canonical "addr/len" form.
func (p Ipv6Prefix) String() string {
	ip := net.IP(p.addr[:])
	return fmt.Sprintf("%s/%d", ip.String(), p.len)
}

// ParseIpv6Prefix parses the "addr/len" form, canonicalising the result.
func ParseIpv6Prefix(s string) (Ipv6Prefix, error) {
	addrPart, lenPart, ok := strings.Cut(s, "/")
	if !ok {
		return Ipv6Prefix{}, fmt.Errorf("prefix: invalid format %q, expected <address>/<prefix>", s)
	}
	ip := net.ParseIP(addrPart)
	if ip == nil || ip.To4() != nil {
		return Ipv6Prefix{}, fmt.Errorf("prefix: invalid ipv6 address %q", addrPart)
	}
	v6 := ip.To16()
	length, err := strconv.Atoi(lenPart)
	if err != nil || length <= 0 || length > 128 {
		return Ipv6Prefix{}, fmt.Errorf("prefix: invalid prefix length %q", lenPart)
	}
	var addr [16]byte
	copy(addr[:], v6)
	return NewIpv6Prefix(addr, uint8(length)), nil
}

// IsGlobalUnicast reports whether ip is a global unicast IPv6 address,
// excluding link-local, loopback, multicast, and unspecified ranges.
func IsGlobalUnicast(ip net.IP) bool {
	if ip == nil || ip.To4() != nil {
		return false
	}
	return ip.IsGlobalUnicast() && !ip.IsLinkLocalUnicast()
}

// IsLinkLocalUnicast reports whether ip is an IPv6 link-local unicast
// address (fe80::/10).
func IsLinkLocalUnicast(ip net.IP) bool {
	if ip == nil || ip.To4() != nil {
		return false
	}
	return ip.IsLinkLocalUnicast()
}
