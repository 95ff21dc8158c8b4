// Package prefix implements canonical IPv4/IPv6 prefix arithmetic: parsing,
// truncation, extension, and overlap classification. Every prefix value is
// canonicalised on construction so host bits are always zero.
package prefix

import (
	"encoding/binary"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// Ipv4Prefix is a canonicalised IPv4 network prefix: addr has all bits
// beyond len zeroed.
type Ipv4Prefix struct {
	addr uint32
	len  uint8
}

// NewIpv4Prefix builds a canonical prefix from a host address and length.
// len is taken modulo 33 to mirror the reference implementation's wrapping
// behaviour for out-of-range lengths.
func NewIpv4Prefix(addr [4]byte, length uint8) Ipv4Prefix {
	if length > 32 {
		length = length % 33
	}
	bits := binary.BigEndian.Uint32(addr[:])
	return Ipv4Prefix{addr: maskV4(bits, length), len: length}
}

func maskV4(bits uint32, length uint8) uint32 {
	if length == 0 {
		return 0
	}
	if length >= 32 {
		return bits
	}
	mask := ^uint32(0) << (32 - length)
	return bits & mask
}

// Len reports the prefix length in bits.
func (p Ipv4Prefix) Len() uint8 { return p.len }

// Addr returns the canonical network address as a 4-byte array.
func (p Ipv4Prefix) Addr() [4]byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], p.addr)
	return b
}

// First returns the first address in the prefix (equal to Addr).
func (p Ipv4Prefix) First() [4]byte { return p.Addr() }

// Last returns the last (broadcast) address in the prefix.
func (p Ipv4Prefix) Last() [4]byte {
	var b [4]byte
	if p.len == 0 || p.len == 32 {
		binary.BigEndian.PutUint32(b[:], p.addr)
		return b
	}
	last := p.addr | (^uint32(0) >> p.len)
	binary.BigEndian.PutUint32(b[:], last)
	return b
}

// Endpoints returns (First, Last).
func (p Ipv4Prefix) Endpoints() ([4]byte, [4]byte) {
	return p.First(), p.Last()
}

// Truncate shortens the prefix to length, returning ok=false if length is
// not strictly shorter than the current prefix.
func (p Ipv4Prefix) Truncate(length uint8) (Ipv4Prefix, bool) {
	if length >= p.len {
		return Ipv4Prefix{}, false
	}
	bits := p.addr & (^uint32(0) << (32 - length))
	return NewIpv4Prefix(beBytes4(bits), length), true
}

// Extend concatenates a longer child prefix into the free host bits of p,
// aligned to a byte boundary. It returns ok=false if child is not strictly
// longer than p, or if child's high bits (once aligned) disagree with p's
// fixed bits.
func (p Ipv4Prefix) Extend(child Ipv4Prefix) (Ipv4Prefix, bool) {
	if child.len <= p.len {
		return Ipv4Prefix{}, false
	}
	offset := p.len
	if p.len%8 != 0 {
		offset = (p.len / 8) * 8
	}
	shifted := child.addr >> offset
	tc := maskV4(shifted, p.len)

	if (tc | p.addr) != p.addr {
		return Ipv4Prefix{}, false
	}
	return NewIpv4Prefix(beBytes4(p.addr|shifted), child.len), true
}

// Ipv4Overlap classifies how two prefixes' address ranges relate.
type Ipv4Overlap int

const (
	Ipv4OverlapNone Ipv4Overlap = iota
	Ipv4OverlapEqual
	Ipv4OverlapSubset
	Ipv4OverlapPartial
)

// Overlaps classifies the overlap between p and other, reporting ok=false
// when the two ranges are disjoint. Overlaps is symmetric:
// p.Overlaps(other) == other.Overlaps(p).
func (p Ipv4Prefix) Overlaps(other Ipv4Prefix) (Ipv4Overlap, bool) {
	a0, a1 := p.Endpoints()
	b0, b1 := other.Endpoints()

	if cmp4(a0, b0) > 0 || (cmp4(a0, b0) == 0 && cmp4(a1, b1) > 0) {
		a0, a1, b0, b1 = b0, b1, a0, a1
	}

	switch {
	case cmp4(a0, b0) == 0 && cmp4(a1, b1) == 0:
		return Ipv4OverlapEqual, true
	case cmp4(a1, b1) >= 0:
		return Ipv4OverlapSubset, true
	case cmp4(a1, b0) >= 0:
		return Ipv4OverlapPartial, true
	default:
		return 0, false
	}
}

func cmp4(a, b [4]byte) int {
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

func beBytes4(v uint32) [4]byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return b
}

// String renders the canonical "a.b.c.d/len" form.
func (p Ipv4Prefix) String() string {
	addr := p.Addr()
	ip := net.IPv4(addr[0], addr[1], addr[2], addr[3])
	return fmt.Sprintf("%s/%d", ip.String(), p.len)
}

// ParseIpv4Prefix parses the "a.b.c.d/len" form, canonicalising the result.
func ParseIpv4Prefix(s string) (Ipv4Prefix, error) {
	addrPart, lenPart, ok := strings.Cut(s, "/")
	if !ok {
		return Ipv4Prefix{}, fmt.Errorf("prefix: invalid format %q, expected <address>/<prefix>", s)
	}
	ip := net.ParseIP(addrPart)
	if ip == nil {
		return Ipv4Prefix{}, fmt.Errorf("prefix: invalid ipv4 address %q", addrPart)
	}
	v4 := ip.To4()
	if v4 == nil {
		return Ipv4Prefix{}, fmt.Errorf("prefix: not an ipv4 address %q", addrPart)
	}
	length, err := strconv.Atoi(lenPart)
	if err != nil || length < 0 || length > 32 {
		return Ipv4Prefix{}, fmt.Errorf("prefix: invalid prefix length %q", lenPart)
	}
	var addr [4]byte
	copy(addr[:], v4)
	return NewIpv4Prefix(addr, uint8(length)), nil
}
