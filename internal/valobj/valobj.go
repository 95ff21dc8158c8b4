// Package valobj holds the small validated value types shared by the
// network aggregates: VLAN ids, interface names, MAC policy, connection
// mode, and the IPv4/IPv6 parameter unions.
package valobj

import (
	"fmt"
	"net"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Vlan is a validated 802.1Q VLAN tag in the range [2, 4094]. VLAN 1 is
// reserved for the native/untagged network and 0/4095 are reserved by the
// 802.1Q standard.
type Vlan uint16

// NewVlan validates and constructs a Vlan.
func NewVlan(v int) (Vlan, error) {
	if v < 2 || v > 4094 {
		return 0, fmt.Errorf("%w: vlan %d not in [2, 4094]", ErrOutOfRange, v)
	}
	return Vlan(v), nil
}

func (v Vlan) Int() int { return int(v) }

// Name is a validated, non-empty display name. Uniqueness comparisons use
// FoldKey rather than raw equality.
type Name string

// NewName validates a raw name: non-empty, no control characters, bounded
// length.
func NewName(raw string) (Name, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("%w: name must not be empty", ErrMissingValue)
	}
	if len([]rune(trimmed)) > 128 {
		return "", fmt.Errorf("%w: name exceeds 128 characters", ErrOutOfRange)
	}
	for _, r := range trimmed {
		if r < 0x20 {
			return "", fmt.Errorf("%w: name contains control characters", ErrInvalidChars)
		}
	}
	return Name(trimmed), nil
}

func (n Name) String() string { return string(n) }

// FoldKey returns the Unicode-NFC-normalised, lower-cased form of the name
// used for case-insensitive uniqueness comparisons (spec.md §4.3's
// "tie-break/ordering policy").
func (n Name) FoldKey() string {
	return strings.ToLower(norm.NFC.String(string(n)))
}

// EqualFold reports whether two names are equal under FoldKey.
func (n Name) EqualFold(other Name) bool {
	return n.FoldKey() == other.FoldKey()
}

// MacMode selects how a WAN's MAC address is derived.
type MacMode string

const (
	MacAuto  MacMode = "auto"
	MacSpoof MacMode = "spoof"
)

// MacPolicy is the sum type {Auto, Spoof(addr)}.
type MacPolicy struct {
	Mode MacMode
	Addr net.HardwareAddr
}

// AutoMac returns the default "Auto" MAC policy.
func AutoMac() MacPolicy {
	return MacPolicy{Mode: MacAuto}
}

// SpoofMac validates addr and returns a "Spoof" MAC policy.
func SpoofMac(addr string) (MacPolicy, error) {
	hw, err := net.ParseMAC(addr)
	if err != nil {
		return MacPolicy{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if len(hw) != 6 {
		return MacPolicy{}, fmt.Errorf("%w: expected a 6-byte MAC address", ErrInvalidFormat)
	}
	return MacPolicy{Mode: MacSpoof, Addr: hw}, nil
}

func (m MacPolicy) Equal(other MacPolicy) bool {
	if m.Mode != other.Mode {
		return false
	}
	if m.Mode == MacAuto {
		return true
	}
	return m.Addr.String() == other.Addr.String()
}

func (m MacPolicy) String() string {
	if m.Mode == MacAuto {
		return "auto"
	}
	return m.Addr.String()
}

// ConnMode is the WAN connection mode.
type ConnMode string

const (
	ConnIPoE  ConnMode = "ipoe"
	ConnPPPoE ConnMode = "pppoe"
)

// Valid reports whether m is a recognised connection mode.
func (m ConnMode) Valid() bool {
	return m == ConnIPoE || m == ConnPPPoE
}
