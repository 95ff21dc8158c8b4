// Package tracker watches link carrier/admin state and gateway discovery
// for tracked WANs, translating netlink and eBPF observations into
// LinkWentUp/LinkWentDown/GatewayChanged events delivered to the command
// actor.
package tracker

import "fmt"

// DownReason names why a link's status is Down.
type DownReason int

const (
	// WentMissing means the link's ifindex disappeared from netlink
	// entirely (e.g. a PPPoE session tearing down its virtual interface).
	WentMissing DownReason = iota
	// AdminDown means IFF_UP is not set.
	AdminDown
	// Disconnected means IFF_UP is set but IFF_LOWER_UP is not (no carrier).
	Disconnected
)

func (r DownReason) String() string {
	switch r {
	case WentMissing:
		return "went_missing"
	case AdminDown:
		return "admin_down"
	case Disconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// Family names which address families a link has working connectivity on.
type Family int

const (
	NoFamily Family = iota
	V4
	V6
	DualStack
)

func (f Family) String() string {
	switch f {
	case V4:
		return "v4"
	case V6:
		return "v6"
	case DualStack:
		return "dual_stack"
	default:
		return "none"
	}
}

// UpState distinguishes "carrier present" from "carrier present and L3
// reachability confirmed".
type UpState int

const (
	// Connected means the link has carrier (IFF_UP && IFF_LOWER_UP) but
	// reachability has not yet been confirmed.
	Connected UpState = iota
	// InternetUp means a reachability probe has succeeded for at least one
	// address family.
	InternetUp
)

// Status is the tracked link's state machine value, mirroring
// LinkStatus from the domain this tracker was distilled from:
// Unknown, Down(reason), Up(Connected | InternetUp(family)).
type Status struct {
	Kind   StatusKind
	Down   DownReason
	Up     UpState
	Family Family
}

// StatusKind discriminates the three top-level Status variants.
type StatusKind int

const (
	Unknown StatusKind = iota
	Down
	Up
)

// UnknownStatus is the zero-value status, before any poll has observed the
// link.
var UnknownStatus = Status{Kind: Unknown}

// DownStatus builds a Down status for the given reason.
func DownStatus(reason DownReason) Status {
	return Status{Kind: Down, Down: reason}
}

// ConnectedStatus builds an Up(Connected) status.
func ConnectedStatus() Status {
	return Status{Kind: Up, Up: Connected}
}

// InternetUpStatus builds an Up(InternetUp(family)) status.
func InternetUpStatus(family Family) Status {
	return Status{Kind: Up, Up: InternetUp, Family: family}
}

// Equal reports whether two statuses carry the same variant and payload,
// used by the poller to suppress no-op transitions.
func (s Status) Equal(other Status) bool {
	return s == other
}

func (s Status) String() string {
	switch s.Kind {
	case Down:
		return fmt.Sprintf("down(%s)", s.Down)
	case Up:
		if s.Up == InternetUp {
			return fmt.Sprintf("up(internet_up(%s))", s.Family)
		}
		return "up(connected)"
	default:
		return "unknown"
	}
}

// nextStatus computes the new Status given the previous one, the raw
// netlink flags observed this poll, and (when the link has carrier) the
// reachability result of the most recent probe. It mirrors
// LinkStatus::from(flags) plus the tracker's Connected<->InternetUp
// refinement, combined into one pure step so the transition logic is
// testable without a live link.
func nextStatus(prev Status, adminUp, lowerUp bool, probe func() Family) Status {
	if !adminUp {
		return DownStatus(AdminDown)
	}
	if !lowerUp {
		return DownStatus(Disconnected)
	}

	family := probe()
	if family == NoFamily {
		return ConnectedStatus()
	}
	return InternetUpStatus(family)
}
