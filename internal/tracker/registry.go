package tracker

import (
	"context"
	"sync"

	"github.com/chomba/rackd/internal/ids"
	"github.com/chomba/rackd/internal/prefix"
)

// LinkTracker is the in-memory (never persisted) record of one tracked
// link: its last observed status and, once it has one, its routed IPv4
// prefix.
type LinkTracker struct {
	LinkID     ids.Id
	Ifindex    int
	IfName     string
	Prefix     prefix.Ipv4Prefix
	LastStatus Status

	mu     sync.Mutex
	cancel context.CancelFunc
}

func (t *LinkTracker) setStatus(s Status) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.LastStatus = s
}

func (t *LinkTracker) status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.LastStatus
}

// Sink receives the events a tracker produces; the command actor's inbox
// implements this by wrapping each event in a fire-and-forget internal
// command envelope. Exactly one of down, up, gateway is non-nil per call.
type Sink interface {
	Emit(linkID ids.Id, down *DownReason, up *Status, routedPrefix prefix.Ipv4Prefix, gateway *GatewayObservation)
}

// GatewayObservation is a single IPv4/IPv6 gateway-map read.
type GatewayObservation struct {
	Ipv4 [4]byte
	Ipv6 [16]byte
}

// Registry holds one LinkTracker (and its running goroutines) per tracked
// link, keyed by link id. Re-tracking a link cancels its previous
// TrackerSet before starting the replacement, per the registry's
// cancellation contract.
type Registry struct {
	trackers sync.Map // ids.Id -> *LinkTracker
}

// NewRegistry returns an empty tracker registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Track starts (or restarts) tracking linkID on the named interface,
// polling netlink once a second and the eBPF gateway maps every two
// seconds, delivering observations to sink.
func (r *Registry) Track(ctx context.Context, linkID ids.Id, ifindex int, ifName string, routedPrefix prefix.Ipv4Prefix, sink Sink) *LinkTracker {
	r.Untrack(linkID)

	trackerCtx, cancel := context.WithCancel(ctx)
	lt := &LinkTracker{
		LinkID:     linkID,
		Ifindex:    ifindex,
		IfName:     ifName,
		Prefix:     routedPrefix,
		LastStatus: UnknownStatus,
		cancel:     cancel,
	}
	r.trackers.Store(linkID, lt)

	go runStatusTracker(trackerCtx, lt, ICMPProber{}, sink)
	go runGatewayTracker(trackerCtx, lt, ifName, sink)

	return lt
}

// Untrack cancels and removes any tracker currently registered for
// linkID. It is a no-op if linkID is not tracked.
func (r *Registry) Untrack(linkID ids.Id) {
	v, ok := r.trackers.LoadAndDelete(linkID)
	if !ok {
		return
	}
	v.(*LinkTracker).cancel()
}

// Get returns the tracker currently registered for linkID, if any.
func (r *Registry) Get(linkID ids.Id) (*LinkTracker, bool) {
	v, ok := r.trackers.Load(linkID)
	if !ok {
		return nil, false
	}
	return v.(*LinkTracker), true
}
