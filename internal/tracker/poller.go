package tracker

import (
	"context"
	"net"
	"time"

	"github.com/chomba/rackd/internal/gatewaybpf"
	"github.com/chomba/rackd/internal/netlinkx"
	"github.com/chomba/rackd/internal/prefix"
)

const (
	statusPollInterval  = time.Second
	gatewayPollInterval = 2 * time.Second
)

// runStatusTracker polls netlinkx.GetLinkByIndex once a second, derives
// the link's Status, and emits LinkWentUp/LinkWentDown to sink whenever
// the status actually changes.
func runStatusTracker(ctx context.Context, lt *LinkTracker, prober Prober, sink Sink) {
	ticker := time.NewTicker(statusPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pollStatusOnce(ctx, lt, prober, sink)
		}
	}
}

func pollStatusOnce(ctx context.Context, lt *LinkTracker, prober Prober, sink Sink) {
	link, err := netlinkx.GetLinkByIndex(lt.Ifindex)
	if err != nil {
		transition(lt, DownStatus(WentMissing), sink)
		return
	}

	probe := func() Family {
		var srcV4, srcV6 net.IP
		if len(link.Ipv4Addrs) > 0 {
			srcV4 = link.Ipv4Addrs[0]
		}
		if len(link.Ipv6Addrs) > 0 {
			srcV6 = link.Ipv6Addrs[0]
		}
		if srcV4 == nil && srcV6 == nil {
			return NoFamily
		}
		return prober.Probe(ctx, srcV4, srcV6)
	}

	next := nextStatus(lt.status(), link.AdminUp, link.LowerUp, probe)
	transition(lt, next, sink)
}

func transition(lt *LinkTracker, next Status, sink Sink) {
	prev := lt.status()
	if prev.Equal(next) {
		return
	}
	lt.setStatus(next)

	if sink == nil {
		return
	}
	switch next.Kind {
	case Down:
		reason := next.Down
		sink.Emit(lt.LinkID, &reason, nil, lt.Prefix, nil)
	case Up:
		up := next
		sink.Emit(lt.LinkID, nil, &up, lt.Prefix, nil)
	}
}

// runGatewayTracker polls the eBPF gateway maps every two seconds and
// emits GatewayChanged whenever the observed value changes.
func runGatewayTracker(ctx context.Context, lt *LinkTracker, ifName string, sink Sink) {
	watcher, err := gatewaybpf.Attach(ifName)
	if err != nil {
		return
	}
	defer watcher.Close()

	ticker := time.NewTicker(gatewayPollInterval)
	defer ticker.Stop()

	var lastV4, lastV6 net.IP
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			v4, err := watcher.Ipv4Gateway()
			if err != nil {
				continue
			}
			v6, err := watcher.Ipv6Gateway()
			if err != nil {
				continue
			}
			if !v4.Equal(lastV4) {
				lastV4 = v4
				if sink != nil {
					sink.Emit(lt.LinkID, nil, nil, prefix.Ipv4Prefix{}, &GatewayObservation{Ipv4: toV4Array(v4)})
				}
			}
			if !v6.Equal(lastV6) {
				lastV6 = v6
				if sink != nil {
					sink.Emit(lt.LinkID, nil, nil, prefix.Ipv4Prefix{}, &GatewayObservation{Ipv6: toV6Array(v6)})
				}
			}
		}
	}
}

func toV4Array(ip net.IP) [4]byte {
	var out [4]byte
	copy(out[:], ip.To4())
	return out
}

func toV6Array(ip net.IP) [16]byte {
	var out [16]byte
	copy(out[:], ip.To16())
	return out
}
