package tracker

import (
	"context"
	"net"
	"sync"
	"time"

	probing "github.com/prometheus-community/pro-bing"
)

// ipv4Resolvers and ipv6Resolvers are the five well-known public DNS
// resolvers probed per family to decide whether a link has working L3
// connectivity.
var (
	ipv4Resolvers = []string{"1.1.1.1", "8.8.8.8", "9.9.9.9", "208.67.222.222", "64.6.64.6"}
	ipv6Resolvers = []string{"2606:4700:4700::1111", "2001:4860:4860::8888", "2620:fe::fe", "2620:119:35::35", "2620:74:1b::1:1"}
)

// reachableThreshold is the minimum number of successful probes (out of
// five) required to declare a family reachable.
const reachableThreshold = 3

// Prober decides which address families are currently reachable from a
// link. It is an interface so state-machine tests can substitute a fake
// without sending real ICMP traffic.
type Prober interface {
	Probe(ctx context.Context, srcV4, srcV6 net.IP) Family
}

// ICMPProber probes the well-known resolver sets with one ping each,
// 1-second timeout, and declares a family reachable once at least
// reachableThreshold of five probes succeed.
type ICMPProber struct{}

// Probe runs both address families' probe sets concurrently and combines
// the results into a single Family value.
func (ICMPProber) Probe(ctx context.Context, srcV4, srcV6 net.IP) Family {
	var wg sync.WaitGroup
	var v4ok, v6ok bool

	if srcV4 != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v4ok = probeResolvers(ctx, srcV4, ipv4Resolvers)
		}()
	}
	if srcV6 != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v6ok = probeResolvers(ctx, srcV6, ipv6Resolvers)
		}()
	}
	wg.Wait()

	switch {
	case v4ok && v6ok:
		return DualStack
	case v4ok:
		return V4
	case v6ok:
		return V6
	default:
		return NoFamily
	}
}

// probeResolvers pings every address in resolvers once, from src, and
// reports whether at least reachableThreshold succeeded.
func probeResolvers(ctx context.Context, src net.IP, resolvers []string) bool {
	var mu sync.Mutex
	var successes int
	var wg sync.WaitGroup

	for _, addr := range resolvers {
		wg.Add(1)
		go func(addr string) {
			defer wg.Done()
			if pingOnce(ctx, src, addr) {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}(addr)
	}
	wg.Wait()

	return successes >= reachableThreshold
}

// pingOnce sends a single ICMP echo to addr with a 1-second deadline.
func pingOnce(ctx context.Context, src net.IP, addr string) bool {
	pinger, err := probing.NewPinger(addr)
	if err != nil {
		return false
	}
	pinger.Count = 1
	pinger.Timeout = time.Second
	if src != nil {
		pinger.Source = src.String()
	}
	pinger.SetPrivileged(true)

	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- pinger.Run() }()

	select {
	case err := <-done:
		if err != nil {
			return false
		}
	case <-ctx.Done():
		return false
	}

	stats := pinger.Statistics()
	return stats != nil && stats.PacketsRecv > 0
}
