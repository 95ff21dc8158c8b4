// Package gatewaybpf attaches the rackd XDP gateway watcher to a link and
// reads the single-element gateway maps it populates.
package gatewaybpf

import (
	"fmt"
	"net"

	"github.com/cilium/ebpf/link"

	"github.com/chomba/rackd/internal/rackbpf"
)

// Watcher attaches the gateway-watching XDP program to one interface and
// exposes its two single-element maps.
type Watcher struct {
	objs *rackbpf.Objects
	link link.Link
}

// Attach loads the rackd XDP object and attaches it to ifaceName.
func Attach(ifaceName string) (*Watcher, error) {
	iface, err := net.InterfaceByName(ifaceName)
	if err != nil {
		return nil, fmt.Errorf("gatewaybpf: lookup interface %q: %w", ifaceName, err)
	}

	objs, err := rackbpf.LoadObjects(nil)
	if err != nil {
		return nil, fmt.Errorf("gatewaybpf: load objects: %w", err)
	}

	l, err := link.AttachXDP(link.XDPOptions{
		Program:   objs.Program,
		Interface: iface.Index,
		Flags:     link.XDPGenericMode,
	})
	if err != nil {
		objs.Close()
		return nil, fmt.Errorf("gatewaybpf: attach xdp to %q: %w", ifaceName, err)
	}

	return &Watcher{objs: objs, link: l}, nil
}

// Close detaches the program and releases its maps.
func (w *Watcher) Close() error {
	if err := w.link.Close(); err != nil {
		return fmt.Errorf("gatewaybpf: detach: %w", err)
	}
	return w.objs.Close()
}

// Ipv4Gateway reads the most recently observed DHCP server (IPv4) source
// address, or the zero address if none has been seen yet.
func (w *Watcher) Ipv4Gateway() (net.IP, error) {
	var raw [4]byte
	if err := w.objs.Ipv4Gateway.Lookup(uint32(0), &raw); err != nil {
		return nil, fmt.Errorf("gatewaybpf: read ipv4 gateway: %w", err)
	}
	return net.IP(raw[:]), nil
}

// Ipv6Gateway reads the most recently observed router-advertisement (IPv6)
// source address, or the zero address if none has been seen yet.
func (w *Watcher) Ipv6Gateway() (net.IP, error) {
	var raw [16]byte
	if err := w.objs.Ipv6Gateway.Lookup(uint32(0), &raw); err != nil {
		return nil, fmt.Errorf("gatewaybpf: read ipv6 gateway: %w", err)
	}
	return net.IP(raw[:]), nil
}
