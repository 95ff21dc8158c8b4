// Package netlinkx wraps vishvananda/netlink with the narrow surface the
// link tracker needs: look up a link's current flags/addresses by index,
// and flip admin up/down.
package netlinkx

import (
	"fmt"
	"net"

	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"
)

// Link is the subset of rtnetlink's view of an interface the tracker acts
// on: its admin/carrier flags and its configured addresses.
type Link struct {
	Index     int
	Name      string
	AdminUp   bool // IFF_UP
	LowerUp   bool // IFF_LOWER_UP: carrier present
	Ipv4Addrs []net.IP
	Ipv6Addrs []net.IP
}

// GetLinkByIndex looks up a link by its kernel ifindex, as
// GetLinkByID in the original tracker does once per poll tick.
func GetLinkByIndex(index int) (Link, error) {
	nlLink, err := netlink.LinkByIndex(index)
	if err != nil {
		return Link{}, fmt.Errorf("netlinkx: link by index %d: %w", index, err)
	}
	return fromNetlink(nlLink)
}

// GetLinkByName looks up a link by interface name.
func GetLinkByName(name string) (Link, error) {
	nlLink, err := netlink.LinkByName(name)
	if err != nil {
		return Link{}, fmt.Errorf("netlinkx: link by name %q: %w", name, err)
	}
	return fromNetlink(nlLink)
}

func fromNetlink(nlLink netlink.Link) (Link, error) {
	attrs := nlLink.Attrs()
	link := Link{
		Index:   attrs.Index,
		Name:    attrs.Name,
		AdminUp: attrs.RawFlags&unix.IFF_UP != 0,
		LowerUp: attrs.RawFlags&unix.IFF_LOWER_UP != 0,
	}

	v4, err := netlink.AddrList(nlLink, netlink.FAMILY_V4)
	if err != nil {
		return Link{}, fmt.Errorf("netlinkx: list ipv4 addrs: %w", err)
	}
	for _, a := range v4 {
		link.Ipv4Addrs = append(link.Ipv4Addrs, a.IP)
	}

	v6, err := netlink.AddrList(nlLink, netlink.FAMILY_V6)
	if err != nil {
		return Link{}, fmt.Errorf("netlinkx: list ipv6 addrs: %w", err)
	}
	for _, a := range v6 {
		link.Ipv6Addrs = append(link.Ipv6Addrs, a.IP)
	}

	return link, nil
}

// SetAdminUp brings the named link up (ip link set up).
func SetAdminUp(name string) error {
	nlLink, err := netlink.LinkByName(name)
	if err != nil {
		return fmt.Errorf("netlinkx: link by name %q: %w", name, err)
	}
	if err := netlink.LinkSetUp(nlLink); err != nil {
		return fmt.Errorf("netlinkx: set up %q: %w", name, err)
	}
	return nil
}

// SetAdminDown brings the named link down (ip link set down).
func SetAdminDown(name string) error {
	nlLink, err := netlink.LinkByName(name)
	if err != nil {
		return fmt.Errorf("netlinkx: link by name %q: %w", name, err)
	}
	if err := netlink.LinkSetDown(nlLink); err != nil {
		return fmt.Errorf("netlinkx: set down %q: %w", name, err)
	}
	return nil
}
