package network

import (
	"fmt"
	"net"
	"runtime"

	"github.com/vishvananda/netlink"
	"github.com/vishvananda/netns"

	"github.com/sarkarghya/bocker/pkg/bockerr"
	"github.com/sarkarghya/bocker/pkg/config"
	"github.com/sarkarghya/bocker/pkg/types"
)

// Fabric builds and tears down the per-container veth pair and network
// namespace described in SPEC_FULL.md §4.4.
type Fabric struct {
	cfg config.Config
}

// New returns a Fabric using cfg's bridge name and subnet.
func New(cfg config.Config) *Fabric {
	return &Fabric{cfg: cfg}
}

// Names returns the host-side veth, container-side veth, and netns
// name for a container ID, e.g. "ps_101" -> "veth0_ps_101",
// "veth1_ps_101", "netns_ps_101".
func Names(id string) (hostVeth, peerVeth, nsName string) {
	return "veth0_" + id, "veth1_" + id, "netns_" + id
}

// Address derives the container subnet IP and MAC from a container's
// numeric ID suffix, using an injective mapping (n-41 over [42,254])
// instead of the spec's flagged lossy "strip zeros" transform — see
// SPEC_FULL.md §4.4 and the Open Question resolution in DESIGN.md.
func Address(subnet string, n int) types.Address {
	host := n - 41 // maps [42,254] -> [1,213], disjoint, no collisions

	ip := net.ParseIP(fmt.Sprintf("%s.%d", subnet, host)).To4()
	// n fits a single byte ([42,254]); append it whole to the fixed
	// OUI rather than the spec's three-digit split, which packs a
	// colon-grouped decimal string into a 48-bit address inconsistently
	// (see DESIGN.md) — n alone is already injective.
	mac := net.HardwareAddr{0x02, 0x42, 0xac, 0x11, 0x00, byte(n)}

	return types.Address{IP: ip, MAC: mac}
}

// Setup creates the veth pair, enslaves the host end to the bridge,
// creates the named netns, moves the peer in, and addresses it —
// SPEC_FULL.md §4.4 steps 1-5.
func (f *Fabric) Setup(id string, addr types.Address) error {
	hostVeth, peerVeth, nsName := Names(id)

	bridge, err := netlink.LinkByName(f.cfg.BridgeName)
	if err != nil {
		return bockerr.Wrap(bockerr.Precondition, "network.Setup", fmt.Errorf("bridge %s: %w", f.cfg.BridgeName, err))
	}

	veth := &netlink.Veth{
		LinkAttrs: netlink.LinkAttrs{Name: hostVeth},
		PeerName:  peerVeth,
	}
	if err := netlink.LinkAdd(veth); err != nil {
		return bockerr.Wrap(bockerr.Kernel, "network.Setup", fmt.Errorf("create veth pair: %w", err))
	}

	hostLink, err := netlink.LinkByName(hostVeth)
	if err != nil {
		return bockerr.Wrap(bockerr.Kernel, "network.Setup", err)
	}
	if err := netlink.LinkSetMaster(hostLink, bridge); err != nil {
		return bockerr.Wrap(bockerr.Kernel, "network.Setup", fmt.Errorf("enslave %s to %s: %w", hostVeth, f.cfg.BridgeName, err))
	}
	if err := netlink.LinkSetUp(hostLink); err != nil {
		return bockerr.Wrap(bockerr.Kernel, "network.Setup", err)
	}

	containerNS, err := netns.NewNamed(nsName)
	if err != nil {
		return bockerr.Wrap(bockerr.Kernel, "network.Setup", fmt.Errorf("create netns %s: %w", nsName, err))
	}
	defer containerNS.Close()

	peerLink, err := netlink.LinkByName(peerVeth)
	if err != nil {
		return bockerr.Wrap(bockerr.Kernel, "network.Setup", err)
	}
	if err := netlink.LinkSetNsFd(peerLink, int(containerNS)); err != nil {
		return bockerr.Wrap(bockerr.Kernel, "network.Setup", fmt.Errorf("move %s into %s: %w", peerVeth, nsName, err))
	}

	if err := f.configureInNamespace(nsName, peerVeth, addr); err != nil {
		return err
	}

	return nil
}

// configureInNamespace enters nsName, brings up loopback, assigns the
// derived MAC and IP to peerVeth, brings it up, and adds the default
// route — SPEC_FULL.md §4.4 step 5.
func (f *Fabric) configureInNamespace(nsName, peerVeth string, addr types.Address) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	origin, err := netns.Get()
	if err != nil {
		return bockerr.Wrap(bockerr.Kernel, "network.configureInNamespace", err)
	}
	defer origin.Close()
	defer netns.Set(origin)

	target, err := netns.GetFromName(nsName)
	if err != nil {
		return bockerr.Wrap(bockerr.Kernel, "network.configureInNamespace", err)
	}
	defer target.Close()

	if err := netns.Set(target); err != nil {
		return bockerr.Wrap(bockerr.Kernel, "network.configureInNamespace", err)
	}

	lo, err := netlink.LinkByName("lo")
	if err == nil {
		netlink.LinkSetUp(lo)
	}

	link, err := netlink.LinkByName(peerVeth)
	if err != nil {
		return bockerr.Wrap(bockerr.Kernel, "network.configureInNamespace", err)
	}
	if err := netlink.LinkSetHardwareAddr(link, addr.MAC); err != nil {
		return bockerr.Wrap(bockerr.Kernel, "network.configureInNamespace", fmt.Errorf("set mac: %w", err))
	}

	addrCfg := &netlink.Addr{IPNet: &net.IPNet{IP: addr.IP, Mask: net.CIDRMask(24, 32)}}
	if err := netlink.AddrAdd(link, addrCfg); err != nil {
		return bockerr.Wrap(bockerr.Kernel, "network.configureInNamespace", fmt.Errorf("assign ip: %w", err))
	}
	if err := netlink.LinkSetUp(link); err != nil {
		return bockerr.Wrap(bockerr.Kernel, "network.configureInNamespace", err)
	}

	gw := net.ParseIP(f.cfg.BridgeIP)
	route := &netlink.Route{LinkIndex: link.Attrs().Index, Gw: gw}
	if err := netlink.RouteAdd(route); err != nil {
		return bockerr.Wrap(bockerr.Kernel, "network.configureInNamespace", fmt.Errorf("default route: %w", err))
	}

	return nil
}

// Teardown deletes the host-side veth (its peer goes with it) and the
// named netns. Safe to call on a partially-built fabric.
func (f *Fabric) Teardown(id string) error {
	hostVeth, _, nsName := Names(id)

	if link, err := netlink.LinkByName(hostVeth); err == nil {
		_ = netlink.LinkDel(link)
	}
	_ = netns.DeleteNamed(nsName)

	return nil
}
