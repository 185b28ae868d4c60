/*
Package network builds and tears down each container's network fabric:
a veth pair, one end enslaved to the host bridge and the other moved
into a freshly created, named network namespace, addressed from the
container subnet with a MAC derived from the container's ID.

Warren's teacher implementation of this package managed iptables DNAT
rules for host port publishing; that's an explicit non-goal here, so
this package is rebuilt around vishvananda/netlink and
vishvananda/netns instead — both have direct Go bindings for the
primitives this engine actually needs (link creation, bridge
enslavement, namespace management), where iptables never did.

# Setup sequence

	fabric := network.New(cfg)
	addr := network.Address(cfg.Subnet, n)
	if err := fabric.Setup(id, addr); err != nil {
		return err
	}
	...
	defer fabric.Teardown(id)

Setup creates "veth0_<id>" (host side) and "veth1_<id>" (container
side), enslaves the host side to the bridge, creates "netns_<id>",
moves the peer in, and configures loopback, MAC, IP, and the default
route inside it. Teardown deletes the host-side veth (its peer goes
with it) and the named netns; it is safe to call on a fabric that
failed partway through Setup.
*/
package network
