/*
Package dns writes a container's /etc/resolv.conf.

bocker has no internal DNS server and no service-discovery domain:
every container gets the same static nameserver line, pointing at
whatever upstream resolver the engine is configured with (default
8.8.8.8). This overlays the image's own resolv.conf, the same way the
original shell implementation overwrote it unconditionally after
populating the container's subvolume.

# Usage

	path, err := dns.Write(containerRoot, cfg.Nameserver)
	if err != nil {
		return fmt.Errorf("configure dns: %w", err)
	}

This runs once per container, before the supervisor forks into the new
namespaces, so the write happens against the host-visible path rather
than through a mount namespace.
*/
package dns
