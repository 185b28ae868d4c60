package dns

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultNameserver is used when the config doesn't override it.
const DefaultNameserver = "8.8.8.8"

// ResolvConfName is the filename bocker writes inside a container's
// root filesystem, overlaying whatever the image shipped.
const ResolvConfName = "etc/resolv.conf"

// Write generates a single-nameserver resolv.conf at <rootfs>/etc/resolv.conf.
//
// Containers get no internal service-discovery domain — the engine has
// no DNS server of its own, only a static upstream nameserver per
// container, matching the shell original's single `nameserver` line.
func Write(rootfs, nameserver string) (string, error) {
	if nameserver == "" {
		nameserver = DefaultNameserver
	}

	path := filepath.Join(rootfs, ResolvConfName)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create /etc for resolv.conf: %w", err)
	}

	content := fmt.Sprintf("nameserver %s\n", nameserver)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("write resolv.conf: %w", err)
	}

	return path, nil
}
