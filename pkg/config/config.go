// Package config holds the engine's immutable configuration record,
// built once from defaults and CLI flags and threaded explicitly
// through every constructor — there is no global config variable.
package config

// Config is the engine's complete configuration. A Config is built
// once in cmd/bocker and passed by value or pointer to every
// package that needs it; nothing below reads the environment or
// flags directly.
type Config struct {
	// SnapshotRoot is the mounted copy-on-write filesystem root holding
	// the img_*/ps_* subvolumes.
	SnapshotRoot string
	// BridgeName is the preexisting host bridge interface.
	BridgeName string
	// Subnet is the container subnet's third octet prefix, e.g. "10.0.0".
	Subnet string
	// BridgeIP is the bridge's own address inside Subnet (default gateway).
	BridgeIP string
	// Nameserver is written into every container's resolv.conf.
	Nameserver string
	// CgroupParent is the parent cgroup v2 directory under which
	// per-container cgroups are created.
	CgroupParent string
	// DefaultCPUShare and DefaultMemLimitMB seed types.Resources when a
	// run doesn't override them.
	DefaultCPUShare   int
	DefaultMemLimitMB int
}

// Default returns the engine's out-of-the-box configuration, matching
// the network preconditions assumed by the spec's host provisioning
// step: a bridge named "bridge0" at 10.0.0.1/24.
func Default() Config {
	return Config{
		SnapshotRoot:      "/var/lib/bocker",
		BridgeName:        "bridge0",
		Subnet:            "10.0.0",
		BridgeIP:          "10.0.0.1",
		Nameserver:        "8.8.8.8",
		CgroupParent:      "bocker",
		DefaultCPUShare:   512,
		DefaultMemLimitMB: 512,
	}
}

// WithDefaults fills any zero-value field of cfg from Default(),
// mirroring the teacher's "if cfg.Field == "" { cfg.Field = Default }"
// pattern for optional configuration.
func (cfg Config) WithDefaults() Config {
	d := Default()
	if cfg.SnapshotRoot == "" {
		cfg.SnapshotRoot = d.SnapshotRoot
	}
	if cfg.BridgeName == "" {
		cfg.BridgeName = d.BridgeName
	}
	if cfg.Subnet == "" {
		cfg.Subnet = d.Subnet
	}
	if cfg.BridgeIP == "" {
		cfg.BridgeIP = d.BridgeIP
	}
	if cfg.Nameserver == "" {
		cfg.Nameserver = d.Nameserver
	}
	if cfg.CgroupParent == "" {
		cfg.CgroupParent = d.CgroupParent
	}
	if cfg.DefaultCPUShare == 0 {
		cfg.DefaultCPUShare = d.DefaultCPUShare
	}
	if cfg.DefaultMemLimitMB == 0 {
		cfg.DefaultMemLimitMB = d.DefaultMemLimitMB
	}
	return cfg
}
