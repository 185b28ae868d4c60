// Package cgroup applies per-container CPU and memory limits using
// cgroup v2 only, per the engine's explicit v2-only design.
package cgroup

import (
	"fmt"
	"os"
	"path/filepath"

	cg2 "github.com/containerd/cgroups/v3/cgroup2"

	"github.com/sarkarghya/bocker/pkg/log"
	"github.com/sarkarghya/bocker/pkg/types"
)

const cgroupRoot = "/sys/fs/cgroup"

// Limiter owns the engine's parent cgroup directory and creates one
// child cgroup per running container under it.
type Limiter struct {
	parent string // cgroup path relative to cgroupRoot, e.g. "bocker"
}

// New returns a Limiter whose child cgroups live under
// /sys/fs/cgroup/<parent>/.
func New(parent string) *Limiter {
	return &Limiter{parent: parent}
}

func (l *Limiter) groupPath(id string) string {
	return filepath.Join("/", l.parent, id)
}

// ProcsPath returns the absolute path to id's cgroup.procs file, for
// the forked child to write its own PID into before it mounts, chroots
// or execs anything (it is already in its new namespaces by then, from
// the clone that started it). The directory must already exist
// (Create creates it) before the child can write to it.
func (l *Limiter) ProcsPath(id string) string {
	return filepath.Join(cgroupRoot, l.groupPath(id), "cgroup.procs")
}

// enableControllers writes cpu and memory into the parent's
// subtree_control if they're listed in its cgroup.controllers. It does
// not read subtree_control first; the write is idempotent, so
// controllers that are already enabled stay enabled.
// Best-effort: the spec requires limiter failures to never abort a
// container start.
func (l *Limiter) enableControllers() {
	controllersFile := filepath.Join(cgroupRoot, l.parent, "cgroup.controllers")
	data, err := os.ReadFile(controllersFile)
	if err != nil {
		log.Logger.Warn().Err(err).Msg("cgroup: cannot read available controllers")
		return
	}

	available := string(data)
	want := []string{"cpu", "memory"}
	var toEnable string
	for _, c := range want {
		if contains(available, c) {
			toEnable += "+" + c + " "
		}
	}
	if toEnable == "" {
		return
	}

	subtreeFile := filepath.Join(cgroupRoot, l.parent, "cgroup.subtree_control")
	if err := os.WriteFile(subtreeFile, []byte(toEnable), 0644); err != nil {
		log.Logger.Warn().Err(err).Msg("cgroup: could not enable subtree controllers")
	}
}

func contains(haystack, needle string) bool {
	for _, f := range splitFields(haystack) {
		if f == needle {
			return true
		}
	}
	return false
}

func splitFields(s string) []string {
	var fields []string
	start := -1
	for i, r := range s {
		if r == ' ' || r == '\n' || r == '\t' {
			if start >= 0 {
				fields = append(fields, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		fields = append(fields, s[start:])
	}
	return fields
}

// Create makes the child cgroup for id and applies the given resource
// limits. Controller writes are best-effort; failures only log.
func (l *Limiter) Create(id string, res types.Resources) (*cg2.Manager, error) {
	l.enableControllers()

	weight := res.CgroupWeight()
	max := int64(res.MemMaxBytes())

	resources := &cg2.Resources{
		CPU:    &cg2.CPU{Weight: &weight},
		Memory: &cg2.Memory{Max: &max},
	}

	mgr, err := cg2.NewManager(cgroupRoot, l.groupPath(id), resources)
	if err != nil {
		log.Logger.With().Str("container_id", id).Logger().Warn().Err(err).Msg("cgroup: create failed, running unconstrained")
		return nil, nil
	}
	return mgr, nil
}

// Remove migrates any remaining PIDs in id's cgroup to the root cgroup
// (best-effort), then deletes the child cgroup directory. Missing
// cgroup is non-fatal.
func (l *Limiter) Remove(id string) error {
	path := l.groupPath(id)
	procsFile := filepath.Join(cgroupRoot, path, "cgroup.procs")

	if data, err := os.ReadFile(procsFile); err == nil {
		rootProcs := filepath.Join(cgroupRoot, "cgroup.procs")
		for _, pidStr := range splitFields(string(data)) {
			_ = os.WriteFile(rootProcs, []byte(pidStr), 0644)
		}
	}

	if err := os.Remove(filepath.Join(cgroupRoot, path)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("cgroup: remove %s: %w", id, err)
	}
	return nil
}
