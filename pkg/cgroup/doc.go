/*
Package cgroup creates and tears down the per-container cgroup v2
directory that bounds CPU and memory usage.

It wraps containerd/cgroups/v3/cgroup2 (the same controller library
pulled in transitively by both containerd-based and podman-based
runtimes in the retrieval pack), restricted to the v2 model only — no
cgroup v1 fallback, per the engine's explicit design direction.

Controller writes are best-effort: a kernel or distro that hasn't
delegated the cpu or memory controller to the engine's parent cgroup
must not prevent a container from starting. Joining the cgroup itself
is not best-effort, and it is not done by the parent: the forked child
writes its own PID into the cgroup's process list itself, before it
mounts, chroots or execs anything (see pkg/runtime.NSInit), so the
payload can never run even briefly unaccounted. If that write fails,
the child aborts before reaching the payload.

	limiter := cgroup.New(cfg.CgroupParent)
	mgr, err := limiter.Create(id, resources)
	...
	procsPath := limiter.ProcsPath(id) // handed to the child via env
	...
	defer limiter.Remove(id)
*/
package cgroup
