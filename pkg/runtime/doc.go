/*
Package runtime is the container supervisor: it composes the snapshot
store, network fabric, cgroup limiter and DNS config writer into the
fork/namespace/chroot sequence that actually runs a container, then
tears down its network artifacts on exit.

Where Warren's teacher implementation of this package wrapped
containerd's OCI runtime client, this engine's core mandate is raw
namespace and cgroup management — no OCI runtime is invoked. The
shape survives: one exported method per lifecycle verb (Run, Commit,
Remove, Logs; exec lives in pkg/attach),
operating on a single container ID at a time, with best-effort cleanup
on every exit path.

# Setup sequence (Run)

	1. Allocate container ID.
	2. Build the network fabric.
	3. Snapshot the image into the container ID.
	4. Overwrite etc/resolv.conf inside the snapshot.
	5. Write the command string into <id>.cmd.
	6. Create and configure the cgroup.
	7. Parent joins the container's netns on a locked OS thread, then
	   forks with Cloneflags unsharing mount/UTS/IPC/PID (network is
	   inherited from the just-joined netns, not created anew).
	   The child's first action, before anything else, is to write its
	   own PID into the cgroup's process list; only once that succeeds
	   does it chroot, mount a fresh /proc, and exec "/bin/sh -c <cmd>" —
	   the payload can never run unaccounted, even briefly.
	8. Tee combined stdout/stderr to <id>.log and the caller's terminal.
	9. Await exit; teardown veth and netns regardless of payload result.

The snapshot and cgroup are left in place after Run returns — they're
only removed by an explicit rm.
*/
package runtime
