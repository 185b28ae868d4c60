/*
Package attach implements exec: running a command inside an already
running container.

The teacher's own health-check package built an exec.Cmd with an
explicit argv and captured stdio for exec-based health probes; attach
follows the same "build exec.Cmd with explicit argv, never shell
string" idiom. The calling process joins the target's mount, UTS, IPC,
net and pid namespaces with setns(2) and chroots into its rootfs, then
spawns argv as a child of itself via exec.Cmd rather than exec'ing in
place — setns(CLONE_NEWPID) only governs the pid namespace of
processes forked after the call, so the command has to actually be
forked from here to land inside the container's pid namespace at all.

Locating the target init process favors the recorded <id>.pid file the
supervisor writes at container start; if that PID no longer exists
(engine restarted, file stale) it falls back to scanning /proc for a
process whose argv mentions the container ID — the redesigned
replacement for the original "unshare ... <container_id> ..."
process-table pattern match, per SPEC_FULL.md §3.1.
*/
package attach
