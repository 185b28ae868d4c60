package runtime

import (
	"fmt"
	"os"
	"strconv"
	"syscall"

	"golang.org/x/sys/unix"
)

// ReexecEnv marks a re-exec of the engine binary as the in-namespace
// init stage for a container's payload command. cmd/bocker checks for
// this at the top of main() and, if set, calls NSInit instead of
// running the normal CLI dispatch.
const ReexecEnv = "BOCKER_NS_STAGE"

// CgroupProcsEnv carries the absolute path to the container's
// cgroup.procs file, if the parent was able to create one. NSInit
// writes its own PID there before doing anything else. The clone that
// started the process has already placed it in its new mount, UTS,
// IPC and PID namespaces by then, so it joins the cgroup after those
// namespace transitions, but before any mount, chroot or exec.
const CgroupProcsEnv = "BOCKER_CGROUP_PROCS"

// NSInit is the entry point for the re-exec'd child: it assumes the
// calling process already sits inside the container's mount, UTS,
// IPC and PID namespaces (established via Cloneflags at fork) and its
// network namespace (joined by the parent before fork). It joins the
// container's cgroup first, then makes its mounts private, chroots
// into rootfs, mounts a fresh procfs at /proc, and execs
// "/bin/sh -c cmd", replacing itself — this process IS the
// container's init from here on.
func NSInit(rootfs, cmd string) error {
	if procsPath := os.Getenv(CgroupProcsEnv); procsPath != "" {
		self := []byte(strconv.Itoa(os.Getpid()))
		if err := os.WriteFile(procsPath, self, 0644); err != nil {
			return fmt.Errorf("nsinit: join cgroup: %w", err)
		}
	}

	if err := unix.Mount("", "/", "", unix.MS_PRIVATE|unix.MS_REC, ""); err != nil {
		return fmt.Errorf("nsinit: make root private: %w", err)
	}

	if err := syscall.Chroot(rootfs); err != nil {
		return fmt.Errorf("nsinit: chroot %s: %w", rootfs, err)
	}
	if err := syscall.Chdir("/"); err != nil {
		return fmt.Errorf("nsinit: chdir /: %w", err)
	}

	os.MkdirAll("/proc", 0555)
	if err := unix.Mount("proc", "/proc", "proc", 0, ""); err != nil {
		return fmt.Errorf("nsinit: mount proc: %w", err)
	}

	argv := []string{"/bin/sh", "-c", cmd}
	return syscall.Exec(argv[0], argv, os.Environ())
}
