// Package attach implements exec: running a command inside an already
// running container by entering its namespace set directly, with no
// shell wrapping.
package attach

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/sarkarghya/bocker/pkg/bockerr"
	"github.com/sarkarghya/bocker/pkg/snapshot"
)

// nsNames are the namespace files under /proc/<pid>/ns/ the attach
// sequence enters, in order. Network is joined alongside the others
// here (unlike the supervisor's Setup, this target process already
// has its netns; there's no separate named-netns handle to open).
var nsNames = []string{"mnt", "uts", "ipc", "net", "pid"}

// Attacher runs commands inside a running container's namespaces.
type Attacher struct {
	Store *snapshot.Store
}

// New returns an Attacher backed by store.
func New(store *snapshot.Store) *Attacher {
	return &Attacher{Store: store}
}

// Exec confirms id is a live container, locates its init process, and
// runs argv inside its full namespace set and chroot, with stdio wired
// directly to std{in,out,err}.
func (a *Attacher) Exec(ctx context.Context, id string, argv []string) error {
	if ok, err := a.Store.Exists(ctx, id); err != nil {
		return err
	} else if !ok {
		return bockerr.New(bockerr.NotFound, "attach.Exec", id+" does not exist")
	}
	if len(argv) == 0 {
		return bockerr.New(bockerr.Precondition, "attach.Exec", "no command given")
	}

	pid, err := a.findInit(id)
	if err != nil {
		return err
	}

	rootfs := filepath.Join(a.Store.Root, id)
	return enterAndExec(pid, rootfs, argv)
}

// findInit locates the container's init PID. It first trusts the
// recorded <id>.pid file written by the supervisor; if that process
// no longer exists, it falls back to scanning the host process table
// for a command line naming this container ID, per SPEC_FULL.md §3.1's
// documented fallback.
func (a *Attacher) findInit(id string) (int, error) {
	pidFile := filepath.Join(a.Store.Root, id, id+".pid")
	if data, err := os.ReadFile(pidFile); err == nil {
		if pid, perr := strconv.Atoi(strings.TrimSpace(string(data))); perr == nil && processAlive(pid) {
			return pid, nil
		}
	}

	pid, err := scanProcessTable(id)
	if err != nil {
		return 0, err
	}
	return pid, nil
}

func processAlive(pid int) bool {
	return unix.Kill(pid, 0) == nil
}

// scanProcessTable walks /proc/*/cmdline looking for a process whose
// argv mentions id, matching a recorded-but-stale PID or a supervisor
// started before pid-file recording existed.
func scanProcessTable(id string) (int, error) {
	entries, err := os.ReadDir("/proc")
	if err != nil {
		return 0, bockerr.Wrap(bockerr.Kernel, "attach.scanProcessTable", err)
	}

	pidPattern := regexp.MustCompile(`^\d+$`)
	for _, e := range entries {
		if !pidPattern.MatchString(e.Name()) {
			continue
		}
		cmdline, err := os.ReadFile(filepath.Join("/proc", e.Name(), "cmdline"))
		if err != nil {
			continue
		}
		if strings.Contains(string(cmdline), id) {
			pid, _ := strconv.Atoi(e.Name())
			return pid, nil
		}
	}

	return 0, bockerr.New(bockerr.Busy, "attach.scanProcessTable", id+" is not running")
}

// enterAndExec joins pid's mount/UTS/IPC/net/PID namespaces, chroots
// into rootfs, and runs argv as a child of the now-namespaced process —
// no /bin/sh wrapper.
//
// It cannot exec argv in place: setns(CLONE_NEWPID) only changes which
// pid namespace the calling process's *future children* are born
// into, it never moves the calling process itself, and exec() doesn't
// fork. An in-place exec here would leave argv running with the
// engine's own host PID, still able to see (and be seen among) host
// processes, failing the pid axis of the namespace entry silently
// while every other namespace took effect correctly. So argv has to be
// launched as a genuine child of this already-setns'd process instead,
// and this process exits with its exact exit code once it's done.
func enterAndExec(pid int, rootfs string, argv []string) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	for _, ns := range nsNames {
		fd, err := unix.Open(fmt.Sprintf("/proc/%d/ns/%s", pid, ns), unix.O_RDONLY, 0)
		if err != nil {
			return bockerr.Wrap(bockerr.Kernel, "attach.enterAndExec", fmt.Errorf("open %s ns: %w", ns, err))
		}
		err = unix.Setns(fd, 0)
		unix.Close(fd)
		if err != nil {
			return bockerr.Wrap(bockerr.Kernel, "attach.enterAndExec", fmt.Errorf("join %s ns: %w", ns, err))
		}
	}

	if err := syscall.Chroot(rootfs); err != nil {
		return bockerr.Wrap(bockerr.Kernel, "attach.enterAndExec", fmt.Errorf("chroot: %w", err))
	}
	if err := syscall.Chdir("/"); err != nil {
		return bockerr.Wrap(bockerr.Kernel, "attach.enterAndExec", fmt.Errorf("chdir: %w", err))
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			os.Exit(exitErr.ExitCode())
		}
		return bockerr.Wrap(bockerr.Kernel, "attach.enterAndExec", err)
	}
	return nil
}
