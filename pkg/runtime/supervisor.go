package runtime

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/sarkarghya/bocker/pkg/bockerr"
	"github.com/sarkarghya/bocker/pkg/cgroup"
	"github.com/sarkarghya/bocker/pkg/config"
	"github.com/sarkarghya/bocker/pkg/dns"
	"github.com/sarkarghya/bocker/pkg/identity"
	"github.com/sarkarghya/bocker/pkg/log"
	"github.com/sarkarghya/bocker/pkg/network"
	"github.com/sarkarghya/bocker/pkg/snapshot"
	"github.com/sarkarghya/bocker/pkg/types"
)

// childNamespaceFlags are unshared at fork time via Cloneflags. The
// network namespace is deliberately absent here: the parent joins the
// container's already-created named netns on a locked OS thread
// immediately before Start(), so the child inherits it — entering the
// network namespace must precede creation of these namespaces, per
// SPEC_FULL.md §5's ordering guarantee.
const childNamespaceFlags = syscall.CLONE_NEWNS | syscall.CLONE_NEWUTS |
	syscall.CLONE_NEWIPC | syscall.CLONE_NEWPID

// Supervisor composes the snapshot store, network fabric and cgroup
// limiter into the full container lifecycle.
type Supervisor struct {
	Store   *snapshot.Store
	Fabric  *network.Fabric
	Limiter *cgroup.Limiter
	Config  config.Config
}

// New returns a Supervisor wired from cfg.
func New(cfg config.Config) *Supervisor {
	return &Supervisor{
		Store:   snapshot.New(cfg.SnapshotRoot),
		Fabric:  network.New(cfg),
		Limiter: cgroup.New(cfg.CgroupParent),
		Config:  cfg,
	}
}

// Run creates and foreground-runs a container from imageID, executing
// cmdStr via a shell inside it. It returns the new container's ID; a
// non-nil payloadErr reports the containerized command's own failure
// (not an engine error — it's recorded in the log and returned
// separately so the caller can choose how to surface it).
func (s *Supervisor) Run(ctx context.Context, imageID, cmdStr string, stdin io.Reader, stdout, stderr io.Writer) (containerID string, payloadErr error, err error) {
	if ok, err := s.Store.Exists(ctx, imageID); err != nil {
		return "", nil, err
	} else if !ok {
		return "", nil, bockerr.New(bockerr.NotFound, "runtime.Run", imageID+" does not exist")
	}

	id, n, err := identity.Allocate(ctx, types.KindContainer, s.Store.ExistsNumbered)
	if err != nil {
		return "", nil, err
	}
	clog := log.Logger.With().Str("container_id", id).Logger()

	addr := network.Address(s.Config.Subnet, n)
	if err := s.Fabric.Setup(id, addr); err != nil {
		return "", nil, err
	}
	teardownNetwork := func() {
		if tdErr := s.Fabric.Teardown(id); tdErr != nil {
			clog.Warn().Err(tdErr).Msg("network teardown failed")
		}
	}

	if err := s.Store.Snapshot(ctx, imageID, id); err != nil {
		teardownNetwork()
		return "", nil, err
	}

	rootfs := filepath.Join(s.Store.Root, id)
	if _, err := dns.Write(rootfs, s.Config.Nameserver); err != nil {
		teardownNetwork()
		return "", nil, err
	}

	cmdFile := filepath.Join(rootfs, id+".cmd")
	if err := os.WriteFile(cmdFile, []byte(cmdStr+"\n"), 0644); err != nil {
		teardownNetwork()
		return "", nil, bockerr.Wrap(bockerr.Kernel, "runtime.Run", err)
	}

	resources := types.Resources{CPUShare: s.Config.DefaultCPUShare, MemLimitMB: s.Config.DefaultMemLimitMB}
	mgr, err := s.Limiter.Create(id, resources)
	if err != nil {
		teardownNetwork()
		return "", nil, bockerr.Wrap(bockerr.Kernel, "runtime.Run", err)
	}
	var procsPath string
	if mgr != nil {
		procsPath = s.Limiter.ProcsPath(id)
	}

	logPath := filepath.Join(rootfs, id+".log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		teardownNetwork()
		return "", nil, bockerr.Wrap(bockerr.Kernel, "runtime.Run", err)
	}
	defer logFile.Close()

	out := io.MultiWriter(logFile, stdout)
	errOut := io.MultiWriter(logFile, stderr)

	pid, waitErr, forkErr := s.forkChild(id, rootfs, cmdStr, procsPath, stdin, out, errOut)
	if forkErr != nil {
		teardownNetwork()
		return "", nil, forkErr
	}

	pidFile := filepath.Join(rootfs, id+".pid")
	_ = os.WriteFile(pidFile, []byte(fmt.Sprintf("%d\n", pid)), 0644)
	defer os.Remove(pidFile)

	payloadErr = waitErr()
	if payloadErr != nil {
		clog.Info().Err(payloadErr).Msg("container payload exited non-zero")
	}

	teardownNetwork()
	clog.Info().Msg("container run complete")
	return id, payloadErr, nil
}

// forkChild joins the container's network namespace on a locked OS
// thread, then forks the re-exec'd init stage with the remaining
// namespace flags. procsPath, if non-empty, is handed to the child via
// environment variable so it can write its own PID into the container's
// cgroup before it mounts/chroots/execs — the cgroup join happens from
// inside the child, so a short-lived payload cannot run unaccounted.
// The child is already in its new namespaces (from Cloneflags) when it
// joins; the join does not precede those namespace transitions. forkChild returns a
// wait function the caller invokes once ready to block on exit.
func (s *Supervisor) forkChild(id, rootfs, cmdStr, procsPath string, stdin io.Reader, stdout, stderr io.Writer) (pid int, wait func() error, err error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	origin, err := unix.Open("/proc/self/ns/net", unix.O_RDONLY, 0)
	if err != nil {
		return 0, nil, bockerr.Wrap(bockerr.Kernel, "runtime.forkChild", err)
	}
	defer unix.Close(origin)

	_, _, nsName := network.Names(id)
	nsFd, err := unix.Open(filepath.Join("/var/run/netns", nsName), unix.O_RDONLY, 0)
	if err != nil {
		return 0, nil, bockerr.Wrap(bockerr.Kernel, "runtime.forkChild", fmt.Errorf("open netns %s: %w", nsName, err))
	}
	defer unix.Close(nsFd)

	if err := unix.Setns(nsFd, unix.CLONE_NEWNET); err != nil {
		return 0, nil, bockerr.Wrap(bockerr.Kernel, "runtime.forkChild", fmt.Errorf("join netns %s: %w", nsName, err))
	}

	cmd := exec.Command(self(), rootfs, cmdStr)
	cmd.Env = append(os.Environ(), ReexecEnv+"=1")
	if procsPath != "" {
		cmd.Env = append(cmd.Env, CgroupProcsEnv+"="+procsPath)
	}
	cmd.SysProcAttr = &syscall.SysProcAttr{Cloneflags: childNamespaceFlags}

	if stdinFile, ok := stdin.(*os.File); ok && term.IsTerminal(int(stdinFile.Fd())) {
		ptmx, startErr := pty.Start(cmd)
		if startErr != nil {
			unix.Setns(origin, unix.CLONE_NEWNET)
			return 0, nil, bockerr.Wrap(bockerr.Kernel, "runtime.forkChild", startErr)
		}

		if err := unix.Setns(origin, unix.CLONE_NEWNET); err != nil {
			log.Logger.Warn().Err(err).Msg("runtime: failed to restore supervisor netns")
		}

		go io.Copy(ptmx, stdin)
		go io.Copy(stdout, ptmx)

		wait := func() error {
			err := cmd.Wait()
			ptmx.Close()
			return err
		}
		return cmd.Process.Pid, wait, nil
	}

	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if startErr := cmd.Start(); startErr != nil {
		unix.Setns(origin, unix.CLONE_NEWNET)
		return 0, nil, bockerr.Wrap(bockerr.Kernel, "runtime.forkChild", startErr)
	}

	if err := unix.Setns(origin, unix.CLONE_NEWNET); err != nil {
		log.Logger.Warn().Err(err).Msg("runtime: failed to restore supervisor netns")
	}

	return cmd.Process.Pid, cmd.Wait, nil
}

// self returns the path to the running engine binary, for re-exec.
func self() string {
	if exe, err := os.Executable(); err == nil {
		return exe
	}
	return os.Args[0]
}
