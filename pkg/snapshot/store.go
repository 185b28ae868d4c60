// Package snapshot wraps a copy-on-write filesystem (btrfs) rooted at a
// fixed path, exposing the create/populate/snapshot/delete/list
// vocabulary the rest of the engine builds on. Every image and
// container is a subvolume under Store.Root.
package snapshot

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sarkarghya/bocker/pkg/bockerr"
	"github.com/sarkarghya/bocker/pkg/types"
)

// Store wraps btrfs subvolume operations under a single root.
type Store struct {
	Root string
}

// New returns a Store rooted at root. It does not verify root is a
// mounted btrfs filesystem; that precondition is checked lazily by the
// first operation that touches the kernel.
func New(root string) *Store {
	return &Store{Root: root}
}

func (s *Store) path(id string) string {
	return filepath.Join(s.Root, id)
}

// Exists reports whether an entry by this exact name is present under
// Root. It does not check that the entry is a btrfs subvolume.
func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	_, err := os.Stat(s.path(id))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, bockerr.Wrap(bockerr.Kernel, "snapshot.Exists", err)
}

// ExistsNumbered adapts Exists to identity.Exists's (kind, n) signature.
func (s *Store) ExistsNumbered(ctx context.Context, kind types.Kind, n int) (bool, error) {
	return s.Exists(ctx, fmt.Sprintf("%s_%03d", kind, n))
}

// Create makes an empty subvolume. Fails if id already exists.
func (s *Store) Create(ctx context.Context, id string) error {
	if ok, err := s.Exists(ctx, id); err != nil {
		return err
	} else if ok {
		return bockerr.New(bockerr.Exists, "snapshot.Create", id+" already exists")
	}
	out, err := exec.CommandContext(ctx, "btrfs", "subvolume", "create", s.path(id)).CombinedOutput()
	if err != nil {
		return bockerr.Wrap(bockerr.Kernel, "snapshot.Create", fmt.Errorf("%w: %s", err, out))
	}
	return nil
}

// Populate copies src's contents into id's subvolume, preserving mode
// and using reflink where the filesystem supports it.
func (s *Store) Populate(ctx context.Context, id, src string) error {
	if ok, err := s.Exists(ctx, id); err != nil {
		return err
	} else if !ok {
		return bockerr.New(bockerr.NotFound, "snapshot.Populate", id+" does not exist")
	}
	if fi, err := os.Stat(src); err != nil || !fi.IsDir() {
		return bockerr.New(bockerr.Precondition, "snapshot.Populate", src+" is not a directory")
	}

	args := []string{"-a", "--reflink=auto", filepath.Join(src, "."), s.path(id)}
	out, err := exec.CommandContext(ctx, "cp", args...).CombinedOutput()
	if err != nil {
		return bockerr.Wrap(bockerr.Kernel, "snapshot.Populate", fmt.Errorf("%w: %s", err, out))
	}
	return nil
}

// Snapshot creates dst as a writable copy-on-write snapshot of src.
func (s *Store) Snapshot(ctx context.Context, src, dst string) error {
	if ok, err := s.Exists(ctx, src); err != nil {
		return err
	} else if !ok {
		return bockerr.New(bockerr.NotFound, "snapshot.Snapshot", src+" does not exist")
	}
	if ok, err := s.Exists(ctx, dst); err != nil {
		return err
	} else if ok {
		return bockerr.New(bockerr.Exists, "snapshot.Snapshot", dst+" already exists")
	}

	out, err := exec.CommandContext(ctx, "btrfs", "subvolume", "snapshot",
		s.path(src), s.path(dst)).CombinedOutput()
	if err != nil {
		return bockerr.Wrap(bockerr.Kernel, "snapshot.Snapshot", fmt.Errorf("%w: %s", err, out))
	}
	return nil
}

// Delete removes id's subvolume, including any files created after a
// snapshot was taken of it.
func (s *Store) Delete(ctx context.Context, id string) error {
	if ok, err := s.Exists(ctx, id); err != nil {
		return err
	} else if !ok {
		return nil
	}
	out, err := exec.CommandContext(ctx, "btrfs", "subvolume", "delete", s.path(id)).CombinedOutput()
	if err != nil {
		return bockerr.Wrap(bockerr.Kernel, "snapshot.Delete", fmt.Errorf("%w: %s", err, out))
	}
	return nil
}

// List enumerates the directories directly under Root whose name begins
// with prefix (e.g. "img_" or "ps_"). It does not check that they are
// btrfs subvolumes.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		return nil, bockerr.Wrap(bockerr.Precondition, "snapshot.List", err)
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), prefix) {
			ids = append(ids, e.Name())
		}
	}
	return ids, nil
}
