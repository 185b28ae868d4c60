package runtime

import (
	"context"
	"os"
	"path/filepath"

	"github.com/sarkarghya/bocker/pkg/bockerr"
)

// Commit replaces imageID's subvolume with a snapshot of containerID's
// current state. Both must already exist.
//
// The original shell implementation deleted the destination image
// subvolume before snapshotting the container onto it — if the
// snapshot step then failed, the image was gone with nothing to show
// for it. This resolves that by snapshotting into a temporary ID
// first and only swapping it into place once the snapshot succeeds.
// See SPEC_FULL.md §4.8.
func (s *Supervisor) Commit(ctx context.Context, containerID, imageID string) error {
	if ok, err := s.Store.Exists(ctx, containerID); err != nil {
		return err
	} else if !ok {
		return bockerr.New(bockerr.NotFound, "runtime.Commit", containerID+" does not exist")
	}
	if ok, err := s.Store.Exists(ctx, imageID); err != nil {
		return err
	} else if !ok {
		return bockerr.New(bockerr.NotFound, "runtime.Commit", imageID+" does not exist")
	}

	tempID := imageID + ".commit-tmp"
	if ok, _ := s.Store.Exists(ctx, tempID); ok {
		_ = s.Store.Delete(ctx, tempID)
	}

	if err := s.Store.Snapshot(ctx, containerID, tempID); err != nil {
		return err
	}
	if err := s.Store.Delete(ctx, imageID); err != nil {
		_ = s.Store.Delete(ctx, tempID)
		return err
	}
	if err := os.Rename(filepath.Join(s.Store.Root, tempID), filepath.Join(s.Store.Root, imageID)); err != nil {
		return bockerr.Wrap(bockerr.Kernel, "runtime.Commit", err)
	}

	return nil
}

// Remove deletes id's subvolume and its engine cgroup directory, if
// present. A missing cgroup is non-fatal.
func (s *Supervisor) Remove(ctx context.Context, id string) error {
	if err := s.Store.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.Limiter.Remove(id); err != nil {
		return err
	}
	return nil
}

// Logs returns the contents of id's captured log file. A container
// with no log yet returns an empty string, not an error.
func (s *Supervisor) Logs(ctx context.Context, id string) (string, error) {
	if ok, err := s.Store.Exists(ctx, id); err != nil {
		return "", err
	} else if !ok {
		return "", bockerr.New(bockerr.NotFound, "runtime.Logs", id+" does not exist")
	}

	logPath := filepath.Join(s.Store.Root, id, id+".log")
	data, err := os.ReadFile(logPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", bockerr.Wrap(bockerr.Kernel, "runtime.Logs", err)
	}
	return string(data), nil
}
