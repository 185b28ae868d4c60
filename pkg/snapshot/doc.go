/*
Package snapshot wraps btrfs subvolume management under a single root
path. Every image and container the engine knows about is a subvolume
under Store.Root; a container is always a snapshot of an image (or, for
commit, a snapshot back onto an image).

No library in the retrieval pack binds btrfs ioctls directly, so
Create, Snapshot, Delete and Populate shell out to the btrfs and cp
binaries with an explicit argv slice — the same shape the teacher
codebase uses for other host-level tools it doesn't have a Go binding
for. Exists and List read the directory entries under Root instead;
they do not check that an entry is a btrfs subvolume.

	store := snapshot.New("/var/lib/bocker")
	if err := store.Create(ctx, "img_100"); err != nil {
		return err
	}
	if err := store.Populate(ctx, "img_100", "/tmp/rootfs"); err != nil {
		return err
	}
	if err := store.Snapshot(ctx, "img_100", "ps_101"); err != nil {
		return err
	}
*/
package snapshot
