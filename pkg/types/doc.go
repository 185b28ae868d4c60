/*
Package types defines the core data structures shared across bocker.

This package holds the domain model for the two entities the engine
manages — images and containers — along with the resource limits and
network addressing derived from a container's identity. These types
are used by pkg/identity, pkg/snapshot, pkg/image, pkg/network,
pkg/cgroup and pkg/runtime for state that crosses package
boundaries.

# Core Types

  - Image: a snapshot subvolume holding a complete root filesystem,
    tagged with its origin (a local path or a "name:tag" reference).
  - Container: a snapshot subvolume derived from an image, plus the
    command it was launched with and its captured log output.
  - Resources: the CPU share / memory ceiling pair applied to a
    container's cgroup.
  - Address: the IP and MAC derived from a container's numeric ID
    suffix.

Unlike Warren's cluster-wide types, nothing here is sent over a wire:
the filesystem (subvolume tree, .cmd/.log/.pid files) is the engine's
only persistent representation, so these are plain in-memory views
computed from identity and read from disk, not rows in a database.
*/
package types
