// Package identity allocates the numeric IDs that name every image and
// container subvolume.
package identity

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/sarkarghya/bocker/pkg/bockerr"
	"github.com/sarkarghya/bocker/pkg/types"
)

// poolMin and poolMax bound the three-digit ID space. The lower bound
// avoids small numbers whose IP/MAC derivation is prone to leading-zero
// ambiguity; the upper bound keeps IDs three digits.
const (
	poolMin = 42
	poolMax = 254
)

// maxAttempts bounds the collision-retry loop; the pool is small enough
// that a stuck loop past this many draws indicates real exhaustion, not
// bad luck.
const maxAttempts = 64

// Exists reports whether an ID is already taken, for a given kind.
// Implementations are typically pkg/snapshot.Store.ExistsNumbered.
type Exists func(ctx context.Context, kind types.Kind, n int) (bool, error)

// Allocate draws a uniform random number in [poolMin, poolMax], retrying
// on collision, and returns the formatted "<kind>_<NNN>" ID plus its
// bare numeric suffix.
//
// Concurrent invocations may race on the same draw; the caller is
// expected to re-check existence at the point the subvolume is actually
// created and retry the whole allocation if it loses the race, per the
// spec's "no hard lock, cheap retry" guidance.
func Allocate(ctx context.Context, kind types.Kind, exists Exists) (id string, n int, err error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		n = poolMin + rand.Intn(poolMax-poolMin+1)
		taken, err := exists(ctx, kind, n)
		if err != nil {
			return "", 0, bockerr.Wrap(bockerr.Kernel, "identity.Allocate", err)
		}
		if !taken {
			return Format(kind, n), n, nil
		}
	}
	return "", 0, bockerr.New(bockerr.Transient, "identity.Allocate",
		fmt.Sprintf("no free id in [%d,%d] after %d attempts", poolMin, poolMax, maxAttempts))
}

// Format renders a kind and numeric suffix as the canonical ID string.
func Format(kind types.Kind, n int) string {
	return fmt.Sprintf("%s_%03d", kind, n)
}
