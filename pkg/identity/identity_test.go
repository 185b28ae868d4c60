package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sarkarghya/bocker/pkg/types"
)

func TestAllocate_FirstDrawFree(t *testing.T) {
	exists := func(ctx context.Context, kind types.Kind, n int) (bool, error) {
		return false, nil
	}

	id, n, err := Allocate(context.Background(), types.KindContainer, exists)

	assert.NoError(t, err)
	assert.GreaterOrEqual(t, n, poolMin)
	assert.LessOrEqual(t, n, poolMax)
	assert.Equal(t, Format(types.KindContainer, n), id)
}

func TestAllocate_RetriesOnCollision(t *testing.T) {
	seen := map[int]bool{}
	calls := 0
	exists := func(ctx context.Context, kind types.Kind, n int) (bool, error) {
		calls++
		if seen[n] {
			return true, nil
		}
		seen[n] = true
		// first distinct draw still collides, forcing a second attempt
		return len(seen) == 1, nil
	}

	_, _, err := Allocate(context.Background(), types.KindImage, exists)

	assert.NoError(t, err)
	assert.GreaterOrEqual(t, calls, 2)
}

func TestAllocate_ExhaustsPool(t *testing.T) {
	exists := func(ctx context.Context, kind types.Kind, n int) (bool, error) {
		return true, nil
	}

	_, _, err := Allocate(context.Background(), types.KindContainer, exists)

	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "img_100", Format(types.KindImage, 100))
	assert.Equal(t, "ps_007", Format(types.KindContainer, 7))
}
