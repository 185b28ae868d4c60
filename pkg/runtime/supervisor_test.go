package runtime

import (
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChildNamespaceFlags_ExcludesNetwork(t *testing.T) {
	assert.Equal(t, 0, int(childNamespaceFlags&syscall.CLONE_NEWNET))
	assert.NotEqual(t, 0, int(childNamespaceFlags&syscall.CLONE_NEWPID))
	assert.NotEqual(t, 0, int(childNamespaceFlags&syscall.CLONE_NEWNS))
	assert.NotEqual(t, 0, int(childNamespaceFlags&syscall.CLONE_NEWUTS))
	assert.NotEqual(t, 0, int(childNamespaceFlags&syscall.CLONE_NEWIPC))
}

func TestSelf_ReturnsNonEmptyPath(t *testing.T) {
	assert.NotEmpty(t, self())
}
