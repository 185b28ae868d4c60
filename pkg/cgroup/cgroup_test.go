package cgroup

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sarkarghya/bocker/pkg/types"
)

func TestContains(t *testing.T) {
	assert.True(t, contains("cpuset cpu io memory pids\n", "cpu"))
	assert.True(t, contains("cpuset cpu io memory pids\n", "memory"))
	assert.False(t, contains("cpuset io pids\n", "cpu"))
}

func TestSplitFields(t *testing.T) {
	assert.Equal(t, []string{"123", "456"}, splitFields("123 456\n"))
	assert.Equal(t, []string{"cpu", "memory"}, splitFields("cpu\tmemory"))
	assert.Empty(t, splitFields("   \n"))
}

func TestGroupPath(t *testing.T) {
	l := New("bocker")
	assert.Equal(t, "/bocker/ps_100", l.groupPath("ps_100"))
}

func TestProcsPath(t *testing.T) {
	l := New("bocker")
	assert.Equal(t, "/sys/fs/cgroup/bocker/ps_100/cgroup.procs", l.ProcsPath("ps_100"))
}

func TestResourceConversions(t *testing.T) {
	res := types.Resources{CPUShare: 512, MemLimitMB: 512}
	assert.Equal(t, uint64(5000), res.CgroupWeight())
	assert.Equal(t, uint64(512_000_000), res.MemMaxBytes())
}
