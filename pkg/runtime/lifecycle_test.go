package runtime

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sarkarghya/bocker/pkg/cgroup"
	"github.com/sarkarghya/bocker/pkg/config"
	"github.com/sarkarghya/bocker/pkg/network"
	"github.com/sarkarghya/bocker/pkg/snapshot"
)

func newTestSupervisor(root string) *Supervisor {
	cfg := config.Default()
	cfg.SnapshotRoot = root
	return &Supervisor{
		Store:   snapshot.New(root),
		Fabric:  network.New(cfg),
		Limiter: cgroup.New(cfg.CgroupParent),
		Config:  cfg,
	}
}

func TestLogs_MissingFileReturnsEmpty(t *testing.T) {
	root := t.TempDir()
	assert.NoError(t, os.Mkdir(root+"/ps_100", 0755))
	s := newTestSupervisor(root)

	content, err := s.Logs(context.Background(), "ps_100")
	assert.NoError(t, err)
	assert.Empty(t, content)
}

func TestLogs_UnknownContainer(t *testing.T) {
	s := newTestSupervisor(t.TempDir())

	_, err := s.Logs(context.Background(), "ps_999")
	assert.Error(t, err)
}

func TestCommit_RequiresBothToExist(t *testing.T) {
	root := t.TempDir()
	assert.NoError(t, os.Mkdir(root+"/ps_100", 0755))
	s := newTestSupervisor(root)

	err := s.Commit(context.Background(), "ps_100", "img_999")
	assert.Error(t, err)
}
