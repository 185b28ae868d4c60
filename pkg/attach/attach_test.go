package attach

import (
	"context"
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sarkarghya/bocker/pkg/snapshot"
)

func TestExec_UnknownContainer(t *testing.T) {
	root := t.TempDir()
	a := New(snapshot.New(root))

	err := a.Exec(context.Background(), "ps_999", []string{"/bin/true"})
	assert.Error(t, err)
}

func TestExec_NoCommand(t *testing.T) {
	root := t.TempDir()
	assert.NoError(t, os.Mkdir(root+"/ps_100", 0755))
	a := New(snapshot.New(root))

	err := a.Exec(context.Background(), "ps_100", nil)
	assert.Error(t, err)
}

func TestFindInit_TrustsLivePIDFile(t *testing.T) {
	root := t.TempDir()
	assert.NoError(t, os.Mkdir(root+"/ps_100", 0755))

	self := os.Getpid()
	assert.NoError(t, os.WriteFile(root+"/ps_100/ps_100.pid", []byte(strconv.Itoa(self)+"\n"), 0644))

	a := New(snapshot.New(root))
	pid, err := a.findInit("ps_100")

	assert.NoError(t, err)
	assert.Equal(t, self, pid)
}

func TestFindInit_FallsBackWhenPIDFileStale(t *testing.T) {
	root := t.TempDir()
	assert.NoError(t, os.Mkdir(root+"/ps_100", 0755))
	// a PID that is extremely unlikely to be alive
	assert.NoError(t, os.WriteFile(root+"/ps_100/ps_100.pid", []byte("999999\n"), 0644))

	a := New(snapshot.New(root))
	_, err := a.findInit("ps_100")

	// falls through to the process-table scan, which won't find
	// "ps_100" in any real cmdline and returns a Busy error
	assert.Error(t, err)
}
