package snapshot

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sarkarghya/bocker/pkg/types"
)

func TestExists(t *testing.T) {
	root := t.TempDir()
	assert.NoError(t, os.Mkdir(root+"/img_100", 0755))

	s := New(root)

	ok, err := s.Exists(context.Background(), "img_100")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Exists(context.Background(), "img_101")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestExistsNumbered(t *testing.T) {
	root := t.TempDir()
	assert.NoError(t, os.Mkdir(root+"/ps_042", 0755))

	s := New(root)

	ok, err := s.ExistsNumbered(context.Background(), types.KindContainer, 42)
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestList(t *testing.T) {
	root := t.TempDir()
	assert.NoError(t, os.Mkdir(root+"/img_100", 0755))
	assert.NoError(t, os.Mkdir(root+"/img_101", 0755))
	assert.NoError(t, os.Mkdir(root+"/ps_042", 0755))

	s := New(root)

	ids, err := s.List(context.Background(), "img_")
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"img_100", "img_101"}, ids)
}

func TestCreate_AlreadyExists(t *testing.T) {
	root := t.TempDir()
	assert.NoError(t, os.Mkdir(root+"/img_100", 0755))

	s := New(root)

	err := s.Create(context.Background(), "img_100")
	assert.Error(t, err)
}

func TestSnapshot_MissingSource(t *testing.T) {
	root := t.TempDir()
	s := New(root)

	err := s.Snapshot(context.Background(), "img_999", "ps_100")
	assert.Error(t, err)
}
