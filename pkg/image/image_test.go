package image

import (
	"archive/tar"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sarkarghya/bocker/pkg/snapshot"
)

func TestInit_RequiresDirectory(t *testing.T) {
	root := t.TempDir()
	store := snapshot.New(root)
	p := New(store)

	file := filepath.Join(root, "not-a-dir")
	assert.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	_, err := p.Init(context.Background(), file)
	assert.Error(t, err)
}

func TestInit_WritesSourceWhenAbsent(t *testing.T) {
	root := t.TempDir()
	store := snapshot.New(root)
	p := New(store)

	src := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(src, "marker"), []byte("hi"), 0644))

	id, err := p.Init(context.Background(), src)
	assert.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(root, id, SourceFile))
	assert.NoError(t, err)
	assert.Equal(t, src, string(content))

	marker, err := os.ReadFile(filepath.Join(root, id, "marker"))
	assert.NoError(t, err)
	assert.Equal(t, "hi", string(marker))
}

func TestExtractTar_RegularFileAndDir(t *testing.T) {
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)

	assert.NoError(t, tw.WriteHeader(&tar.Header{
		Name: "etc/", Typeflag: tar.TypeDir, Mode: 0755,
	}))
	content := []byte("nameserver 8.8.8.8\n")
	assert.NoError(t, tw.WriteHeader(&tar.Header{
		Name: "etc/resolv.conf", Typeflag: tar.TypeReg, Mode: 0644, Size: int64(len(content)),
	}))
	_, err := tw.Write(content)
	assert.NoError(t, err)
	assert.NoError(t, tw.Close())

	root := t.TempDir()
	assert.NoError(t, extractTar(root, &buf))

	got, err := os.ReadFile(filepath.Join(root, "etc/resolv.conf"))
	assert.NoError(t, err)
	assert.Equal(t, content, got)
}
