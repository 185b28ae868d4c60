// Package image implements the two ways a bocker image comes into
// being: init from a local directory, and pull from a remote registry.
package image

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/go-containerregistry/pkg/name"
	"github.com/google/go-containerregistry/pkg/v1/remote"

	"github.com/sarkarghya/bocker/pkg/bockerr"
	"github.com/sarkarghya/bocker/pkg/identity"
	"github.com/sarkarghya/bocker/pkg/log"
	"github.com/sarkarghya/bocker/pkg/snapshot"
	"github.com/sarkarghya/bocker/pkg/types"
)

// SourceFile is the sibling file recording an image's origin.
const SourceFile = "img.source"

// Pipeline wires the snapshot store to the identity allocator for the
// init/pull operations.
type Pipeline struct {
	Store *snapshot.Store
}

// New returns a Pipeline backed by store.
func New(store *snapshot.Store) *Pipeline {
	return &Pipeline{Store: store}
}

// Init creates a new image from a local directory tree.
func (p *Pipeline) Init(ctx context.Context, srcDir string) (string, error) {
	fi, err := os.Stat(srcDir)
	if err != nil || !fi.IsDir() {
		return "", bockerr.New(bockerr.Precondition, "image.Init", srcDir+" is not a directory")
	}

	id, _, err := identity.Allocate(ctx, types.KindImage, p.Store.ExistsNumbered)
	if err != nil {
		return "", err
	}

	if err := p.Store.Create(ctx, id); err != nil {
		return "", err
	}
	if err := p.Store.Populate(ctx, id, srcDir); err != nil {
		return "", err
	}

	sourcePath := filepath.Join(p.Store.Root, id, SourceFile)
	if _, err := os.Stat(sourcePath); os.IsNotExist(err) {
		if err := os.WriteFile(sourcePath, []byte(srcDir), 0644); err != nil {
			return "", bockerr.Wrap(bockerr.Kernel, "image.Init", err)
		}
	}

	log.Logger.With().Str("image_id", id).Logger().Info().Str("source", srcDir).Msg("image initialized")
	return id, nil
}

// Pull fetches name:tag from a remote registry, extracts its layers in
// manifest order into a staging directory, and hands the result to
// Init.
func (p *Pipeline) Pull(ctx context.Context, repo, tag string) (string, error) {
	ref, err := name.ParseReference(fmt.Sprintf("%s:%s", repo, tag))
	if err != nil {
		return "", bockerr.Wrap(bockerr.Precondition, "image.Pull", err)
	}

	img, err := remote.Image(ref, remote.WithContext(ctx))
	if err != nil {
		return "", bockerr.Wrap(bockerr.Precondition, "image.Pull", err)
	}

	layers, err := img.Layers()
	if err != nil {
		return "", bockerr.Wrap(bockerr.Kernel, "image.Pull", err)
	}

	staging, err := os.MkdirTemp("", "bocker-pull-*")
	if err != nil {
		return "", bockerr.Wrap(bockerr.Kernel, "image.Pull", err)
	}
	defer os.RemoveAll(staging)

	for i, layer := range layers {
		rc, err := layer.Uncompressed()
		if err != nil {
			return "", bockerr.Wrap(bockerr.Kernel, "image.Pull", fmt.Errorf("layer %d: %w", i, err))
		}
		err = extractTar(staging, rc)
		rc.Close()
		if err != nil {
			return "", bockerr.Wrap(bockerr.Kernel, "image.Pull", fmt.Errorf("extract layer %d: %w", i, err))
		}
	}

	if err := os.WriteFile(filepath.Join(staging, SourceFile),
		[]byte(fmt.Sprintf("%s:%s", repo, tag)), 0644); err != nil {
		return "", bockerr.Wrap(bockerr.Kernel, "image.Pull", err)
	}

	return p.Init(ctx, staging)
}

// extractTar unpacks a layer tar stream into root, overwriting earlier
// layers per manifest order. Whiteout files are treated as plain
// files, matching minimal-engine behavior.
func extractTar(root string, r io.Reader) error {
	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		target := filepath.Join(root, hdr.Name)
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, os.FileMode(hdr.Mode)); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return err
			}
			f, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, os.FileMode(hdr.Mode))
			if err != nil {
				return err
			}
			if _, err := io.Copy(f, tr); err != nil {
				f.Close()
				return err
			}
			f.Close()
		case tar.TypeSymlink:
			os.Remove(target)
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return err
			}
		}
	}
}
