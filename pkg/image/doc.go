/*
Package image implements the two ingress paths that create a bocker
image: init from a local directory, and pull from a remote registry.

Pull uses go-containerregistry to fetch a manifest and its layers
without a Docker daemon, extracts each layer tarball over a staging
directory in manifest order (later layers win), then hands the staging
tree to Init exactly as if it were a user-supplied directory.

	pipeline := image.New(store)
	id, err := pipeline.Pull(ctx, "library/alpine", "latest")
*/
package image
