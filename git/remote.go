package git

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-billy/v5"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport"
)

// DefaultRemoteName is the name Clone gives the remote it clones from.
const DefaultRemoteName = "origin"

// RemoteOperations defines the network operations used by Clone. It allows
// tests to substitute an implementation that never touches the network.
type RemoteOperations interface {
	// Clone clones opts.URL into path on fs.
	Clone(ctx context.Context, fs billy.Filesystem, path string, opts CloneOptions) (*Repository, error)
}

// defaultRemoteOps implements RemoteOperations with go-git.
type defaultRemoteOps struct{}

// Clone creates path on fs and clones into it. Bare clones store the
// repository database directly in path, others store it under path/.git with
// path as the working tree.
func (d *defaultRemoteOps) Clone(ctx context.Context, fs billy.Filesystem, path string, opts CloneOptions) (*Repository, error) {
	if err := fs.MkdirAll(path, 0o755); err != nil {
		return nil, wrapError(err, "failed to create clone directory")
	}

	scopedFs, err := fs.Chroot(path)
	if err != nil {
		return nil, wrapError(err, "failed to scope filesystem to path")
	}

	storage, err := newStorage(scopedFs, opts.Bare)
	if err != nil {
		return nil, err
	}

	var worktree billy.Filesystem
	if !opts.Bare {
		worktree = scopedFs
	}

	cloneOpts := &gogit.CloneOptions{
		URL:           opts.URL,
		RemoteName:    DefaultRemoteName,
		Depth:         opts.Depth,
		SingleBranch:  opts.SingleBranch,
		ReferenceName: opts.ReferenceName,
		Progress:      opts.Progress,
	}

	if opts.Auth != nil {
		auth, ok := opts.Auth.(transport.AuthMethod)
		if !ok {
			return nil, wrapError(fmt.Errorf("invalid auth type %T", opts.Auth), "failed to convert auth")
		}
		cloneOpts.Auth = auth
	}

	repo, err := gogit.CloneContext(ctx, storage, worktree, cloneOpts)
	if err != nil {
		_ = storage.Close()
		return nil, wrapError(err, "failed to clone repository")
	}

	return &Repository{
		path: path,
		bare: opts.Bare,
		repo: repo,
		fs:   scopedFs,
	}, nil
}

// GetRemote returns the remote with the given name.
// A missing remote yields a CodeNotFound error that matches
// gogit.ErrRemoteNotFound.
func (r *Repository) GetRemote(name string) (*Remote, error) {
	remote, err := r.repo.Remote(name)
	if err != nil {
		return nil, wrapError(err, fmt.Sprintf("failed to get remote %q", name))
	}

	cfg := remote.Config()
	return &Remote{Name: cfg.Name, URLs: cfg.URLs}, nil
}

// OriginURL returns the first URL of the "origin" remote. A repository
// without an origin remote, or with one that has no URLs, yields an empty
// string and no error.
func (r *Repository) OriginURL() (string, error) {
	remote, err := r.GetRemote(DefaultRemoteName)
	if errors.Is(err, gogit.ErrRemoteNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	if len(remote.URLs) > 0 {
		return remote.URLs[0], nil
	}
	return "", nil
}
