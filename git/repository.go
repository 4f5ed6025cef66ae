package git

import (
	"context"
	"io"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

// resolve applies opts and returns the filesystem and the path to use on it.
// Without an explicit filesystem the local disk is used, rooted at "/", and
// path is made absolute.
func resolve(path string, opts []RepositoryOption) (*repositoryOptions, string, error) {
	options := &repositoryOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if options.fs == nil {
		options.fs = osfs.New("/")
	}
	if !isMemoryFilesystem(options.fs) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, "", wrapError(err, "failed to resolve repository path")
		}
		path = abs
	}

	return options, path, nil
}

// newStorage returns the object storage for a repository rooted at fs.
// Bare repositories keep their database in the root, others under .git.
func newStorage(fs billy.Filesystem, bare bool) (*filesystem.Storage, error) {
	if bare {
		return filesystem.NewStorage(fs, cache.NewObjectLRUDefault()), nil
	}

	dotGitFs, err := fs.Chroot(gogit.GitDirName)
	if err != nil {
		return nil, wrapError(err, "failed to scope filesystem to .git")
	}
	return filesystem.NewStorage(dotGitFs, cache.NewObjectLRUDefault()), nil
}

// Init creates a new Git repository at the specified path.
//
// By default, Init creates a standard (non-bare) repository on the local
// filesystem. Missing parent directories are created.
//
// Common errors include ErrAlreadyExists if a repository already exists at
// the specified path.
//
// Examples:
//
//	repo, err := git.Init("/path/to/repo")
//
//	repo, err := git.Init("/path/to/repo.git", git.WithBare())
//
//	repo, err := git.Init("/repo", git.WithFilesystem(memfs.New()))
func Init(path string, opts ...RepositoryOption) (*Repository, error) {
	options, path, err := resolve(path, opts)
	if err != nil {
		return nil, err
	}

	if err := options.fs.MkdirAll(path, 0o755); err != nil {
		return nil, wrapError(err, "failed to create repository directory")
	}

	scopedFs, err := options.fs.Chroot(path)
	if err != nil {
		return nil, wrapError(err, "failed to scope filesystem to path")
	}

	storage, err := newStorage(scopedFs, options.bare)
	if err != nil {
		return nil, err
	}

	var worktree billy.Filesystem
	if !options.bare {
		worktree = scopedFs
	}

	repo, err := gogit.Init(storage, worktree)
	if err != nil {
		return nil, wrapError(err, "failed to initialize repository")
	}

	return &Repository{
		path: path,
		bare: options.bare,
		repo: repo,
		fs:   scopedFs,
	}, nil
}

// Open opens an existing Git repository at the specified path.
//
// A path containing a .git directory is opened as a standard repository.
// Anything else is opened as bare, so the repository database must live
// directly in path.
//
// Returns ErrNotFound if no repository exists at the path.
//
// Examples:
//
//	repo, err := git.Open("/path/to/repo")
//
//	repo, err := git.Open("/repo", git.WithFilesystem(fs))
func Open(path string, opts ...RepositoryOption) (*Repository, error) {
	options, path, err := resolve(path, opts)
	if err != nil {
		return nil, err
	}

	scopedFs, err := options.fs.Chroot(path)
	if err != nil {
		return nil, wrapError(err, "failed to scope filesystem to path")
	}

	bare := true
	if stat, err := scopedFs.Stat(gogit.GitDirName); err == nil && stat.IsDir() {
		bare = false
	}

	storage, err := newStorage(scopedFs, bare)
	if err != nil {
		return nil, err
	}

	var worktree billy.Filesystem
	if !bare {
		worktree = scopedFs
	}

	repo, err := gogit.Open(storage, worktree)
	if err != nil {
		return nil, wrapError(err, "failed to open repository")
	}

	return &Repository{
		path: path,
		bare: bare,
		repo: repo,
		fs:   scopedFs,
	}, nil
}

// Clone clones the repository at url into path.
//
// The clone is written through the configured billy filesystem (the local disk
// by default) and the configured RemoteOperations (go-git by default). Use
// WithBare for a clone without a working tree.
//
// Common errors include ErrNotFound if the remote repository doesn't exist,
// ErrUnauthorized for authentication failures, or network errors.
//
// Examples:
//
//	repo, err := git.Clone(ctx, "https://github.com/org/repo", "/tmp/repo")
//
//	auth, _ := git.SSHKeyFile("git", "~/.ssh/id_rsa")
//	repo, err := git.Clone(ctx, "git@github.com:org/repo.git", "/tmp/repo.git",
//	    git.WithAuth(auth),
//	    git.WithBare())
//
//	repo, err := git.Clone(ctx, url, "/repo",
//	    git.WithFilesystem(memfs.New()),
//	    git.WithRemoteOperations(mockOps))
func Clone(ctx context.Context, url, path string, opts ...RepositoryOption) (*Repository, error) {
	options, path, err := resolve(path, opts)
	if err != nil {
		return nil, err
	}
	if options.remoteOps == nil {
		options.remoteOps = &defaultRemoteOps{}
	}

	cloneOpts := CloneOptions{
		URL:           url,
		Auth:          options.auth,
		Bare:          options.bare,
		Depth:         options.depth,
		SingleBranch:  options.singleBranch,
		ReferenceName: options.referenceName,
		Progress:      options.progress,
	}

	//nolint:wrapcheck // Errors from remoteOps are already wrapped in their implementations
	return options.remoteOps.Clone(ctx, options.fs, path, cloneOpts)
}

// Path returns the path the repository was opened at. It is absolute for
// repositories on the local filesystem.
func (r *Repository) Path() string {
	return r.path
}

// IsBare reports whether the repository has no working tree.
func (r *Repository) IsBare() bool {
	return r.bare
}

// Close releases open handles held by the repository storage, such as
// packfiles. The repository must not be used afterwards.
func (r *Repository) Close() error {
	if closer, ok := r.repo.Storer.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return wrapError(err, "failed to close repository storage")
		}
	}
	return nil
}

// Underlying returns the underlying go-git Repository for advanced operations
// not covered by this wrapper.
func (r *Repository) Underlying() *gogit.Repository {
	return r.repo
}

// Filesystem returns the billy.Filesystem scoped to the repository path.
// For standard repositories this is the working tree, for bare repositories
// the repository database.
func (r *Repository) Filesystem() billy.Filesystem {
	return r.fs
}
