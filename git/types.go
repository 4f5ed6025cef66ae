package git

import (
	"io"
	"time"

	"github.com/go-git/go-billy/v5"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Repository wraps a go-git repository with platform conventions.
// It keeps the absolute path it was opened from, whether it is bare, and the
// billy filesystem scoped to that path.
type Repository struct {
	path string
	bare bool
	repo *gogit.Repository
	fs   billy.Filesystem
}

// Commit is a value type containing formatted commit information.
// It includes an escape hatch to the underlying go-git commit object
// for advanced operations.
type Commit struct {
	Hash      string
	Author    string
	Email     string
	Message   string
	Timestamp time.Time

	// CommittedAt is the committer timestamp. It orders root commits.
	CommittedAt time.Time

	// Parents holds the parent hashes. Empty for a root commit.
	Parents []string

	raw *object.Commit
}

// Remote is a simple value type representing a Git remote.
type Remote struct {
	Name string
	URLs []string
}

// Auth is an interface for authentication methods.
// It is satisfied by go-git's transport.AuthMethod.
type Auth interface {
	// Marker interface - satisfied by go-git transport.AuthMethod
}

// CloneOptions configures repository cloning operations.
type CloneOptions struct {
	URL           string
	Auth          Auth
	Bare          bool                   // Clone without a working tree
	Depth         int                    // 0 for full clone, >0 for shallow clone
	SingleBranch  bool                   // Clone only a single branch
	ReferenceName plumbing.ReferenceName // Branch or tag to clone
	Progress      io.Writer              // Receives server progress messages, may be nil
}

// CommitOptions configures commit creation.
type CommitOptions struct {
	Author     string
	Email      string
	Message    string
	AllowEmpty bool

	// When sets both author and committer time. Zero means now.
	When time.Time
}

// RepositoryOption configures repository creation operations (Init, Open, Clone).
type RepositoryOption func(*repositoryOptions)

type repositoryOptions struct {
	fs            billy.Filesystem
	remoteOps     RemoteOperations
	bare          bool
	auth          Auth
	depth         int
	singleBranch  bool
	referenceName plumbing.ReferenceName
	progress      io.Writer
}

// WithFilesystem sets the billy filesystem to use for repository operations.
// Paths are interpreted relative to its root. If not provided, the local
// filesystem is used and paths are made absolute.
//
// Example:
//
//	repo, err := git.Init("/path/to/repo", git.WithFilesystem(memfs.New()))
func WithFilesystem(fs billy.Filesystem) RepositoryOption {
	return func(opts *repositoryOptions) {
		opts.fs = fs
	}
}

// WithRemoteOperations replaces the network implementation used by Clone.
// This option is primarily useful for testing.
//
// Example:
//
//	repo, err := git.Clone(ctx, url, dir, git.WithRemoteOperations(mockOps))
func WithRemoteOperations(ops RemoteOperations) RepositoryOption {
	return func(opts *repositoryOptions) {
		opts.remoteOps = ops
	}
}

// WithBare creates or clones a bare repository (no working tree).
//
// Example:
//
//	repo, err := git.Clone(ctx, url, "/srv/mirror.git", git.WithBare())
func WithBare() RepositoryOption {
	return func(opts *repositoryOptions) {
		opts.bare = true
	}
}

// WithAuth sets authentication for Clone operations.
//
// Example:
//
//	auth, _ := git.SSHKeyFile("git", "~/.ssh/id_rsa")
//	repo, err := git.Clone(ctx, "git@github.com:org/repo.git", dir, git.WithAuth(auth))
func WithAuth(auth Auth) RepositoryOption {
	return func(opts *repositoryOptions) {
		opts.auth = auth
	}
}

// WithDepth sets the depth for shallow clones.
// A depth of 0 (default) performs a full clone.
func WithDepth(depth int) RepositoryOption {
	return func(opts *repositoryOptions) {
		opts.depth = depth
	}
}

// WithSingleBranch limits the clone to a single branch.
func WithSingleBranch() RepositoryOption {
	return func(opts *repositoryOptions) {
		opts.singleBranch = true
	}
}

// WithReferenceName sets the specific branch or tag to clone.
//
// Example:
//
//	repo, err := git.Clone(ctx, url, dir,
//	    git.WithReferenceName(plumbing.NewBranchReferenceName("develop")))
func WithReferenceName(ref plumbing.ReferenceName) RepositoryOption {
	return func(opts *repositoryOptions) {
		opts.referenceName = ref
	}
}

// WithProgress streams the remote's progress output to w during Clone.
func WithProgress(w io.Writer) RepositoryOption {
	return func(opts *repositoryOptions) {
		opts.progress = w
	}
}
