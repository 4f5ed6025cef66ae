// Package git provides a thin, type-safe wrapper around go-git for cloning
// repositories and reading the metadata needed to describe them.
//
// All filesystem access goes through go-billy. By default repositories live on
// the local disk (osfs rooted at "/", with absolute paths), and tests can use
// an in-memory filesystem instead.
//
// # Architecture
//
//  1. Thin wrappers over go-git, not a reimplementation of Git
//  2. Billy filesystem for all repository I/O
//  3. Escape hatches via Underlying() for anything not wrapped
//  4. A RemoteOperations interface so Clone can be tested without a network
//
// # Core Types
//
// Repository wraps a go-git repository together with its path and layout.
// Bare repositories keep their database directly in the path; standard
// repositories keep it under path/.git next to the working tree.
//
// Commit and Remote are value types.
//
// # Factory Functions
//
//	repo, err := git.Init("/path/to/repo")
//	repo, err := git.Open("/path/to/repo")
//	repo, err := git.Clone(ctx, "https://github.com/org/repo", "/tmp/repo", git.WithBare())
//
// Open detects whether a repository is bare from the presence of a .git
// directory.
//
// # Repository Metadata
//
//	origin, err := repo.OriginURL()     // "" when no origin remote exists
//	first, err := repo.FirstCommit("HEAD")
//
// FirstCommit walks the full history behind a reference and picks a single
// root commit deterministically. See its documentation for the ordering.
//
// # Authentication
//
// SSHKeyAuth, SSHKeyFile and BasicAuth build credentials for WithAuth. Pass
// nil for public repositories.
//
// # Errors
//
// go-git errors are wrapped into platform errors from the errors package, so
// callers can branch on codes:
//
//	if errors.GetCode(err) == errors.CodeUnauthorized {
//	    // ask for credentials
//	}
//
// The original go-git error remains in the chain and still matches errors.Is.
package git
