package testutil

import (
	"fmt"
	"time"

	"github.com/jmgilman/repodriller/git"
)

// SourceRepo is an on-disk repository that tests clone from.
type SourceRepo struct {
	// Repo is the opened source repository.
	Repo *git.Repository

	// Path is the absolute path of the repository. It doubles as its clone URL.
	Path string

	// Root is the hash of the first commit.
	Root string

	// Head is the hash HEAD points to.
	Head string
}

// NewSourceRepo creates a non-bare repository at path with the given number of
// commits (at least one). The first commit adds TestFilePath at BaseTime, each
// later commit is an empty commit one hour after the previous.
//
// Example:
//
//	src, err := testutil.NewSourceRepo(filepath.Join(t.TempDir(), "source"), 3)
//	require.NoError(t, err)
//	repo, err := git.Clone(ctx, src.Path, dest)
func NewSourceRepo(path string, commits int) (*SourceRepo, error) {
	if commits < 1 {
		return nil, fmt.Errorf("source repository needs at least one commit, got %d", commits)
	}

	repo, err := git.Init(path)
	if err != nil {
		//nolint:wrapcheck // Test utility - errors from git package are already wrapped
		return nil, err
	}

	root, err := CreateTestCommitWithFile(repo, TestFilePath, TestFileContent, TestInitialCommit, BaseTime)
	if err != nil {
		return nil, err
	}

	head := root
	for i := 1; i < commits; i++ {
		when := BaseTime.Add(time.Duration(i) * time.Hour)
		head, err = CreateTestCommitAt(repo, fmt.Sprintf("%s %d", TestCommitMessage, i), when)
		if err != nil {
			return nil, err
		}
	}

	return &SourceRepo{
		Repo: repo,
		Path: repo.Path(),
		Root: root,
		Head: head,
	}, nil
}

// NewEmptySourceRepo creates a repository at path with no commits.
func NewEmptySourceRepo(path string) (*SourceRepo, error) {
	repo, err := git.Init(path)
	if err != nil {
		//nolint:wrapcheck // Test utility - errors from git package are already wrapped
		return nil, err
	}

	return &SourceRepo{Repo: repo, Path: repo.Path()}, nil
}
