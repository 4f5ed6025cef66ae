// Package testutil builds Git repositories for tests, either in memory or on
// disk. On-disk repositories can be used as clone sources, since a local path
// is a valid clone URL.
package testutil

import (
	"fmt"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/jmgilman/repodriller/git"
)

// NewMemoryRepo creates a new in-memory Git repository for testing.
// The returned filesystem is the repository's working tree.
//
// Example:
//
//	repo, fs, err := testutil.NewMemoryRepo()
//	if err != nil {
//	    t.Fatal(err)
//	}
func NewMemoryRepo() (*git.Repository, billy.Filesystem, error) {
	repo, err := git.Init("/", git.WithFilesystem(memfs.New()))
	if err != nil {
		//nolint:wrapcheck // Test utility - errors from git package are already wrapped
		return nil, nil, err
	}

	return repo, repo.Filesystem(), nil
}

// CreateTestCommit creates an empty commit with the test author at the
// current time.
func CreateTestCommit(repo *git.Repository, message string) (string, error) {
	return CreateTestCommitAt(repo, message, time.Time{})
}

// CreateTestCommitAt creates an empty commit whose author and committer time
// is when.
//
// Example:
//
//	hash, err := testutil.CreateTestCommitAt(repo, "Old commit", testutil.BaseTime)
func CreateTestCommitAt(repo *git.Repository, message string, when time.Time) (string, error) {
	//nolint:wrapcheck // Test utility - errors from git package are already wrapped
	return repo.CreateCommit(git.CommitOptions{
		Author:     TestAuthor,
		Email:      TestEmail,
		Message:    message,
		AllowEmpty: true,
		When:       when,
	})
}

// CreateTestFile writes content to path in fs, replacing any existing file.
func CreateTestFile(fs billy.Filesystem, path, content string) error {
	file, err := fs.Create(path)
	if err != nil {
		//nolint:wrapcheck // Test utility - simple file operation error
		return err
	}
	defer func() {
		_ = file.Close()
	}()

	_, err = file.Write([]byte(content))
	//nolint:wrapcheck // Test utility - simple file operation error
	return err
}

// CreateTestCommitWithFile writes a file into the repository's working tree,
// stages it and commits it at when.
//
// Example:
//
//	hash, err := testutil.CreateTestCommitWithFile(
//	    repo, "README.md", "# Test", "Add README", testutil.BaseTime)
func CreateTestCommitWithFile(repo *git.Repository, path, content, message string, when time.Time) (string, error) {
	if err := CreateTestFile(repo.Filesystem(), path, content); err != nil {
		return "", err
	}

	wt, err := repo.Underlying().Worktree()
	if err != nil {
		//nolint:wrapcheck // Test utility - errors from go-git are transparent
		return "", err
	}

	if _, err := wt.Add(path); err != nil {
		//nolint:wrapcheck // Test utility - errors from go-git are transparent
		return "", err
	}

	//nolint:wrapcheck // Test utility - errors from git package are already wrapped
	return repo.CreateCommit(git.CommitOptions{
		Author:  TestAuthor,
		Email:   TestEmail,
		Message: message,
		When:    when,
	})
}

// MergeUnrelatedRoot adds a second history to repo. It stores a parentless
// commit with an empty tree, committed at when, then moves the current branch
// to a merge commit whose parents are the previous HEAD and the new root.
// The merge keeps HEAD's tree, so the working tree stays unchanged.
//
// Returns the hash of the new root commit.
func MergeUnrelatedRoot(repo *git.Repository, message string, when time.Time) (string, error) {
	r := repo.Underlying()

	head, err := r.Head()
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	headCommit, err := r.CommitObject(head.Hash())
	if err != nil {
		return "", fmt.Errorf("failed to load HEAD commit: %w", err)
	}

	treeHash, err := storeObject(r.Storer, &object.Tree{})
	if err != nil {
		return "", err
	}

	sig := object.Signature{Name: TestAuthor, Email: TestEmail, When: when}
	rootHash, err := storeObject(r.Storer, &object.Commit{
		Author:    sig,
		Committer: sig,
		Message:   message,
		TreeHash:  treeHash,
	})
	if err != nil {
		return "", err
	}

	mergeSig := object.Signature{Name: TestAuthor, Email: TestEmail, When: headCommit.Committer.When.Add(time.Hour)}
	mergeHash, err := storeObject(r.Storer, &object.Commit{
		Author:       mergeSig,
		Committer:    mergeSig,
		Message:      "Merge unrelated history",
		TreeHash:     headCommit.TreeHash,
		ParentHashes: []plumbing.Hash{head.Hash(), rootHash},
	})
	if err != nil {
		return "", err
	}

	if err := r.Storer.SetReference(plumbing.NewHashReference(head.Name(), mergeHash)); err != nil {
		return "", fmt.Errorf("failed to update %s: %w", head.Name(), err)
	}

	return rootHash.String(), nil
}

type encodable interface {
	Encode(plumbing.EncodedObject) error
}

type objectStorer interface {
	NewEncodedObject() plumbing.EncodedObject
	SetEncodedObject(plumbing.EncodedObject) (plumbing.Hash, error)
}

func storeObject(s objectStorer, obj encodable) (plumbing.Hash, error) {
	encoded := s.NewEncodedObject()
	if err := obj.Encode(encoded); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to encode object: %w", err)
	}

	hash, err := s.SetEncodedObject(encoded)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to store object: %w", err)
	}
	return hash, nil
}
