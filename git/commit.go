package git

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// newCommit converts a go-git commit into a Commit value.
func newCommit(c *object.Commit) Commit {
	parents := make([]string, 0, len(c.ParentHashes))
	for _, p := range c.ParentHashes {
		parents = append(parents, p.String())
	}

	return Commit{
		Hash:        c.Hash.String(),
		Author:      c.Author.Name,
		Email:       c.Author.Email,
		Message:     c.Message,
		Timestamp:   c.Author.When,
		CommittedAt: c.Committer.When,
		Parents:     parents,
		raw:         c,
	}
}

// CreateCommit creates a new commit on the current HEAD.
//
// By default, CreateCommit will fail if there are no changes to commit (clean
// working tree). Use the AllowEmpty option to create commits without changes.
// Set When to pin author and committer time.
//
// Returns the commit hash as a string. Common errors include ErrConflict for a
// clean working tree without AllowEmpty, or ErrInvalidInput for missing
// author/email/message.
//
// Examples:
//
//	hash, err := repo.CreateCommit(git.CommitOptions{
//	    Author:  "John Doe",
//	    Email:   "john@example.com",
//	    Message: "Add new feature",
//	})
//
//	hash, err := repo.CreateCommit(git.CommitOptions{
//	    Author:     "Bot",
//	    Email:      "bot@example.com",
//	    Message:    "Initial commit",
//	    AllowEmpty: true,
//	    When:       time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
//	})
func (r *Repository) CreateCommit(opts CommitOptions) (string, error) {
	if opts.Author == "" {
		return "", wrapError(fmt.Errorf("author is required"), "failed to create commit")
	}
	if opts.Email == "" {
		return "", wrapError(fmt.Errorf("email is required"), "failed to create commit")
	}
	if opts.Message == "" {
		return "", wrapError(fmt.Errorf("message is required"), "failed to create commit")
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return "", wrapError(err, "failed to get worktree")
	}

	when := opts.When
	if when.IsZero() {
		when = time.Now()
	}
	sig := &object.Signature{
		Name:  opts.Author,
		Email: opts.Email,
		When:  when,
	}

	hash, err := wt.Commit(opts.Message, &gogit.CommitOptions{
		Author:            sig,
		Committer:         sig,
		AllowEmptyCommits: opts.AllowEmpty,
	})

	if err != nil {
		return "", wrapError(err, "failed to create commit")
	}

	return hash.String(), nil
}

// GetCommit retrieves a single commit by reference.
//
// The ref parameter can be:
//   - A commit hash (e.g., "abc123...")
//   - A branch name (e.g., "main")
//   - A tag name (e.g., "v1.0.0")
//   - "HEAD" for the current commit
//
// Returns ErrNotFound if the reference doesn't exist or doesn't point to a commit.
//
// Examples:
//
//	// Get commit by hash
//	commit, err := repo.GetCommit("abc123")
//
//	// Get current HEAD commit
//	commit, err := repo.GetCommit("HEAD")
//
//	// Get commit for a tag
//	commit, err := repo.GetCommit("v1.0.0")
func (r *Repository) GetCommit(ref string) (*Commit, error) {
	if ref == "" {
		return nil, wrapError(fmt.Errorf("reference is required"), "failed to get commit")
	}

	// Resolve the reference to a commit hash
	hash, err := r.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return nil, wrapError(err, fmt.Sprintf("failed to resolve reference %q", ref))
	}

	// Get the commit object
	commitObj, err := r.repo.CommitObject(*hash)
	if err != nil {
		return nil, wrapError(err, fmt.Sprintf("failed to get commit for %q", ref))
	}

	commit := newCommit(commitObj)
	return &commit, nil
}

// Underlying returns the underlying go-git commit object for advanced operations
// not covered by this wrapper. This escape hatch allows direct access to
// go-git's full commit API when needed.
//
// The returned *object.Commit can be used for any go-git commit operation,
// such as accessing the tree, parent commits, or other low-level details.
//
// Example:
//
//	commit, _ := repo.GetCommit("HEAD")
//	gogitCommit := commit.Underlying()
//	tree, _ := gogitCommit.Tree()
//	// Use go-git tree operations...
func (c *Commit) Underlying() *object.Commit {
	return c.raw
}

// RootCommits returns every commit reachable from ref that has no parents,
// ordered as FirstCommit orders them.
//
// In a shallow clone the commits at the shallow boundary count as roots,
// since their parents are not present locally.
func (r *Repository) RootCommits(ref string) ([]Commit, error) {
	if ref == "" {
		return nil, wrapError(fmt.Errorf("reference is required"), "failed to find root commits")
	}

	start, err := r.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return nil, wrapError(err, fmt.Sprintf("failed to resolve reference %q", ref))
	}

	shallow := make(map[plumbing.Hash]bool)
	boundary, err := r.repo.Storer.Shallow()
	if err != nil {
		return nil, wrapError(err, "failed to read shallow commits")
	}
	for _, h := range boundary {
		shallow[h] = true
	}

	var roots []Commit
	seen := map[plumbing.Hash]bool{*start: true}
	pending := []plumbing.Hash{*start}
	for len(pending) > 0 {
		hash := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		c, err := r.repo.CommitObject(hash)
		if err != nil {
			return nil, wrapError(err, fmt.Sprintf("failed to get commit %s", hash))
		}

		if len(c.ParentHashes) == 0 || shallow[hash] {
			roots = append(roots, newCommit(c))
			continue
		}

		for _, p := range c.ParentHashes {
			if !seen[p] {
				seen[p] = true
				pending = append(pending, p)
			}
		}
	}

	slices.SortFunc(roots, compareRoots)
	return roots, nil
}

// FirstCommit returns the root commit of the history reachable from ref.
//
// Histories can have several roots, for example after merging an unrelated
// project. The root with the oldest committer timestamp wins. Roots with equal
// timestamps are ordered by hash, smallest first.
//
// Example:
//
//	first, err := repo.FirstCommit("HEAD")
//	fmt.Println(first.Hash)
func (r *Repository) FirstCommit(ref string) (*Commit, error) {
	roots, err := r.RootCommits(ref)
	if err != nil {
		return nil, err
	}
	if len(roots) == 0 {
		return nil, wrapError(plumbing.ErrObjectNotFound, fmt.Sprintf("no root commit reachable from %q", ref))
	}

	return &roots[0], nil
}

func compareRoots(a, b Commit) int {
	if c := a.CommittedAt.Compare(b.CommittedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.Hash, b.Hash)
}
