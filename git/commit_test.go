package git

import (
	"context"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	platformerrors "github.com/jmgilman/repodriller/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBase = time.Date(2021, time.March, 1, 9, 0, 0, 0, time.UTC)

// createTestRepoWithCommit creates an in-memory repository holding one file
// committed at testBase.
func createTestRepoWithCommit(t *testing.T) (*Repository, string) {
	t.Helper()

	repo, err := Init("/repo", WithFilesystem(memfs.New()))
	require.NoError(t, err)

	file, err := repo.Filesystem().Create("test.txt")
	require.NoError(t, err)
	_, err = file.Write([]byte("test content"))
	require.NoError(t, err)
	require.NoError(t, file.Close())

	wt, err := repo.Underlying().Worktree()
	require.NoError(t, err)
	_, err = wt.Add("test.txt")
	require.NoError(t, err)

	hash, err := repo.CreateCommit(CommitOptions{
		Author:  "Test User",
		Email:   "test@example.com",
		Message: "Initial commit",
		When:    testBase,
	})
	require.NoError(t, err)

	return repo, hash
}

// storeCommit writes a commit with an empty tree directly into the object
// database and returns its hash.
func storeCommit(t *testing.T, repo *Repository, message string, when time.Time, parents ...plumbing.Hash) plumbing.Hash {
	t.Helper()
	s := repo.Underlying().Storer

	tree := s.NewEncodedObject()
	require.NoError(t, (&object.Tree{}).Encode(tree))
	treeHash, err := s.SetEncodedObject(tree)
	require.NoError(t, err)

	sig := object.Signature{Name: "Test User", Email: "test@example.com", When: when}
	obj := s.NewEncodedObject()
	require.NoError(t, (&object.Commit{
		Author:       sig,
		Committer:    sig,
		Message:      message,
		TreeHash:     treeHash,
		ParentHashes: parents,
	}).Encode(obj))
	hash, err := s.SetEncodedObject(obj)
	require.NoError(t, err)

	return hash
}

// pointHead moves the current branch to hash.
func pointHead(t *testing.T, repo *Repository, hash plumbing.Hash) {
	t.Helper()

	head, err := repo.Underlying().Head()
	require.NoError(t, err)
	require.NoError(t, repo.Underlying().Storer.SetReference(plumbing.NewHashReference(head.Name(), hash)))
}

func TestCreateCommit(t *testing.T) {
	repo, first := createTestRepoWithCommit(t)

	hash, err := repo.CreateCommit(CommitOptions{
		Author:     "Test Author",
		Email:      "author@example.com",
		Message:    "Empty commit",
		AllowEmpty: true,
		When:       testBase.Add(time.Hour),
	})
	require.NoError(t, err)

	commit, err := repo.GetCommit(hash)
	require.NoError(t, err)
	assert.Equal(t, hash, commit.Hash)
	assert.Equal(t, "Test Author", commit.Author)
	assert.Equal(t, "author@example.com", commit.Email)
	assert.Equal(t, "Empty commit", commit.Message)
	assert.True(t, commit.CommittedAt.Equal(testBase.Add(time.Hour)))
	assert.Equal(t, []string{first}, commit.Parents)
}

func TestCreateCommit_CleanTree(t *testing.T) {
	repo, _ := createTestRepoWithCommit(t)

	_, err := repo.CreateCommit(CommitOptions{
		Author:  "Test Author",
		Email:   "author@example.com",
		Message: "Nothing changed",
	})
	require.Error(t, err)
	assert.Equal(t, platformerrors.CodeConflict, platformerrors.GetCode(err))
}

func TestCreateCommit_Validation(t *testing.T) {
	repo, _ := createTestRepoWithCommit(t)

	tests := []struct {
		name    string
		opts    CommitOptions
		wantErr string
	}{
		{"missing author", CommitOptions{Email: "e@example.com", Message: "m"}, "author is required"},
		{"missing email", CommitOptions{Author: "a", Message: "m"}, "email is required"},
		{"missing message", CommitOptions{Author: "a", Email: "e@example.com"}, "message is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.CreateCommit(tt.opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetCommit(t *testing.T) {
	repo, hash := createTestRepoWithCommit(t)

	head, err := repo.Underlying().Head()
	require.NoError(t, err)

	for _, ref := range []string{hash, "HEAD", head.Name().Short()} {
		t.Run(ref, func(t *testing.T) {
			commit, err := repo.GetCommit(ref)
			require.NoError(t, err)
			assert.Equal(t, hash, commit.Hash)
			assert.Empty(t, commit.Parents)
			assert.Equal(t, hash, commit.Underlying().Hash.String())
		})
	}
}

func TestGetCommit_Errors(t *testing.T) {
	repo, _ := createTestRepoWithCommit(t)

	_, err := repo.GetCommit("nonexistent")
	require.Error(t, err)
	assert.Equal(t, platformerrors.CodeNotFound, platformerrors.GetCode(err))

	_, err = repo.GetCommit("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestFirstCommit_LinearHistory(t *testing.T) {
	repo, root := createTestRepoWithCommit(t)

	for i := 1; i <= 3; i++ {
		_, err := repo.CreateCommit(CommitOptions{
			Author:     "Test User",
			Email:      "test@example.com",
			Message:    "next",
			AllowEmpty: true,
			When:       testBase.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	first, err := repo.FirstCommit("HEAD")
	require.NoError(t, err)
	assert.Equal(t, root, first.Hash)
	assert.Equal(t, "Initial commit", first.Message)
}

func TestFirstCommit_MultipleRoots(t *testing.T) {
	repo, mainRoot := createTestRepoWithCommit(t)
	head := plumbing.NewHash(mainRoot)

	older := storeCommit(t, repo, "older unrelated root", testBase.Add(-48*time.Hour))
	newer := storeCommit(t, repo, "newer unrelated root", testBase.Add(48*time.Hour))

	merge := storeCommit(t, repo, "merge", testBase.Add(72*time.Hour), head, newer, older)
	pointHead(t, repo, merge)

	roots, err := repo.RootCommits("HEAD")
	require.NoError(t, err)
	hashes := make([]string, 0, len(roots))
	for _, r := range roots {
		hashes = append(hashes, r.Hash)
	}
	assert.Equal(t, []string{older.String(), mainRoot, newer.String()}, hashes)

	first, err := repo.FirstCommit("HEAD")
	require.NoError(t, err)
	assert.Equal(t, older.String(), first.Hash)
}

func TestFirstCommit_EqualTimestampsUseSmallestHash(t *testing.T) {
	repo, mainRoot := createTestRepoWithCommit(t)

	a := storeCommit(t, repo, "root a", testBase)
	b := storeCommit(t, repo, "root b", testBase)
	merge := storeCommit(t, repo, "merge", testBase.Add(time.Hour), plumbing.NewHash(mainRoot), a, b)
	pointHead(t, repo, merge)

	candidates := []string{mainRoot, a.String(), b.String()}
	want := slices.Min(candidates)

	first, err := repo.FirstCommit("HEAD")
	require.NoError(t, err)
	assert.Equal(t, want, first.Hash)

	// The result does not depend on parent order.
	reordered := storeCommit(t, repo, "merge reordered", testBase.Add(time.Hour), b, a, plumbing.NewHash(mainRoot))
	pointHead(t, repo, reordered)

	again, err := repo.FirstCommit("HEAD")
	require.NoError(t, err)
	assert.Equal(t, want, again.Hash)
}

func TestFirstCommit_ShallowClone(t *testing.T) {
	src := createSourceRepository(t, 3)
	head, err := src.GetCommit("HEAD")
	require.NoError(t, err)

	repo, err := Clone(context.Background(), src.Path(), filepath.Join(t.TempDir(), "shallow"), WithDepth(1))
	require.NoError(t, err)
	defer func() { _ = repo.Close() }()

	first, err := repo.FirstCommit("HEAD")
	require.NoError(t, err)
	assert.Equal(t, head.Hash, first.Hash)
}

func TestFirstCommit_Errors(t *testing.T) {
	repo, err := Init("/empty", WithFilesystem(memfs.New()))
	require.NoError(t, err)

	_, err = repo.FirstCommit("HEAD")
	require.Error(t, err)
	assert.Equal(t, platformerrors.CodeNotFound, platformerrors.GetCode(err))

	_, err = repo.RootCommits("")
	require.Error(t, err)
}
