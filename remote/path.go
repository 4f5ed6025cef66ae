package remote

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

const tempDirPrefix = "repodriller-"

// pathResolver turns a Config into an absolute, empty directory ready to be
// cloned into.
type pathResolver struct {
	fs       billy.Filesystem
	tempRoot string
}

// resolvedPath is the outcome of a resolution.
type resolvedPath struct {
	path string

	// created is the topmost directory created during resolution. It is
	// empty when the target already existed.
	created string
}

// footprint is the directory that holds everything the acquisition put on
// disk.
func (p resolvedPath) footprint() string {
	if p.created != "" {
		return p.created
	}
	return p.path
}

// resolve prepares the clone target for cfg. It never touches the network.
func (r *pathResolver) resolve(cfg Config) (resolvedPath, error) {
	if cfg.Directory == "" {
		return r.generate(cfg.URL)
	}
	return r.prepare(cfg.Directory)
}

// generate allocates a fresh directory under the temp root. os.MkdirTemp
// creates the directory exclusively, so concurrent callers never share one.
func (r *pathResolver) generate(url string) (resolvedPath, error) {
	root := r.tempRoot
	if root == "" {
		root = os.TempDir()
	}

	root, err := filepath.Abs(root)
	if err != nil {
		return resolvedPath{}, fmt.Errorf("%w: failed to resolve temp root %q: %w", ErrPathResolution, r.tempRoot, err)
	}

	dir, err := os.MkdirTemp(root, tempDirPrefix+repoName(url)+"-")
	if err != nil {
		return resolvedPath{}, fmt.Errorf("%w: failed to create temporary directory under %s: %w", ErrPathResolution, root, err)
	}

	return resolvedPath{path: dir, created: dir}, nil
}

// prepare validates a caller supplied directory, creating it and any missing
// parents when absent.
func (r *pathResolver) prepare(dir string) (resolvedPath, error) {
	path, err := filepath.Abs(dir)
	if err != nil {
		return resolvedPath{}, fmt.Errorf("%w: failed to resolve %q: %w", ErrPathResolution, dir, err)
	}

	info, err := r.fs.Stat(path)
	switch {
	case err == nil:
		if !info.IsDir() {
			return resolvedPath{}, fmt.Errorf("%w: %s exists and is not a directory", ErrPathResolution, path)
		}

		entries, err := r.fs.ReadDir(path)
		if err != nil {
			return resolvedPath{}, fmt.Errorf("%w: failed to read %s: %w", ErrPathResolution, path, err)
		}
		if len(entries) > 0 {
			return resolvedPath{}, fmt.Errorf("%w: %s holds %d entries", ErrTargetDirectoryConflict, path, len(entries))
		}

		// The handle must own the real directory, otherwise disposal would
		// only unlink a symlink and leave the clone behind.
		resolved, err := filepath.EvalSymlinks(path)
		if err != nil {
			return resolvedPath{}, fmt.Errorf("%w: failed to resolve links of %s: %w", ErrPathResolution, path, err)
		}
		return resolvedPath{path: resolved}, nil

	case errors.Is(err, os.ErrNotExist):
		created := topmostMissing(r.fs, path)
		if err := r.fs.MkdirAll(path, 0o755); err != nil {
			return resolvedPath{}, fmt.Errorf("%w: failed to create %s: %w", ErrPathResolution, path, err)
		}
		return resolvedPath{path: path, created: created}, nil

	default:
		return resolvedPath{}, fmt.Errorf("%w: failed to stat %s: %w", ErrPathResolution, path, err)
	}
}

// rollback removes everything the acquisition wrote. Directories created by
// the resolver are removed entirely, a pre-existing directory is emptied.
func (r *pathResolver) rollback(p resolvedPath) error {
	if p.created != "" {
		return util.RemoveAll(r.fs, p.created)
	}

	entries, err := r.fs.ReadDir(p.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	var errs []error
	for _, e := range entries {
		errs = append(errs, util.RemoveAll(r.fs, r.fs.Join(p.path, e.Name())))
	}
	return errors.Join(errs...)
}

// topmostMissing returns the highest ancestor of path, path included, that
// does not exist.
func topmostMissing(fs billy.Basic, path string) string {
	missing := path
	for dir := filepath.Dir(path); dir != missing; dir = filepath.Dir(dir) {
		if _, err := fs.Stat(dir); !errors.Is(err, os.ErrNotExist) {
			break
		}
		missing = dir
	}
	return missing
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// repoName derives a directory-safe repository name from a clone URL, such as
// "repo" for "https://host/org/repo.git" or "git@host:org/repo.git".
func repoName(url string) string {
	name := strings.TrimRight(url, "/\\")
	name = strings.TrimSuffix(name, ".git")
	if i := strings.LastIndexAny(name, "/\\:"); i >= 0 {
		name = name[i+1:]
	}

	name = strings.Trim(unsafeNameChars.ReplaceAllString(name, "_"), "._")
	if name == "" {
		return "repo"
	}
	return name
}
