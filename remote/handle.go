package remote

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/jmgilman/repodriller/git"
	"github.com/rs/zerolog"
)

// Handle owns a cloned repository and the directory it lives in. It is not
// safe for concurrent use.
//
// A handle must be released with Delete (or Close). After that every query
// fails with ErrHandleDisposed and the directory no longer exists.
type Handle struct {
	path string

	// root is removed by Delete. It is path itself, or the topmost parent
	// of path that was created by the acquisition.
	root string

	sourceURL string
	strategy  Strategy
	repo      *git.Repository
	fs        billy.Filesystem
	log       zerolog.Logger
	disposed  bool
}

// Path returns the absolute directory of the clone.
func (h *Handle) Path() string {
	return h.path
}

// IsBare reports whether the clone has no working tree.
func (h *Handle) IsBare() bool {
	return h.strategy == StrategyBare
}

// Strategy returns the strategy the clone was made with.
func (h *Handle) Strategy() Strategy {
	return h.strategy
}

// SourceURL returns the URL the clone was acquired from.
func (h *Handle) SourceURL() string {
	return h.sourceURL
}

// Disposed reports whether Delete has been called.
func (h *Handle) Disposed() bool {
	return h.disposed
}

// Repository returns the opened repository for callers that need more than
// Info, such as history traversal. It is closed by Delete.
func (h *Handle) Repository() (*git.Repository, error) {
	if h.disposed {
		return nil, h.disposedError()
	}
	return h.repo, nil
}

// Info takes a fresh snapshot of the repository metadata.
//
// Example:
//
//	info, err := handle.Info()
//	fmt.Println(info.OriginURL, info.FirstCommit)
func (h *Handle) Info() (Info, error) {
	if h.disposed {
		return Info{}, h.disposedError()
	}

	origin, err := h.repo.OriginURL()
	if err != nil {
		return Info{}, fmt.Errorf("failed to read origin of %s: %w", h.path, err)
	}

	first, err := h.repo.FirstCommit("HEAD")
	if err != nil {
		return Info{}, fmt.Errorf("failed to find first commit of %s: %w", h.path, err)
	}

	return Info{
		Path:        h.path,
		OriginURL:   origin,
		FirstCommit: first.Hash,
	}, nil
}

// Delete closes the repository and removes its directory, together with any
// parent directories the acquisition created. It is idempotent.
//
// If the directory cannot be fully removed a *DisposalError is returned. The
// handle is marked disposed either way.
func (h *Handle) Delete() error {
	if h.disposed {
		return nil
	}
	h.disposed = true

	if h.repo != nil {
		if err := h.repo.Close(); err != nil {
			h.log.Warn().Err(err).Str("path", h.path).Msg("failed to close repository storage")
		}
		h.repo = nil
	}

	root := h.root
	if root == "" {
		root = h.path
	}
	if err := util.RemoveAll(h.fs, root); err != nil {
		residual := residualEntries(h.fs, root)
		h.log.Warn().Err(err).Str("path", root).Int("residual", len(residual)).Msg("repository directory not fully removed")
		return &DisposalError{Path: root, Residual: residual, Err: err}
	}

	h.log.Debug().Str("path", h.path).Msg("deleted repository")
	return nil
}

// Close deletes the handle so it can be used as an io.Closer.
func (h *Handle) Close() error {
	return h.Delete()
}

func (h *Handle) disposedError() error {
	return fmt.Errorf("%w: %s", ErrHandleDisposed, h.path)
}

// residualEntries lists what is left under root, relative to root.
func residualEntries(fs billy.Filesystem, root string) []string {
	var residual []string
	_ = util.Walk(fs, root, func(path string, _ os.FileInfo, err error) error {
		if err != nil || path == root {
			return nil
		}
		if rel, relErr := filepath.Rel(root, path); relErr == nil {
			residual = append(residual, rel)
		}
		return nil
	})
	return residual
}
