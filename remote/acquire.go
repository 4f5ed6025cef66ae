package remote

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds AcquireAll when WithConcurrency is not given.
const DefaultConcurrency = 4

// Option configures how repositories are acquired.
type Option func(*options)

type options struct {
	engine      Engine
	tempRoot    string
	progress    io.Writer
	concurrency int
	fs          billy.Filesystem
}

func newOptions(opts []Option) *options {
	o := &options{
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.engine == nil {
		o.engine = NewGoGitEngine()
	}
	if o.fs == nil {
		o.fs = osfs.New("/")
	}
	if o.concurrency < 1 {
		o.concurrency = 1
	}
	return o
}

// WithEngine sets the engine used to clone. Defaults to a GoGitEngine.
func WithEngine(engine Engine) Option {
	return func(o *options) {
		o.engine = engine
	}
}

// WithTempRoot sets the directory under which generated clone directories
// are created. Defaults to os.TempDir().
func WithTempRoot(dir string) Option {
	return func(o *options) {
		o.tempRoot = dir
	}
}

// WithProgress streams clone progress to w. AcquireAll shares w between
// concurrent clones, so it must be safe for concurrent writes.
func WithProgress(w io.Writer) Option {
	return func(o *options) {
		o.progress = w
	}
}

// WithConcurrency bounds how many clones AcquireAll runs at once.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// Acquire clones the repository described by cfg and returns a handle that
// owns the clone. The caller must Delete the handle.
//
// The context bounds the clone. No timeout is added and no retry is made.
// On failure nothing created by the call is left on disk.
//
// Example:
//
//	h, err := remote.Acquire(ctx, remote.Config{URL: "https://github.com/org/repo"})
//	if err != nil {
//	    return err
//	}
//	defer h.Delete()
//
//	info, err := h.Info()
func Acquire(ctx context.Context, cfg Config, opts ...Option) (*Handle, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := newOptions(opts)
	if v, ok := o.engine.(configValidator); ok {
		if err := v.Validate(cfg); err != nil {
			return nil, err
		}
	}

	logger := zerolog.Ctx(ctx).With().
		Str("url", cfg.URL).
		Stringer("strategy", cfg.Strategy()).
		Logger()
	ctx = logger.WithContext(ctx)

	resolver := &pathResolver{fs: o.fs, tempRoot: o.tempRoot}
	target, err := resolver.resolve(cfg)
	if err != nil {
		return nil, err
	}

	repo, err := cloneInto(ctx, o.engine, resolver, target, cfg.URL, CloneOptions{
		Strategy: cfg.Strategy(),
		Auth:     cfg.Auth,
		Depth:    cfg.Depth,
		Branch:   cfg.Branch,
		Progress: o.progress,
	})
	if err != nil {
		return nil, err
	}

	logger.Debug().Str("path", target.path).Msg("acquired repository")
	return &Handle{
		path:      target.path,
		root:      target.footprint(),
		sourceURL: cfg.URL,
		strategy:  cfg.Strategy(),
		repo:      repo,
		fs:        o.fs,
		log:       logger,
	}, nil
}

// With acquires a repository, passes it to fn and always deletes it
// afterwards. A disposal error is joined with fn's error.
//
// Example:
//
//	err := remote.With(ctx, cfg, func(h *remote.Handle) error {
//	    info, err := h.Info()
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(info.FirstCommit)
//	    return nil
//	})
func With(ctx context.Context, cfg Config, fn func(*Handle) error, opts ...Option) (err error) {
	h, err := Acquire(ctx, cfg, opts...)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, h.Delete())
	}()

	return fn(h)
}

// AcquireAll acquires every configuration concurrently and returns the
// handles in the order of cfgs. If any acquisition fails, the handles already
// acquired are deleted and the first error is returned.
func AcquireAll(ctx context.Context, cfgs []Config, opts ...Option) ([]*Handle, error) {
	o := newOptions(opts)
	handles := make([]*Handle, len(cfgs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, cfg := range cfgs {
		g.Go(func() error {
			h, err := Acquire(gctx, cfg, opts...)
			if err != nil {
				return fmt.Errorf("failed to acquire %s: %w", cfg.URL, err)
			}
			handles[i] = h
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.Join(err, DeleteAll(handles))
	}
	return handles, nil
}

// DeleteAll deletes every non-nil handle and joins the errors.
func DeleteAll(handles []*Handle) error {
	var errs []error
	for _, h := range handles {
		if h != nil {
			errs = append(errs, h.Delete())
		}
	}
	return errors.Join(errs...)
}
