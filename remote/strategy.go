package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-git/go-billy/v5"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	platformerrors "github.com/jmgilman/repodriller/errors"
	"github.com/jmgilman/repodriller/exec"
	"github.com/jmgilman/repodriller/git"
	"github.com/rs/zerolog"
)

// Strategy selects the on-disk layout of a clone.
type Strategy int

const (
	// StrategyFull clones with a working tree at the target path and the
	// repository database under .git.
	StrategyFull Strategy = iota

	// StrategyBare clones only the repository database, directly at the
	// target path.
	StrategyBare
)

func (s Strategy) String() string {
	switch s {
	case StrategyFull:
		return "full"
	case StrategyBare:
		return "bare"
	default:
		return "unknown"
	}
}

// CloneOptions are passed to an Engine for a single clone.
type CloneOptions struct {
	Strategy Strategy
	Auth     git.Auth
	Depth    int

	// Branch limits the clone to a single branch. Empty clones all branches.
	Branch string

	// Progress receives the remote's progress messages. Nil discards them.
	Progress io.Writer
}

// Engine performs the VCS work of an acquisition.
type Engine interface {
	// Clone materializes url at path, an existing empty directory, using the
	// layout selected by opts.Strategy.
	Clone(ctx context.Context, url, path string, opts CloneOptions) error

	// Open opens the repository at path.
	Open(path string) (*git.Repository, error)
}

// configValidator is implemented by engines that restrict which
// configurations they accept.
type configValidator interface {
	Validate(cfg Config) error
}

// GoGitEngine clones in-process with go-git. It is the default engine.
type GoGitEngine struct {
	opts []git.RepositoryOption
}

// NewGoGitEngine returns a GoGitEngine. The options are applied to every
// clone in addition to the ones derived from CloneOptions.
func NewGoGitEngine(opts ...git.RepositoryOption) *GoGitEngine {
	return &GoGitEngine{opts: opts}
}

// Clone implements Engine.
func (e *GoGitEngine) Clone(ctx context.Context, url, path string, opts CloneOptions) error {
	gitOpts := append([]git.RepositoryOption{}, e.opts...)
	gitOpts = append(gitOpts, git.WithDepth(opts.Depth))
	if opts.Auth != nil {
		gitOpts = append(gitOpts, git.WithAuth(opts.Auth))
	}
	if opts.Progress != nil {
		gitOpts = append(gitOpts, git.WithProgress(opts.Progress))
	}
	if opts.Strategy == StrategyBare {
		gitOpts = append(gitOpts, git.WithBare())
	}
	if opts.Branch != "" {
		gitOpts = append(gitOpts,
			git.WithReferenceName(plumbing.NewBranchReferenceName(opts.Branch)),
			git.WithSingleBranch())
	}

	repo, err := git.Clone(ctx, url, path, gitOpts...)
	if err != nil {
		return err
	}
	return repo.Close()
}

// Open implements Engine.
func (e *GoGitEngine) Open(path string) (*git.Repository, error) {
	return git.Open(path)
}

// CLIEngine clones by running the git binary. Credentials are resolved by git
// itself (credential helpers, ssh-agent), so Config.Auth is rejected.
type CLIEngine struct {
	git *exec.CommandWrapper
}

// NewCLIEngine returns a CLIEngine running git through executor. A nil
// executor runs git with the parent environment and colors disabled.
func NewCLIEngine(executor exec.Executor) *CLIEngine {
	if executor == nil {
		executor = exec.New(exec.WithInheritEnv(), exec.WithDisableColors())
	}
	return &CLIEngine{git: exec.NewWrapper(executor, "git")}
}

// Validate rejects in-process credentials.
func (e *CLIEngine) Validate(cfg Config) error {
	if cfg.Auth != nil {
		return platformerrors.New(platformerrors.CodeInvalidConfig,
			"the git CLI engine does not accept credentials, configure a git credential helper instead")
	}
	return nil
}

// Clone implements Engine.
func (e *CLIEngine) Clone(ctx context.Context, url, path string, opts CloneOptions) error {
	args := []string{"clone"}
	if opts.Strategy == StrategyBare {
		args = append(args, "--bare")
	}
	if opts.Depth > 0 {
		args = append(args, "--depth", strconv.Itoa(opts.Depth))
	}
	if opts.Branch != "" {
		args = append(args, "--branch", opts.Branch, "--single-branch")
	}

	// Each clone runs on its own copy so concurrent acquisitions never share
	// local executor state.
	cmd := e.git.Clone().
		WithContext(ctx).
		WithEnv(map[string]string{"GIT_TERMINAL_PROMPT": "0"})
	if opts.Progress != nil {
		args = append(args, "--progress")
		cmd = cmd.WithStdout(opts.Progress).WithStderr(opts.Progress).WithPassthrough()
	}
	args = append(args, "--", url, path)

	if _, err := cmd.Run(args...); err != nil {
		return mapCLIError(ctx, err)
	}
	return nil
}

// Open implements Engine.
func (e *CLIEngine) Open(path string) (*git.Repository, error) {
	return git.Open(path)
}

// mapCLIError classifies a failed git clone by its stderr.
func mapCLIError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return platformerrors.Wrap(errors.Join(ctxErr, err), platformerrors.CodeUnavailable, "git clone interrupted")
	}

	var execErr *exec.ExecError
	if !errors.As(err, &execErr) {
		return platformerrors.Wrap(err, platformerrors.CodeExecutionFailed, "failed to run git clone")
	}

	switch {
	case execErr.StderrContains(
		"authentication failed",
		"could not read username",
		"could not read password",
		"terminal prompts disabled",
		"permission denied (publickey",
		"access denied",
		"returned error: 401",
		"returned error: 403",
	):
		return platformerrors.Wrap(err, platformerrors.CodeUnauthorized, "git clone was denied by the remote")
	case execErr.StderrContains(
		"repository not found",
		"does not appear to be a git repository",
		"does not exist",
		"returned error: 404",
	):
		return platformerrors.Wrap(err, platformerrors.CodeNotFound, "remote repository not found")
	case execErr.StderrContains(
		"could not resolve host",
		"connection refused",
		"connection timed out",
		"could not read from remote repository",
	):
		return platformerrors.Wrap(err, platformerrors.CodeNetwork, "remote is unreachable")
	default:
		return platformerrors.Wrap(err, platformerrors.CodeExecutionFailed, "git clone failed")
	}
}

// cloneInto runs exactly one engine clone into target and opens the result.
// Any failure rolls back what was written under target.
func cloneInto(
	ctx context.Context,
	engine Engine,
	resolver *pathResolver,
	target resolvedPath,
	url string,
	opts CloneOptions,
) (*git.Repository, error) {
	logger := zerolog.Ctx(ctx)

	fail := func(err error) (*git.Repository, error) {
		if rbErr := resolver.rollback(target); rbErr != nil {
			logger.Warn().Err(rbErr).Str("path", target.path).Msg("failed to roll back clone target")
			err = errors.Join(err, fmt.Errorf("%w: rollback of %s failed: %w", ErrPathResolution, target.path, rbErr))
		}
		return nil, err
	}

	logger.Debug().Str("path", target.path).Stringer("strategy", opts.Strategy).Msg("cloning repository")
	if err := engine.Clone(ctx, url, target.path, opts); err != nil {
		return fail(classifyCloneError(err))
	}

	if err := verifyLayout(resolver.fs, target.path, opts.Strategy); err != nil {
		return fail(err)
	}

	repo, err := engine.Open(target.path)
	if err != nil {
		return fail(platformerrors.Wrapf(err, platformerrors.CodeInternal, "failed to open clone at %s", target.path))
	}
	if repo.IsBare() != (opts.Strategy == StrategyBare) {
		_ = repo.Close()
		return fail(platformerrors.Newf(platformerrors.CodeInternal,
			"clone at %s opened with unexpected layout, wanted %s", target.path, opts.Strategy))
	}

	head, err := repo.GetCommit("HEAD")
	if err != nil {
		_ = repo.Close()
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return fail(fmt.Errorf("%w: %s has no commits", ErrRemoteUnavailable, url))
		}
		return fail(platformerrors.Wrapf(err, platformerrors.CodeInternal, "failed to resolve HEAD of clone at %s", target.path))
	}

	logger.Debug().Str("path", target.path).Str("head", head.Hash).Msg("clone verified")
	return repo, nil
}

// verifyLayout checks that path holds a repository in the layout of strategy.
func verifyLayout(fs billy.Basic, path string, strategy Strategy) error {
	marker := gogit.GitDirName
	if strategy == StrategyBare {
		marker = "refs"
	}

	info, err := fs.Stat(fs.Join(path, marker))
	if err != nil || !info.IsDir() {
		if err == nil {
			err = os.ErrInvalid
		}
		return platformerrors.Wrapf(err, platformerrors.CodeInternal,
			"%s clone at %s has no %s directory", strategy, path, marker)
	}
	return nil
}
