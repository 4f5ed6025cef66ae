// Package exec runs external programs behind a small, mockable interface.
//
// It wraps os/exec with a fluent Executor API. Output is captured separately
// for stdout and stderr, and optionally streamed to caller-supplied writers at
// the same time. Failures are returned as *ExecError carrying the exit code and
// captured output so callers can classify them.
//
// # Basic Usage
//
//	result, err := exec.New().Run("git", "--version")
//	if err != nil {
//		return err
//	}
//	fmt.Print(result.Stdout)
//
// # Global and Local Settings
//
// Options passed to New apply to every run. The With* methods apply to the
// next Run call only and override the globals:
//
//	cmd := exec.New(exec.WithInheritEnv(), exec.WithDisableColors())
//	result, err := cmd.
//		WithContext(ctx).
//		WithEnv(map[string]string{"GIT_TERMINAL_PROMPT": "0"}).
//		WithTimeout(2 * time.Minute).
//		Run("git", "clone", "--bare", "--", url, dir)
//
// # Wrappers
//
// A CommandWrapper binds an executor to one program:
//
//	git := exec.NewWrapper(exec.New(), "git")
//	_, err := git.WithDir(repo).Run("status")
//
// # Errors
//
//	var execErr *exec.ExecError
//	if errors.As(err, &execErr) && execErr.StderrContains("authentication failed") {
//		// credentials were rejected
//	}
//
// # Concurrency
//
// A Command holds per-run state and must not be shared between goroutines.
// Call Clone to give each goroutine its own executor.
//
// # Logging
//
// Runs are logged at debug level through the zerolog logger attached to the
// run's context.
package exec
