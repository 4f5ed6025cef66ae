package exec

import (
	"context"
	"io"
	"time"
)

// Executor runs external commands through a fluent, chainable API.
// Settings applied with the With* methods are local to the next Run call.
type Executor interface {
	// WithEnv adds environment variables for the next run.
	// Local values override globals with the same key.
	WithEnv(env map[string]string) Executor

	// WithDir sets the working directory for the next run.
	WithDir(dir string) Executor

	// WithContext sets the context for the next run. The process is killed
	// when the context is canceled.
	WithContext(ctx context.Context) Executor

	// WithDisableColors sets NO_COLOR, TERM=dumb and related variables.
	WithDisableColors() Executor

	// WithTimeout bounds the next run. Zero means no timeout.
	WithTimeout(timeout time.Duration) Executor

	// WithInheritEnv passes the parent process environment through.
	WithInheritEnv() Executor

	// WithStdout sets the writer used for stdout passthrough.
	WithStdout(w io.Writer) Executor

	// WithStderr sets the writer used for stderr passthrough.
	WithStderr(w io.Writer) Executor

	// WithPassthrough streams output to the stdout and stderr writers while
	// still capturing it in the Result.
	WithPassthrough() Executor

	// Run executes args[0] with the remaining arguments.
	Run(args ...string) (*Result, error)

	// Clone returns an independent copy carrying the same configuration.
	// Executors are not safe for concurrent use, so each goroutine should
	// run its own clone.
	Clone() Executor
}

// Result holds the captured output of a finished command.
type Result struct {
	Stdout   string
	Stderr   string
	Combined string
	ExitCode int
}

// Option configures global settings on a Command at creation time.
// Global settings apply to every run and can be overridden locally.
type Option func(*Command)

// WithEnv sets global environment variables.
func WithEnv(env map[string]string) Option {
	return func(c *Command) {
		for k, v := range env {
			c.config.globalEnv[k] = v
		}
	}
}

// WithDir sets the global working directory.
func WithDir(dir string) Option {
	return func(c *Command) {
		c.config.globalDir = dir
	}
}

// WithContext sets the default context used when no local context is given.
func WithContext(ctx context.Context) Option {
	return func(c *Command) {
		c.baseCtx = ctx
	}
}

// WithDisableColors disables color output for every run.
func WithDisableColors() Option {
	return func(c *Command) {
		c.config.globalDisableColors = true
	}
}

// WithInheritEnv enables environment inheritance for every run.
func WithInheritEnv() Option {
	return func(c *Command) {
		c.config.globalInheritEnv = true
	}
}

// WithStdout sets the stdout passthrough writer.
func WithStdout(w io.Writer) Option {
	return func(c *Command) {
		c.stdout = w
	}
}

// WithStderr sets the stderr passthrough writer.
func WithStderr(w io.Writer) Option {
	return func(c *Command) {
		c.stderr = w
	}
}

// WithPassthrough enables output passthrough for every run.
func WithPassthrough() Option {
	return func(c *Command) {
		c.config.globalPassthrough = true
	}
}
