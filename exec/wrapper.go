package exec

import (
	"context"
	"io"
	"time"
)

// CommandWrapper binds an Executor to a single program, such as git, and
// prepends the program name to every Run call. It implements Executor itself.
type CommandWrapper struct {
	executor Executor
	cmd      string
}

// NewWrapper returns a CommandWrapper that runs cmd through executor.
func NewWrapper(executor Executor, cmd string) *CommandWrapper {
	return &CommandWrapper{
		executor: executor,
		cmd:      cmd,
	}
}

// WithEnv adds environment variables for the next run.
func (w *CommandWrapper) WithEnv(env map[string]string) Executor {
	w.executor = w.executor.WithEnv(env)
	return w
}

// WithDir sets the working directory for the next run.
func (w *CommandWrapper) WithDir(dir string) Executor {
	w.executor = w.executor.WithDir(dir)
	return w
}

// WithContext sets the context for the next run.
func (w *CommandWrapper) WithContext(ctx context.Context) Executor {
	w.executor = w.executor.WithContext(ctx)
	return w
}

// WithDisableColors asks the program to print plain output.
func (w *CommandWrapper) WithDisableColors() Executor {
	w.executor = w.executor.WithDisableColors()
	return w
}

// WithTimeout bounds the next run.
func (w *CommandWrapper) WithTimeout(timeout time.Duration) Executor {
	w.executor = w.executor.WithTimeout(timeout)
	return w
}

// WithInheritEnv passes the parent environment to the next run.
func (w *CommandWrapper) WithInheritEnv() Executor {
	w.executor = w.executor.WithInheritEnv()
	return w
}

// WithStdout sets the stdout passthrough writer.
func (w *CommandWrapper) WithStdout(w2 io.Writer) Executor {
	w.executor = w.executor.WithStdout(w2)
	return w
}

// WithStderr sets the stderr passthrough writer.
func (w *CommandWrapper) WithStderr(w2 io.Writer) Executor {
	w.executor = w.executor.WithStderr(w2)
	return w
}

// WithPassthrough streams output while still capturing it.
func (w *CommandWrapper) WithPassthrough() Executor {
	w.executor = w.executor.WithPassthrough()
	return w
}

// Run executes the bound program with args.
func (w *CommandWrapper) Run(args ...string) (*Result, error) {
	fullArgs := append([]string{w.cmd}, args...)
	return w.executor.Run(fullArgs...)
}

// Name returns the program the wrapper is bound to.
func (w *CommandWrapper) Name() string {
	return w.cmd
}

// Clone returns a wrapper around a clone of the underlying executor.
func (w *CommandWrapper) Clone() Executor {
	return &CommandWrapper{
		executor: w.executor.Clone(),
		cmd:      w.cmd,
	}
}
