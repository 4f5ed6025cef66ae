package exec

import (
	"context"
	"io"
	"os"
	osexec "os/exec"
	"time"

	"github.com/rs/zerolog"
)

// Command is the os/exec backed implementation of Executor.
type Command struct {
	config  *config
	baseCtx context.Context
	ctx     context.Context
	stdout  io.Writer
	stderr  io.Writer
	timeout time.Duration
}

// New creates a Command with the given global options.
func New(opts ...Option) *Command {
	cmd := &Command{
		config:  newConfig(),
		baseCtx: context.Background(),
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}

	for _, opt := range opts {
		opt(cmd)
	}

	return cmd
}

// WithEnv adds environment variables for the next run. They override
// global variables with the same key.
func (c *Command) WithEnv(env map[string]string) Executor {
	for k, v := range env {
		c.config.localEnv[k] = v
	}
	return c
}

// WithDir sets the working directory for the next run.
func (c *Command) WithDir(dir string) Executor {
	c.config.localDir = dir
	return c
}

// WithContext sets the context for the next run. The process is killed
// when it is canceled.
func (c *Command) WithContext(ctx context.Context) Executor {
	c.ctx = ctx
	return c
}

// WithDisableColors asks the program to print plain output.
func (c *Command) WithDisableColors() Executor {
	val := true
	c.config.localDisableColors = &val
	return c
}

// WithTimeout bounds the next run.
func (c *Command) WithTimeout(timeout time.Duration) Executor {
	c.timeout = timeout
	return c
}

// WithInheritEnv passes the parent environment to the next run. Without it
// the program only sees the configured variables.
func (c *Command) WithInheritEnv() Executor {
	val := true
	c.config.localInheritEnv = &val
	return c
}

// WithStdout sets the writer stdout is streamed to in passthrough mode.
func (c *Command) WithStdout(w io.Writer) Executor {
	c.stdout = w
	return c
}

// WithStderr sets the writer stderr is streamed to in passthrough mode.
func (c *Command) WithStderr(w io.Writer) Executor {
	c.stderr = w
	return c
}

// WithPassthrough streams output to the stdout and stderr writers while
// still capturing it.
func (c *Command) WithPassthrough() Executor {
	val := true
	c.config.localPassthrough = &val
	return c
}

// Run executes the command and resets all local settings afterwards.
// A non-zero exit returns both the Result and an *ExecError.
func (c *Command) Run(args ...string) (*Result, error) {
	defer c.resetLocal()

	if len(args) == 0 {
		return nil, &ExecError{
			Command:  args,
			ExitCode: -1,
			Err:      osexec.ErrNotFound,
		}
	}

	ctx := c.baseCtx
	if c.ctx != nil {
		ctx = c.ctx
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	cmd := osexec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = c.config.effectiveDir()

	// A nil Env makes os/exec inherit the parent environment.
	cmd.Env = []string{}
	if c.config.effectiveInheritEnv() {
		cmd.Env = os.Environ()
	}
	for k, v := range c.config.effectiveEnv() {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	var stdoutCapture, stderrCapture *outputCapture
	if c.config.effectivePassthrough() {
		stdoutCapture = newOutputCapture(c.stdout)
		stderrCapture = newOutputCapture(c.stderr)
	} else {
		stdoutCapture = newOutputCapture(nil)
		stderrCapture = newOutputCapture(nil)
	}
	combined := newCombinedWriter()

	cmd.Stdout = newMultiWriter(stdoutCapture.Writer(), combined)
	cmd.Stderr = newMultiWriter(stderrCapture.Writer(), combined)

	logger := zerolog.Ctx(ctx)
	logger.Debug().Strs("args", args).Str("dir", cmd.Dir).Msg("running command")

	start := time.Now()
	err := cmd.Run()

	result := &Result{
		Stdout:   stdoutCapture.String(),
		Stderr:   stderrCapture.String(),
		Combined: combined.String(),
		ExitCode: -1,
	}
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	logger.Debug().
		Str("command", args[0]).
		Int("exit_code", result.ExitCode).
		Dur("duration", time.Since(start)).
		Msg("command finished")

	if err != nil {
		return result, &ExecError{
			Command:  args,
			ExitCode: result.ExitCode,
			Stdout:   result.Stdout,
			Stderr:   result.Stderr,
			Err:      err,
		}
	}

	return result, nil
}

func (c *Command) resetLocal() {
	c.config.resetLocal()
	c.ctx = nil
	c.timeout = 0
}

// Clone returns a copy of c with its own configuration.
func (c *Command) Clone() Executor {
	return &Command{
		config:  c.config.clone(),
		baseCtx: c.baseCtx,
		ctx:     c.ctx,
		stdout:  c.stdout,
		stderr:  c.stderr,
		timeout: c.timeout,
	}
}
