package exec

import (
	"fmt"
	"strings"
)

// ExecError describes a failed command run.
type ExecError struct {
	// Command is the full argument list that was executed.
	Command []string

	// ExitCode is the process exit code, or -1 if the process never started.
	ExitCode int

	Stdout string
	Stderr string

	// Err is the underlying error from os/exec.
	Err error
}

func (e *ExecError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("command %v failed with exit code %d: %v", e.Command, e.ExitCode, e.Err)
	}
	return fmt.Sprintf("command %v failed with exit code %d", e.Command, e.ExitCode)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// StderrContains reports whether stderr contains any of the given substrings,
// ignoring case.
func (e *ExecError) StderrContains(substrs ...string) bool {
	stderr := strings.ToLower(e.Stderr)
	for _, s := range substrs {
		if strings.Contains(stderr, strings.ToLower(s)) {
			return true
		}
	}
	return false
}
