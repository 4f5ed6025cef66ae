package remote

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	platformerrors "github.com/jmgilman/repodriller/errors"
	"github.com/jmgilman/repodriller/exec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinels(t *testing.T) {
	tests := []struct {
		name      string
		sentinel  error
		code      platformerrors.ErrorCode
		retryable bool
	}{
		{"path resolution", ErrPathResolution, platformerrors.CodeFilesystem, false},
		{"directory conflict", ErrTargetDirectoryConflict, platformerrors.CodeConflict, false},
		{"remote unavailable", ErrRemoteUnavailable, platformerrors.CodeUnavailable, true},
		{"remote auth", ErrRemoteAuth, platformerrors.CodeUnauthorized, false},
		{"handle disposed", ErrHandleDisposed, platformerrors.CodeDisposed, false},
		{"incomplete disposal", ErrIncompleteDisposal, platformerrors.CodeFilesystem, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("%w: %w", tt.sentinel, os.ErrNotExist)

			assert.ErrorIs(t, wrapped, tt.sentinel)
			assert.ErrorIs(t, wrapped, os.ErrNotExist)
			assert.Equal(t, tt.code, platformerrors.GetCode(wrapped))
			assert.Equal(t, tt.retryable, platformerrors.IsRetryable(wrapped))
		})
	}
}

func TestDisposalError(t *testing.T) {
	err := error(&DisposalError{
		Path:     "/tmp/clone",
		Residual: []string{"README.md", "src"},
		Err:      os.ErrPermission,
	})

	assert.ErrorIs(t, err, ErrIncompleteDisposal)
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Equal(t, platformerrors.CodeFilesystem, platformerrors.GetCode(err))
	assert.Contains(t, err.Error(), "/tmp/clone")
	assert.Contains(t, err.Error(), "README.md, src")

	var disposalErr *DisposalError
	require.ErrorAs(t, fmt.Errorf("delete: %w", err), &disposalErr)
	assert.Equal(t, "/tmp/clone", disposalErr.Path)
}

func TestClassifyCloneError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		code     platformerrors.ErrorCode
	}{
		{
			name:     "unauthorized",
			err:      platformerrors.New(platformerrors.CodeUnauthorized, "authentication required"),
			sentinel: ErrRemoteAuth,
			code:     platformerrors.CodeUnauthorized,
		},
		{
			name:     "not found",
			err:      platformerrors.New(platformerrors.CodeNotFound, "repository not found"),
			sentinel: ErrRemoteUnavailable,
			code:     platformerrors.CodeUnavailable,
		},
		{
			name:     "network",
			err:      platformerrors.New(platformerrors.CodeNetwork, "connection refused"),
			sentinel: ErrRemoteUnavailable,
			code:     platformerrors.CodeUnavailable,
		},
		{
			name:     "plain error",
			err:      errors.New("boom"),
			sentinel: ErrRemoteUnavailable,
			code:     platformerrors.CodeUnavailable,
		},
		{
			name:     "canceled context",
			err:      platformerrors.Wrap(context.Canceled, platformerrors.CodeInvalidInput, "clone aborted"),
			sentinel: ErrRemoteUnavailable,
			code:     platformerrors.CodeUnavailable,
		},
		{
			name:     "already classified",
			err:      fmt.Errorf("%w: denied", ErrRemoteAuth),
			sentinel: ErrRemoteAuth,
			code:     platformerrors.CodeUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyCloneError(tt.err)

			assert.ErrorIs(t, err, tt.sentinel)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.code, platformerrors.GetCode(err))
		})
	}
}

func TestClassifyCloneError_ConfigurationPassesThrough(t *testing.T) {
	cfgErr := platformerrors.New(platformerrors.CodeInvalidConfig, "bad credentials type")

	err := classifyCloneError(cfgErr)

	assert.Same(t, cfgErr, err)
	assert.NotErrorIs(t, err, ErrRemoteUnavailable)
}

func TestMapCLIError(t *testing.T) {
	tests := []struct {
		name   string
		stderr string
		code   platformerrors.ErrorCode
	}{
		{"https auth", "fatal: Authentication failed for 'https://example.com/r.git/'", platformerrors.CodeUnauthorized},
		{"prompt disabled", "fatal: could not read Username for 'https://example.com': terminal prompts disabled", platformerrors.CodeUnauthorized},
		{"ssh key", "git@example.com: Permission denied (publickey).", platformerrors.CodeUnauthorized},
		{"missing repo", "remote: Repository not found.", platformerrors.CodeNotFound},
		{"missing path", "fatal: repository '/nope' does not exist", platformerrors.CodeNotFound},
		{"dns", "fatal: unable to access 'https://nohost/': Could not resolve host: nohost", platformerrors.CodeNetwork},
		{"other", "fatal: something unexpected", platformerrors.CodeExecutionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			execErr := &exec.ExecError{
				Command:  []string{"git", "clone"},
				ExitCode: 128,
				Stderr:   tt.stderr,
			}

			err := mapCLIError(context.Background(), execErr)

			assert.Equal(t, tt.code, platformerrors.GetCode(err))
			assert.ErrorIs(t, err, execErr)
		})
	}
}

func TestMapCLIError_ContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := mapCLIError(ctx, &exec.ExecError{ExitCode: -1, Err: errors.New("signal: killed")})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, platformerrors.CodeUnavailable, platformerrors.GetCode(err))
}
