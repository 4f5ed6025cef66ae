package remote

import (
	"context"
	"errors"
	"fmt"
	"strings"

	platformerrors "github.com/jmgilman/repodriller/errors"
)

// Sentinel errors returned by this package. Every returned error wraps one of
// them together with its cause, so both match with errors.Is and the
// platform code is available through platformerrors.GetCode.
var (
	// ErrPathResolution means the target directory could not be resolved or
	// prepared on the local filesystem.
	ErrPathResolution = platformerrors.New(platformerrors.CodeFilesystem, "path resolution failed")

	// ErrTargetDirectoryConflict means a caller supplied directory already
	// holds content.
	ErrTargetDirectoryConflict = platformerrors.New(platformerrors.CodeConflict, "target directory is not empty")

	// ErrRemoteUnavailable means the clone failed for a reason other than
	// credentials: unreachable host, missing or empty repository, or a
	// canceled context.
	ErrRemoteUnavailable = platformerrors.New(platformerrors.CodeUnavailable, "remote repository unavailable")

	// ErrRemoteAuth means the remote rejected or required credentials.
	ErrRemoteAuth = platformerrors.New(platformerrors.CodeUnauthorized, "remote authentication failed")

	// ErrHandleDisposed is returned by every query on a deleted handle.
	ErrHandleDisposed = platformerrors.New(platformerrors.CodeDisposed, "repository handle has been disposed")

	// ErrIncompleteDisposal means a handle's directory could not be fully
	// removed. The concrete error is a *DisposalError.
	ErrIncompleteDisposal = platformerrors.New(platformerrors.CodeFilesystem, "repository directory was not fully removed")
)

// DisposalError reports the entries left behind by a failed Delete.
type DisposalError struct {
	// Path is the handle directory.
	Path string

	// Residual lists the paths that still exist, relative to Path. It is
	// empty when the directory itself remains but could not be listed.
	Residual []string

	// Err is the error returned by the filesystem.
	Err error
}

func (e *DisposalError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrIncompleteDisposal.Message(), e.Path)
	if len(e.Residual) > 0 {
		msg += fmt.Sprintf(" (residual: %s)", strings.Join(e.Residual, ", "))
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both ErrIncompleteDisposal and the filesystem error.
func (e *DisposalError) Unwrap() []error {
	return []error{ErrIncompleteDisposal, e.Err}
}

// classifyCloneError maps an engine failure to ErrRemoteAuth or
// ErrRemoteUnavailable. Configuration errors raised by the engine before any
// network activity are returned unchanged.
func classifyCloneError(err error) error {
	if errors.Is(err, ErrRemoteAuth) || errors.Is(err, ErrRemoteUnavailable) {
		return err
	}

	switch platformerrors.GetCode(err) {
	case platformerrors.CodeUnauthorized:
		return fmt.Errorf("%w: %w", ErrRemoteAuth, err)
	case platformerrors.CodeInvalidConfig, platformerrors.CodeInvalidInput:
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			return err
		}
	}

	return fmt.Errorf("%w: %w", ErrRemoteUnavailable, err)
}
