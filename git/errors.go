package git

import (
	"context"
	"errors"
	"fmt"
	"net"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	platformerrors "github.com/jmgilman/repodriller/errors"
)

// wrapError classifies err as a platform error and prefixes it with context.
// The original error stays in the chain for errors.Is/errors.As.
// If err is nil, returns nil.
func wrapError(err error, context string) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%s: %w", context, classifyError(err))
}

// classification maps a go-git sentinel to a platform code and message.
type classification struct {
	target  error
	code    platformerrors.ErrorCode
	message string
}

var classifications = []classification{
	{gogit.ErrRepositoryNotExists, platformerrors.CodeNotFound, "repository does not exist"},
	{transport.ErrRepositoryNotFound, platformerrors.CodeNotFound, "repository not found"},
	{plumbing.ErrReferenceNotFound, platformerrors.CodeNotFound, "reference not found"},
	{plumbing.ErrObjectNotFound, platformerrors.CodeNotFound, "object not found"},
	{gogit.ErrRemoteNotFound, platformerrors.CodeNotFound, "remote not found"},
	{transport.ErrEmptyRemoteRepository, platformerrors.CodeNotFound, "remote repository is empty"},

	{gogit.ErrRepositoryAlreadyExists, platformerrors.CodeAlreadyExists, "repository already exists"},
	{gogit.ErrRemoteExists, platformerrors.CodeAlreadyExists, "remote already exists"},

	{transport.ErrAuthenticationRequired, platformerrors.CodeUnauthorized, "authentication required"},
	{transport.ErrAuthorizationFailed, platformerrors.CodeUnauthorized, "authorization failed"},
	{transport.ErrInvalidAuthMethod, platformerrors.CodeUnauthorized, "invalid authentication method"},

	{gogit.ErrWorktreeNotClean, platformerrors.CodeConflict, "worktree is not clean"},
	{gogit.ErrEmptyCommit, platformerrors.CodeConflict, "cannot create empty commit: working tree is clean"},

	{gogit.ErrMissingURL, platformerrors.CodeInvalidInput, "URL is required"},
	{gogit.ErrMissingAuthor, platformerrors.CodeInvalidInput, "author is required"},
	{gogit.ErrMissingName, platformerrors.CodeInvalidInput, "name is required"},

	{context.DeadlineExceeded, platformerrors.CodeTimeout, "operation timed out"},
	{context.Canceled, platformerrors.CodeUnavailable, "operation canceled"},
}

// classifyError maps go-git, context and network errors to platform errors
// that wrap the original. Errors already carrying a platform code and unknown
// errors are returned unchanged.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var platformErr platformerrors.PlatformError
	if errors.As(err, &platformErr) {
		return err
	}

	for _, c := range classifications {
		if errors.Is(err, c.target) {
			return platformerrors.Wrap(err, c.code, c.message)
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return platformerrors.Wrap(err, platformerrors.CodeTimeout, "network operation timed out")
		}
		return platformerrors.Wrap(err, platformerrors.CodeNetwork, "network operation failed")
	}

	return err
}
