// Package remote acquires remote Git repositories as local clones and manages
// their lifecycle.
//
// An acquisition turns a Config into a Handle: the target directory is
// resolved (a fresh temporary directory, or a caller supplied one that must be
// empty or missing), the repository is cloned into it with the selected
// Strategy, and the handle takes ownership of the directory. Deleting the
// handle removes the directory and everything beneath it.
//
// # Acquisition
//
//	h, err := remote.Acquire(ctx, remote.Config{
//	    URL:  "https://github.com/org/repo",
//	    Bare: true,
//	})
//	if err != nil {
//	    return err
//	}
//	defer h.Delete()
//
// With scopes a handle to a function and always deletes it. AcquireAll clones
// several repositories concurrently and releases all of them if one fails.
//
// # Metadata
//
// Handle.Info returns an Info snapshot with the clone path, the origin URL and
// the root commit reachable from HEAD. Snapshots are plain values and stay
// valid after the handle is deleted.
//
// # Engines
//
// Cloning is delegated to an Engine. GoGitEngine (the default) clones
// in-process with go-git and accepts credentials through Config.Auth.
// CLIEngine runs the git binary and relies on git's own credential helpers.
//
// # Errors
//
// Every failure wraps one of the sentinels ErrPathResolution,
// ErrTargetDirectoryConflict, ErrRemoteUnavailable, ErrRemoteAuth,
// ErrHandleDisposed or ErrIncompleteDisposal. They are platform errors, so
// errors.GetCode and errors.IsRetryable from the errors package apply.
// Acquisitions are never retried here.
//
// # Logging
//
// The package logs through the zerolog logger attached to the context passed
// to Acquire, if any.
package remote
