package errors

import (
	"fmt"
	"maps"
)

// Wrap wraps err with a code and message. The cause stays reachable through
// Unwrap, errors.Is and errors.As.
//
// If err already carries a PlatformError, its classification is kept.
// Otherwise the default classification for code is used. Returns nil if err is nil.
//
// Example:
//
//	repo, err := git.Clone(ctx, url, path)
//	if err != nil {
//	    return errors.Wrap(err, errors.CodeUnavailable, "failed to clone repository")
//	}
func Wrap(err error, code ErrorCode, message string) PlatformError {
	return WrapWithContext(err, code, message, nil)
}

// Wrapf wraps err with a formatted message. Returns nil if err is nil.
//
// Example:
//
//	if err := os.Remove(path); err != nil {
//	    return errors.Wrapf(err, errors.CodeFilesystem, "failed to remove %s", path)
//	}
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) PlatformError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WrapWithContext wraps err and attaches a copy of ctx in one step.
// Returns nil if err is nil.
//
// Example:
//
//	return errors.WrapWithContext(err, errors.CodeFilesystem, "failed to create clone directory", map[string]interface{}{
//	    "root": tempRoot,
//	})
func WrapWithContext(err error, code ErrorCode, message string, ctx map[string]interface{}) PlatformError {
	if err == nil {
		return nil
	}

	classification := getDefaultClassification(code)
	var platformErr PlatformError
	if As(err, &platformErr) {
		classification = platformErr.Classification()
	}

	var contextCopy map[string]interface{}
	if ctx != nil {
		contextCopy = maps.Clone(ctx)
	}

	return &platformError{
		code:           code,
		classification: classification,
		message:        message,
		context:        contextCopy,
		cause:          err,
	}
}
