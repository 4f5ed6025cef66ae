package errors

import (
	stderrors "errors"
)

// Is reports whether any error in err's chain matches target.
//
// Example:
//
//	if errors.Is(err, remote.ErrHandleDisposed) {
//	    // handle was deleted
//	}
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Join returns an error wrapping all non-nil errs. Returns nil if every
// error is nil.
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}

// GetCode returns the code of the outermost PlatformError in err's chain.
// Returns CodeUnknown if err is nil or carries no PlatformError.
//
// Example:
//
//	if errors.GetCode(err) == errors.CodeUnauthorized {
//	    // prompt for credentials
//	}
func GetCode(err error) ErrorCode {
	if err == nil {
		return CodeUnknown
	}

	var platformErr PlatformError
	if stderrors.As(err, &platformErr) {
		return platformErr.Code()
	}

	return CodeUnknown
}

// GetClassification returns the classification of the outermost PlatformError
// in err's chain. Returns ClassificationPermanent if err is nil or carries no
// PlatformError, so unknown failures are never retried.
func GetClassification(err error) ErrorClassification {
	if err == nil {
		return ClassificationPermanent
	}

	var platformErr PlatformError
	if stderrors.As(err, &platformErr) {
		return platformErr.Classification()
	}

	return ClassificationPermanent
}

// IsRetryable returns true if err is classified as retryable.
//
// Example:
//
//	op := func() error {
//	    _, err := remote.Acquire(ctx, cfg)
//	    if err != nil && !errors.IsRetryable(err) {
//	        return backoff.Permanent(err)
//	    }
//	    return err
//	}
func IsRetryable(err error) bool {
	return GetClassification(err).IsRetryable()
}
