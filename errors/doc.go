// Package errors provides the structured error type shared by every package in
// this module.
//
// Errors carry a code for categorization, a retry classification, optional
// context metadata and the wrapped cause. They stay compatible with the
// standard library (errors.Is, errors.As, errors.Unwrap), so sentinel errors
// declared with New can be matched anywhere in a chain.
//
// # Quick Start
//
//	err := errors.New(errors.CodeConflict, "target directory is not empty")
//
//	if err := repo.Clone(ctx); err != nil {
//	    return errors.Wrap(err, errors.CodeUnavailable, "failed to clone repository")
//	}
//
//	err = errors.WithContext(err, "path", "/tmp/repodriller-abc")
//
// # Classification
//
// Each code has a default classification:
//
//   - Retryable: CodeNetwork, CodeTimeout, CodeUnavailable
//   - Permanent: everything else
//
// Retry decisions belong to callers. Use IsRetryable to make them:
//
//	if errors.IsRetryable(err) {
//	    // schedule another attempt
//	}
//
// The classification of a wrapped PlatformError is preserved by Wrap and can be
// overridden with WithClassification.
//
// # Serialization
//
// ToJSON flattens any error into an ErrorResponse with code, message,
// classification and context. The wrapped chain is not included.
package errors
