package errors

import "maps"

// WithContext returns a copy of err with one more context field.
// Existing fields are preserved.
//
// Plain errors are converted to a PlatformError with CodeUnknown.
// Returns nil if err is nil.
//
// Example:
//
//	err = errors.WithContext(err, "url", cfg.URL)
//	err = errors.WithContext(err, "strategy", "bare")
func WithContext(err error, key string, value interface{}) PlatformError {
	if err == nil {
		return nil
	}
	return WithContextMap(err, map[string]interface{}{key: value})
}

// WithContextMap merges fields into err's context. New fields override
// existing ones with the same key.
//
// Plain errors are converted to a PlatformError with CodeUnknown.
// Returns nil if err is nil.
//
// Example:
//
//	err = errors.WithContextMap(err, map[string]interface{}{
//	    "command": "git",
//	    "path":    dir,
//	})
func WithContextMap(err error, ctx map[string]interface{}) PlatformError {
	if err == nil {
		return nil
	}

	base := toPlatformError(err)
	merged := make(map[string]interface{}, len(ctx))
	maps.Copy(merged, base.Context())
	maps.Copy(merged, ctx)

	return derive(base, base.Classification(), merged)
}

// WithClassification returns a copy of err with the given classification.
//
// Plain errors are converted to a PlatformError with CodeUnknown.
// Returns nil if err is nil.
//
// Example:
//
//	// A missing remote repository will not appear on retry.
//	err = errors.WithClassification(err, errors.ClassificationPermanent)
func WithClassification(err error, classification ErrorClassification) PlatformError {
	if err == nil {
		return nil
	}

	base := toPlatformError(err)
	return derive(base, classification, base.Context())
}
