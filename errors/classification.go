package errors

// ErrorClassification indicates whether an error should trigger a retry.
type ErrorClassification string

const (
	// ClassificationRetryable indicates temporary failures that may succeed on retry.
	// Examples: unreachable remotes, timeouts.
	ClassificationRetryable ErrorClassification = "RETRYABLE"

	// ClassificationPermanent indicates failures that will not succeed on retry.
	// Examples: bad credentials, conflicting target directories, disposed handles.
	ClassificationPermanent ErrorClassification = "PERMANENT"
)

// IsRetryable returns true if the classification indicates retry should be attempted.
func (c ErrorClassification) IsRetryable() bool {
	return c == ClassificationRetryable
}

// defaultClassifications maps error codes to their default classification.
var defaultClassifications = map[ErrorCode]ErrorClassification{
	CodeTimeout:     ClassificationRetryable,
	CodeNetwork:     ClassificationRetryable,
	CodeUnavailable: ClassificationRetryable,

	CodeNotFound:        ClassificationPermanent,
	CodeAlreadyExists:   ClassificationPermanent,
	CodeConflict:        ClassificationPermanent,
	CodeDisposed:        ClassificationPermanent,
	CodeUnauthorized:    ClassificationPermanent,
	CodeInvalidInput:    ClassificationPermanent,
	CodeInvalidConfig:   ClassificationPermanent,
	CodeFilesystem:      ClassificationPermanent,
	CodeExecutionFailed: ClassificationPermanent,
	CodeInternal:        ClassificationPermanent,
	CodeUnknown:         ClassificationPermanent,
}

// getDefaultClassification returns the default classification for an error code.
// Codes missing from the table are permanent.
func getDefaultClassification(code ErrorCode) ErrorClassification {
	if class, ok := defaultClassifications[code]; ok {
		return class
	}
	return ClassificationPermanent
}
