package errors

import "fmt"

// New creates a PlatformError with the given code and message.
// The classification comes from the code's default mapping.
//
// Sentinels declared with New work with errors.Is once wrapped with %w:
//
//	var ErrTargetDirectoryConflict = errors.New(errors.CodeConflict, "target directory conflict")
//
//	return fmt.Errorf("%w: %s is not empty", ErrTargetDirectoryConflict, dir)
func New(code ErrorCode, message string) PlatformError {
	return &platformError{
		code:           code,
		classification: getDefaultClassification(code),
		message:        message,
	}
}

// Newf creates a PlatformError with a formatted message.
//
// Example:
//
//	err := errors.Newf(errors.CodeInvalidInput, "clone depth must not be negative: %d", depth)
func Newf(code ErrorCode, format string, args ...interface{}) PlatformError {
	return New(code, fmt.Sprintf(format, args...))
}
