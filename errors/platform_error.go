package errors

import (
	"fmt"
	"maps"
)

// platformError is the concrete implementation of PlatformError.
// It is private so construction goes through package functions.
type platformError struct {
	code           ErrorCode
	classification ErrorClassification
	message        string
	context        map[string]interface{}
	cause          error
}

// Error formats as "[CODE] message", followed by ": cause" when a cause is present.
func (e *platformError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.code, e.message)
}

func (e *platformError) Code() ErrorCode {
	return e.code
}

func (e *platformError) Classification() ErrorClassification {
	return e.classification
}

func (e *platformError) Message() string {
	return e.message
}

// Context returns a copy of the attached metadata, or nil when there is none.
func (e *platformError) Context() map[string]interface{} {
	if e.context == nil {
		return nil
	}
	return maps.Clone(e.context)
}

func (e *platformError) Unwrap() error {
	return e.cause
}

// toPlatformError returns the first PlatformError in err's chain. Plain errors
// are converted into a permanent CodeUnknown error that wraps them.
func toPlatformError(err error) PlatformError {
	var platformErr PlatformError
	if As(err, &platformErr) {
		return platformErr
	}
	return &platformError{
		code:           CodeUnknown,
		classification: ClassificationPermanent,
		message:        err.Error(),
		cause:          err,
	}
}

// derive copies base into a new error, replacing its context.
func derive(base PlatformError, classification ErrorClassification, ctx map[string]interface{}) PlatformError {
	return &platformError{
		code:           base.Code(),
		classification: classification,
		message:        base.Message(),
		context:        ctx,
		cause:          base.Unwrap(),
	}
}
