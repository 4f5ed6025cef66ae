package errors

import (
	"encoding/json"
)

// ErrorResponse is a flat, serializable view of an error. The wrapped chain is
// not included.
type ErrorResponse struct {
	// Code is the error code identifying the type of error.
	Code string `json:"code" yaml:"code"`

	// Message is the human-readable error message.
	Message string `json:"message" yaml:"message"`

	// Classification indicates whether the error is retryable or permanent.
	Classification string `json:"classification" yaml:"classification"`

	// Context contains optional metadata about the error.
	Context map[string]interface{} `json:"context,omitempty" yaml:"context,omitempty"`
}

// ToJSON converts any error to an ErrorResponse. Returns nil if err is nil.
//
// For a PlatformError the code, message, classification and context are
// copied. Plain errors become CodeUnknown and ClassificationPermanent with
// err.Error() as the message.
//
// Example:
//
//	if err != nil {
//	    return json.NewEncoder(os.Stderr).Encode(errors.ToJSON(err))
//	}
func ToJSON(err error) *ErrorResponse {
	if err == nil {
		return nil
	}

	message := err.Error()
	var context map[string]interface{}

	var platformErr PlatformError
	if As(err, &platformErr) {
		message = platformErr.Message()
		context = platformErr.Context()
	}

	return &ErrorResponse{
		Code:           string(GetCode(err)),
		Message:        message,
		Classification: string(GetClassification(err)),
		Context:        context,
	}
}

// MarshalJSON lets a PlatformError be passed to json.Marshal directly.
//
//	err := errors.New(errors.CodeDisposed, "handle disposed")
//	data, _ := json.Marshal(err)
//	// {"code":"DISPOSED","message":"handle disposed","classification":"PERMANENT"}
func (e *platformError) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(&ErrorResponse{
		Code:           string(e.code),
		Message:        e.message,
		Classification: string(e.classification),
		Context:        e.context,
	})
	if err != nil {
		return nil, &platformError{
			code:           CodeInternal,
			classification: ClassificationPermanent,
			message:        "failed to marshal error response",
			cause:          err,
		}
	}
	return data, nil
}
