package genstream

import "errors"

// Sentinel errors for common failure modes. Errors of type *Error match the
// sentinel for their code with errors.Is.
var (
	// ErrParseFailed indicates a malformed frame or a truncated stream.
	ErrParseFailed = errors.New("parse failed")

	// ErrResponse indicates a blocked prompt or a disqualified candidate,
	// reported by the EnhancedResponse accessors.
	ErrResponse = errors.New("response error")

	// ErrFetch indicates the backend rejected the request.
	ErrFetch = errors.New("fetch error")

	// ErrInvalidContent indicates a response failed strict validation.
	ErrInvalidContent = errors.New("invalid content")

	// ErrValidation indicates a request failed validation.
	ErrValidation = errors.New("validation error")

	// ErrStreamClosed indicates an operation on a closed stream.
	ErrStreamClosed = errors.New("stream closed")
)

// ErrorCode classifies an *Error.
type ErrorCode string

const (
	ErrorCodeParseFailed    ErrorCode = "parse-failed"
	ErrorCodeResponseError  ErrorCode = "response-error"
	ErrorCodeFetchError     ErrorCode = "fetch-error"
	ErrorCodeInvalidContent ErrorCode = "invalid-content"
)

// Error is the error type produced by the pipeline.
type Error struct {
	Code    ErrorCode
	Message string

	// Response is the record that caused a response error. It is nil for
	// other codes.
	Response *Response

	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	msg := e.Message + " (" + string(e.Code) + ")"
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel error associated with e.Code.
func (e *Error) Is(target error) bool {
	switch e.Code {
	case ErrorCodeParseFailed:
		return target == ErrParseFailed
	case ErrorCodeResponseError:
		return target == ErrResponse
	case ErrorCodeFetchError:
		return target == ErrFetch
	case ErrorCodeInvalidContent:
		return target == ErrInvalidContent
	}
	return false
}
