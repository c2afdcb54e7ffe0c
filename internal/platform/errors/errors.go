package errors

import stderrors "errors"

// Error carries a Code alongside a log message and an optional cause.
// Clients only ever see the localized text for the code's category.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches any *Error with the same code, so sentinels compare by code
// even after their message has been reworded.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	return ok && other.Code == e.Code
}

// New returns an Error without a cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap returns an Error that keeps cause in the chain.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// GetCode finds the first *Error in err's chain. Errors without one report
// CodeUnknown.
func GetCode(err error) Code {
	var e *Error
	if !stderrors.As(err, &e) {
		return CodeUnknown
	}
	return e.Code
}

// CategoryOf is the transport code to send for err.
func CategoryOf(err error) Code {
	return GetCode(err).Category()
}
