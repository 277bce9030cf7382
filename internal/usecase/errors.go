package usecase

import "fmt"

type ErrorKind string

const (
	// ErrorConversion covers rendering failures and byte transfer failures.
	ErrorConversion ErrorKind = "CONVERSION_ERROR"
	// ErrorGeneral covers everything else: bad events, key decoding, store access.
	ErrorGeneral ErrorKind = "GENERAL_ERROR"
)

type Error struct {
	Kind   ErrorKind
	Reason string
	Err    error
}

// Error returns the human readable message reported back to the caller.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return e.Reason
	}
	return fmt.Sprintf("%s: %v", e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(kind ErrorKind, reason string, err error) *Error {
	return &Error{Kind: kind, Reason: reason, Err: err}
}
