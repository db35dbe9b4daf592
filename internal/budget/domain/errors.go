package domain

import "errors"

// Kind classifies a domain failure. Storage failures are not a Kind:
// they surface as *storage.Error and map to an unexpected-error status.
type Kind int

const (
	KindInvalidInput Kind = iota + 1
	KindNotFound
	KindConflict
	KindConfig
	KindTimeout
	KindNetwork
	KindProvider
	KindParse
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// E builds a plain domain error.
func E(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds a domain error around an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind Kind) bool {
	var derr *Error
	return errors.As(err, &derr) && derr.Kind == kind
}
