package transparent

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can decide how to surface it.
type Kind int

const (
	KindUnknown Kind = iota
	KindConfiguration
	KindInvalidArgument
	KindEncoding
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindEncoding:
		return "encoding"
	default:
		return "unknown"
	}
}

var (
	ErrMissingPrivateKey = &Error{Kind: KindConfiguration, Message: "private key is not configured"}
	ErrUnknownAction     = &Error{Kind: KindInvalidArgument, Message: "unknown action"}
	ErrMalformedToken    = &Error{Kind: KindInvalidArgument, Message: "malformed token"}
	ErrSignatureMismatch = &Error{Kind: KindInvalidArgument, Message: "signature mismatch"}
	ErrUnsupportedValue  = &Error{Kind: KindEncoding, Message: "unsupported parameter value"}
)

type Error struct {
	Kind    Kind
	Op      string
	Message string
	Details string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Details != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Details)
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches sentinel errors by kind and message so that a detailed error
// produced at a call site still satisfies errors.Is(err, ErrUnknownAction).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

func newError(op string, sentinel *Error, details string) *Error {
	return &Error{
		Kind:    sentinel.Kind,
		Op:      op,
		Message: sentinel.Message,
		Details: details,
	}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
