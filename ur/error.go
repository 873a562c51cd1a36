package ur

import "github.com/pkg/errors"

// Kind distinguishes the UR-layer error categories spec.md §7 requires the
// core to be able to tell apart.
type Kind int

const (
	KindInvalidScheme Kind = iota
	KindInvalidType
	KindInvalidPathLength
	KindInvalidSequenceComponent
	KindInvalidFragment
	KindInvalidChecksum
	KindResourceExhausted
)

func (k Kind) String() string {
	switch k {
	case KindInvalidScheme:
		return "InvalidScheme"
	case KindInvalidType:
		return "InvalidType"
	case KindInvalidPathLength:
		return "InvalidPathLength"
	case KindInvalidSequenceComponent:
		return "InvalidSequenceComponent"
	case KindInvalidFragment:
		return "InvalidFragment"
	case KindInvalidChecksum:
		return "InvalidChecksum"
	case KindResourceExhausted:
		return "ResourceExhausted"
	default:
		return "Unknown"
	}
}

// Error is the single result type carrying one of the Kind values above,
// per spec.md §9 "Exceptions / long error-return chains."
type Error struct {
	Kind  Kind
	msg   string
	cause error
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, msg: msg}
}

func wrapError(kind Kind, cause error, msg string) *Error {
	return &Error{Kind: kind, msg: msg, cause: errors.WithStack(cause)}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Kind.String() + ": " + e.msg + ": " + e.cause.Error()
	}
	return e.Kind.String() + ": " + e.msg
}

// Cause supports github.com/pkg/errors-style cause unwrapping.
func (e *Error) Cause() error {
	return e.cause
}

// Unwrap supports errors.Is/errors.As from the standard library.
func (e *Error) Unwrap() error {
	return e.cause
}
