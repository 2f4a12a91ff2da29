package policy

import "errors"

// Kind classifies a domain failure. The set is closed: transports map
// each kind to a status code and everything else is an internal error.
type Kind int

const (
	KindUnknown Kind = iota
	KindUnauthenticated
	KindNotFound
	KindNotAuthorized
	KindInvalidState
	KindConflict
	KindInvalidCredentials
	KindInvalidInput
)

// Error is a domain failure with a caller-visible message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// KindOf returns the kind of a domain error, or KindUnknown for
// anything else (including nil).
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindUnknown
}

// ErrUnauthenticated reports a missing caller identity.
func ErrUnauthenticated() *Error {
	return &Error{Kind: KindUnauthenticated, Message: "Not authenticated"}
}

// ErrNotFound reports a missing entity, e.g. ErrNotFound("Project").
func ErrNotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: entity + " not found"}
}

// ErrNotAuthorized reports a permission failure. An empty msg yields
// the generic message.
func ErrNotAuthorized(msg string) *Error {
	if msg == "" {
		msg = "Not authorized"
	}
	return &Error{Kind: KindNotAuthorized, Message: msg}
}

// ErrInvalidState reports an action forbidden by lifecycle state.
func ErrInvalidState(msg string) *Error {
	return &Error{Kind: KindInvalidState, Message: msg}
}

// ErrConflict reports a uniqueness violation.
func ErrConflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// ErrInvalidCredentials reports a failed login. The message does not
// distinguish unknown users from wrong passwords.
func ErrInvalidCredentials() *Error {
	return &Error{Kind: KindInvalidCredentials, Message: "Invalid credentials"}
}

// ErrInvalidInput reports a malformed argument.
func ErrInvalidInput(msg string) *Error {
	return &Error{Kind: KindInvalidInput, Message: msg}
}
