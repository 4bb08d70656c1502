package ledger

import (
	"errors"
	"fmt"
)

// Kind classifies a ledger failure so callers can tell a terminal domain
// rejection from an infrastructure failure without inspecting messages.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindReference
	KindUnexpected
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindReference:
		return "reference"
	case KindUnexpected:
		return "unexpected_store"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by ledger operations.
type Error struct {
	Kind    Kind
	Op      string
	Field   string
	Message string
	Err     error

	// Transient is only meaningful for KindUnexpected. It marks failures that
	// may succeed when the whole unit-of-work is replayed.
	Transient bool
}

// Sentinels for errors.Is. Matching is by Kind only.
var (
	ErrValidation      = &Error{Kind: KindValidation}
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrConflict        = &Error{Kind: KindConflict}
	ErrReference       = &Error{Kind: KindReference}
	ErrUnexpectedStore = &Error{Kind: KindUnexpected}
)

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Field != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Field)
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil && e.Kind == KindUnexpected {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func NewValidationError(op, field, message string) error {
	return &Error{Kind: KindValidation, Op: op, Field: field, Message: message}
}

func NewNotFoundError(op, message string) error {
	return &Error{Kind: KindNotFound, Op: op, Message: message}
}

func NewConflictError(op, message string) error {
	return &Error{Kind: KindConflict, Op: op, Message: message}
}

func NewReferenceError(op, field, message string) error {
	return &Error{Kind: KindReference, Op: op, Field: field, Message: message}
}

// NewUnexpectedStoreError wraps a persistence failure that is not a domain
// rejection.
func NewUnexpectedStoreError(op string, err error, transient bool) error {
	return &Error{Kind: KindUnexpected, Op: op, Message: "store failure", Err: err, Transient: transient}
}

// KindOf reports the kind of err, KindUnknown when err is not a ledger error.
func KindOf(err error) Kind {
	var lerr *Error
	if errors.As(err, &lerr) {
		return lerr.Kind
	}
	return KindUnknown
}

// IsTransient reports whether err is a store failure worth replaying.
func IsTransient(err error) bool {
	var lerr *Error
	if errors.As(err, &lerr) {
		return lerr.Kind == KindUnexpected && lerr.Transient
	}
	return false
}

// WithOp returns err annotated with op when it is a ledger error that has none yet.
func WithOp(err error, op string) error {
	var lerr *Error
	if !errors.As(err, &lerr) || lerr.Op != "" {
		return err
	}
	cp := *lerr
	cp.Op = op
	return &cp
}
