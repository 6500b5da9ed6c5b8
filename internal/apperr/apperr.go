package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the poll loop can decide what to do with it
// without inspecting error strings.
type Kind int

const (
	Unknown Kind = iota
	ConfigMissing
	TransportUnavailable
	MalformedAnswer
	EmptyAnswer
	MissingField
	UnknownStatus
	DeliveryFailed
)

var kindNames = map[Kind]string{
	Unknown:              "unknown",
	ConfigMissing:        "config_missing",
	TransportUnavailable: "transport_unavailable",
	MalformedAnswer:      "malformed_answer",
	EmptyAnswer:          "empty_answer",
	MissingField:         "missing_field",
	UnknownStatus:        "unknown_status",
	DeliveryFailed:       "delivery_failed",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" && e.Err == nil {
		return e.Kind.String()
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match on kind alone, e.g. errors.Is(err, apperr.E(apperr.EmptyAnswer)).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Op == "" && t.Err == nil && t.Kind == e.Kind
}

// New builds an *Error from a formatted message.
func New(kind Kind, op string, format string, args ...any) error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// Wrap attaches a kind to err. A nil err stays nil.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// E returns a bare sentinel of the given kind for use with errors.Is.
func E(kind Kind) error {
	return &Error{Kind: kind}
}

// KindOf returns the kind of the outermost *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}
