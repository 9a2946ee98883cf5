package engine

import (
	"errors"
	"fmt"
)

// Kind classifies engine failures.
type Kind string

const (
	// KindInvalidInput covers empty or unparseable requests. Fatal for
	// the request; the caller renders a user-facing message from Field.
	KindInvalidInput Kind = "invalid_input"

	// KindUnknownCountry is never returned as an error: unrecognized
	// countries degrade to the neutral multiplier with a result flag.
	// The kind exists so callers can label the flag consistently.
	KindUnknownCountry Kind = "unknown_country"

	// KindOutOfRange marks an internal invariant violation (a composite
	// outside [0,100] reaching the tier classifier, or a pillar index out
	// of bounds). Not expected in normal operation.
	KindOutOfRange Kind = "out_of_range"
)

// Error carries the failure kind plus the offending field, enough
// structure for a caller to render a message without parsing text.
type Error struct {
	Kind  Kind
	Field string
	Msg   string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Msg, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Is lets errors.Is match against the kind sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Field == "" && t.Msg == ""
}

// Sentinels for errors.Is matching.
var (
	ErrInvalidInput = &Error{Kind: KindInvalidInput}
	ErrOutOfRange   = &Error{Kind: KindOutOfRange}
)

func invalidInput(field, msg string) error {
	return &Error{Kind: KindInvalidInput, Field: field, Msg: msg}
}

func outOfRange(field, msg string) error {
	return &Error{Kind: KindOutOfRange, Field: field, Msg: msg}
}

// KindOf extracts the error kind, or "" for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
