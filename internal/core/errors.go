package core

import (
	"errors"
	"fmt"
)

var (
	// ErrEncoding is returned by Load when the input is not valid UTF-8.
	ErrEncoding = errors.New("encoding error: input is not valid UTF-8")

	// ErrFieldNotEditable is returned when an edit targets a field that is
	// not one of EditableFields.
	ErrFieldNotEditable = errors.New("field not editable")

	// ErrNotLabelField is returned when a label edit targets a field that is
	// not one of LabelFields.
	ErrNotLabelField = errors.New("not a label field")

	// ErrRecordNotFound is returned for a record index outside the batch.
	ErrRecordNotFound = errors.New("record not found")

	// ErrSessionNotFound is returned for an unknown or expired session.
	ErrSessionNotFound = errors.New("session not found")

	// ErrNoBatch is returned when a session has no batch loaded yet.
	ErrNoBatch = errors.New("no batch loaded")

	// ErrTooManySessions is returned when the session limit is reached.
	ErrTooManySessions = errors.New("too many sessions")
)

// ParseError reports a line of the input file that is not a JSON object.
// Line is 1-based and counts blank lines.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid json on line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// KeyMismatchError reports an option edit for a key the record's options
// do not contain. The edit is skipped; the rest of the session is unaffected.
type KeyMismatchError struct {
	Key       string
	Available []string
}

func (e *KeyMismatchError) Error() string {
	return fmt.Sprintf("option key mismatch: %q is not one of %v", e.Key, e.Available)
}
