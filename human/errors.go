// Package human implements the valuable-value human-readable textual
// encoding: a flexible decode grammar (several accepted spellings for
// integers, strings, and byte strings) paired with a single canonical
// pretty-printing encoder.
package human

import (
	"fmt"

	"github.com/synadia-labs/valuable-value-go/internal/cursor"
)

// Error is implemented by every error this package returns.
type Error interface {
	error
	Position() int
}

type posError struct {
	pos int
	msg string
}

func (e *posError) Error() string { return fmt.Sprintf("at byte %d: %s", e.pos, e.msg) }
func (e *posError) Position() int { return e.pos }

func errAt(c *cursor.Cursor, format string, args ...any) error {
	return &posError{pos: c.Pos(), msg: fmt.Sprintf(format, args...)}
}

// wrap turns a *cursor.PositionError (or any error) into a human
// package Error, preserving position when available.
func wrap(err error) error {
	if err == nil {
		return nil
	}
	if pe, ok := err.(*cursor.PositionError); ok {
		return &posError{pos: pe.Pos, msg: pe.Err.Error()}
	}
	return &posError{pos: -1, msg: err.Error()}
}

// ErrUnexpectedByte reports a byte that does not begin any recognized
// lexeme at the current decode position.
var ErrUnexpectedByte = fmt.Errorf("unexpected byte")

// ErrUnterminatedString reports a quoted or raw string missing its
// closing delimiter.
var ErrUnterminatedString = fmt.Errorf("unterminated string")

// ErrInvalidEscape reports an unrecognized backslash escape inside a
// quoted string.
var ErrInvalidEscape = fmt.Errorf("invalid escape sequence")

// ErrInvalidNumber reports a malformed numeric literal.
var ErrInvalidNumber = fmt.Errorf("invalid number literal")

// ErrEmptyCollectionComma reports a comma appearing before any element
// of an otherwise-empty array, map, or set — the grammar allows a
// trailing comma after the last element but never a leading one.
var ErrEmptyCollectionComma = fmt.Errorf("comma not allowed before first element of empty collection")

// ErrExpectedColon reports a map entry missing its key/value
// separator.
var ErrExpectedColon = fmt.Errorf("expected ':' after map key")
