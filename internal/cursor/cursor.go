// Package cursor implements a shared position-tracking byte-slice
// reader used by both the compact and human decoders. It is grounded
// on the original valuable-value implementation's ParserHelper: a
// minimal cursor over an immutable input slice that never copies,
// reports its own byte offset on error, and exposes both single-byte
// and predicate-driven skipping for lexing.
package cursor

import "fmt"

// ErrUnexpectedEOF is the sentinel wrapped by a PositionError when a
// read runs past the end of the input.
var ErrUnexpectedEOF = fmt.Errorf("unexpected end of input")

// PositionError pairs an error with the byte offset at which it was
// detected. Both decoders report errors this way so a caller can point
// at the exact offending byte.
type PositionError struct {
	Pos int
	Err error
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("at byte %d: %v", e.Pos, e.Err)
}

func (e *PositionError) Unwrap() error { return e.Err }

// Cursor is a read-only view over a byte slice with a current
// position. It never allocates or mutates its input.
type Cursor struct {
	buf []byte
	pos int
}

// New returns a Cursor positioned at the start of buf.
func New(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Len returns the number of bytes remaining.
func (c *Cursor) Len() int { return len(c.buf) - c.pos }

// Pos returns the current byte offset from the start of the input.
func (c *Cursor) Pos() int { return c.pos }

// Rest returns the unconsumed tail of the input. The returned slice
// aliases the Cursor's backing array and must not be mutated.
func (c *Cursor) Rest() []byte { return c.buf[c.pos:] }

// Slice returns buf[start:end] from the original input, regardless of
// the current position. Used by lexers that need to recover the raw
// bytes of a token spanning a range they've already scanned past. The
// returned slice aliases the Cursor's backing array and must not be
// mutated.
func (c *Cursor) Slice(start, end int) []byte { return c.buf[start:end] }

// SeekTo rewinds or fast-forwards the cursor to an absolute byte
// offset. Used by lexers that need to backtrack a speculative,
// lookahead-only parse (e.g. a '.' that turns out not to start a
// fractional part).
func (c *Cursor) SeekTo(pos int) { c.pos = pos }

// AtEnd reports whether every byte has been consumed.
func (c *Cursor) AtEnd() bool { return c.pos >= len(c.buf) }

// errAt wraps err with the cursor's current position.
func (c *Cursor) errAt(err error) error {
	return &PositionError{Pos: c.pos, Err: err}
}

// Advance consumes and returns the next n bytes. It panics if fewer
// than n bytes remain; callers must check Len first (mirroring the
// original's advance, which is only ever called after a length check).
func (c *Cursor) Advance(n int) []byte {
	if n > c.Len() {
		panic("cursor: Advance past end of input")
	}
	out := c.buf[c.pos : c.pos+n]
	c.pos += n
	return out
}

// Next consumes and returns the next byte, or a PositionError wrapping
// ErrUnexpectedEOF if the input is exhausted.
func (c *Cursor) Next() (byte, error) {
	if c.AtEnd() {
		return 0, c.errAt(ErrUnexpectedEOF)
	}
	b := c.buf[c.pos]
	c.pos++
	return b, nil
}

// NextOrEnd consumes and returns the next byte, or (0, false) at end
// of input.
func (c *Cursor) NextOrEnd() (byte, bool) {
	if c.AtEnd() {
		return 0, false
	}
	b := c.buf[c.pos]
	c.pos++
	return b, true
}

// Peek returns the next byte without consuming it, or a PositionError
// wrapping ErrUnexpectedEOF at end of input.
func (c *Cursor) Peek() (byte, error) {
	if c.AtEnd() {
		return 0, c.errAt(ErrUnexpectedEOF)
	}
	return c.buf[c.pos], nil
}

// PeekOrEnd returns the next byte without consuming it, or (0, false)
// at end of input.
func (c *Cursor) PeekOrEnd() (byte, bool) {
	if c.AtEnd() {
		return 0, false
	}
	return c.buf[c.pos], true
}

// PeekAt returns the byte at offset n from the current position
// without consuming anything, or (0, false) if that offset is out of
// range.
func (c *Cursor) PeekAt(n int) (byte, bool) {
	if n < 0 || n >= c.Len() {
		return 0, false
	}
	return c.buf[c.pos+n], true
}

// Expect consumes the next byte and requires it to equal want.
func (c *Cursor) Expect(want byte) error {
	got, err := c.Next()
	if err != nil {
		return err
	}
	if got != want {
		return c.errAt(fmt.Errorf("expected byte %#x, got %#x", want, got))
	}
	return nil
}

// ExpectBytes consumes len(want) bytes and requires them to equal
// want exactly.
func (c *Cursor) ExpectBytes(want []byte) error {
	if c.Len() < len(want) {
		return c.errAt(ErrUnexpectedEOF)
	}
	start := c.pos
	got := c.buf[c.pos : c.pos+len(want)]
	for i := range want {
		if got[i] != want[i] {
			return c.errAt(fmt.Errorf("expected %q at byte %d, got %q", want, start, got))
		}
	}
	c.pos += len(want)
	return nil
}

// AdvanceOver consumes len(expected) bytes and reports whether they
// match expected, leaving the position unchanged on mismatch.
func (c *Cursor) AdvanceOver(expected []byte) bool {
	if c.Len() < len(expected) {
		return false
	}
	for i := range expected {
		if c.buf[c.pos+i] != expected[i] {
			return false
		}
	}
	c.pos += len(expected)
	return true
}

// SkipWhile consumes bytes while pred holds, returning the count
// skipped.
func (c *Cursor) SkipWhile(pred func(byte) bool) int {
	n := 0
	for !c.AtEnd() && pred(c.buf[c.pos]) {
		c.pos++
		n++
	}
	return n
}

// SkipSpace consumes whitespace (space, tab, LF, CR).
func (c *Cursor) SkipSpace() int {
	return c.SkipWhile(IsSpace)
}

// IsSpace reports whether b is a whitespace byte recognized by the
// human grammar: space, tab, line feed, or carriage return.
func IsSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// IsDigit reports whether b is an ASCII decimal digit.
func IsDigit(b byte) bool { return b >= '0' && b <= '9' }

// IsHexDigit reports whether b is an ASCII hex digit.
func IsHexDigit(b byte) bool {
	return IsDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// IsBinaryDigit reports whether b is '0' or '1'.
func IsBinaryDigit(b byte) bool { return b == '0' || b == '1' }

// IsDigitOrUnderscore reports whether b is a decimal digit or the
// '_' separator the human grammar allows inside numeric literals.
func IsDigitOrUnderscore(b byte) bool { return IsDigit(b) || b == '_' }

// IsHexDigitOrUnderscore reports whether b is a hex digit or '_'.
func IsHexDigitOrUnderscore(b byte) bool { return IsHexDigit(b) || b == '_' }

// IsBinaryDigitOrUnderscore reports whether b is a binary digit or '_'.
func IsBinaryDigitOrUnderscore(b byte) bool { return IsBinaryDigit(b) || b == '_' }
