package compact

import "fmt"

// Error is implemented by every error this package returns. Resumable
// reports whether the failure is specific to one value and a caller
// could, in principle, skip past it and keep decoding the rest of the
// stream (as opposed to a corruption that invalidates the whole
// remaining buffer).
type Error interface {
	error
	Resumable() bool
}

// PositionedError is implemented by canonicity violations, which must
// point at the exact byte that first committed the violation (the
// start of the tag byte), not the position after the failing read.
type PositionedError interface {
	Error
	Position() int
}

// contextError is implemented by errors that can be annotated with a
// surrounding description (e.g. "decoding map value for key %d").
type contextError interface {
	Error
	withContext(ctx string) error
}

// WrapError annotates err with ctx if err supports it, returning err
// unchanged otherwise.
func WrapError(err error, ctx string) error {
	if err == nil {
		return nil
	}
	if ce, ok := err.(contextError); ok {
		return ce.withContext(ctx)
	}
	return errWrapped{cause: err, ctx: ctx}
}

// Cause unwraps err to the innermost non-wrapping error, if any.
func Cause(err error) error {
	for {
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return err
		}
		next := u.Unwrap()
		if next == nil {
			return err
		}
		err = next
	}
}

// Resumable reports whether err implements Error and is resumable.
func Resumable(err error) bool {
	if e, ok := err.(Error); ok {
		return e.Resumable()
	}
	return false
}

type errWrapped struct {
	cause error
	ctx   string
}

func (e errWrapped) Error() string   { return e.ctx + ": " + e.cause.Error() }
func (e errWrapped) Unwrap() error   { return e.cause }
func (e errWrapped) Resumable() bool { return Resumable(e.cause) }

// ErrShortInput reports that the buffer ended before a complete value
// could be read.
type ErrShortInput struct {
	Wanted int
	Got    int
	ctx    string
}

func (e *ErrShortInput) Error() string {
	return fmt.Sprintf("%sshort input: wanted %d bytes, got %d", ctxPrefix(e.ctx), e.Wanted, e.Got)
}
func (e *ErrShortInput) Resumable() bool { return false }
func (e *ErrShortInput) withContext(ctx string) error {
	c := *e
	c.ctx = ctx
	return &c
}

// ErrTrailingBytes reports that bytes remained after decoding a
// complete top-level value.
type ErrTrailingBytes struct {
	Remaining int
}

func (e *ErrTrailingBytes) Error() string {
	return fmt.Sprintf("trailing bytes: %d unconsumed", e.Remaining)
}
func (e *ErrTrailingBytes) Resumable() bool { return false }

// ErrUnexpectedTag reports a tag byte with an unexpected major type,
// e.g. reading a bool where the stream holds an int.
type ErrUnexpectedTag struct {
	Wanted major
	Got    major
	ctx    string
}

func (e *ErrUnexpectedTag) Error() string {
	return fmt.Sprintf("%sunexpected tag: wanted major %d, got %d", ctxPrefix(e.ctx), e.Wanted, e.Got)
}
func (e *ErrUnexpectedTag) Resumable() bool { return false }
func (e *ErrUnexpectedTag) withContext(ctx string) error {
	c := *e
	c.ctx = ctx
	return &c
}

// ErrNonCanonicalInt reports an integer encoded with a wider width
// selector than its value requires, rejected only in canonic mode
// (counts report ErrNonCanonicalLength instead). Pos is the offset of the tag byte that selected the
// oversized width.
type ErrNonCanonicalInt struct {
	Pos int
	ctx string
}

func (e *ErrNonCanonicalInt) Error() string {
	return fmt.Sprintf("%sat byte %d: non-canonical integer width", ctxPrefix(e.ctx), e.Pos)
}
func (e *ErrNonCanonicalInt) Resumable() bool { return false }
func (e *ErrNonCanonicalInt) Position() int   { return e.Pos }
func (e *ErrNonCanonicalInt) withContext(ctx string) error {
	c := *e
	c.ctx = ctx
	return &c
}

// ErrNonCanonicalLength reports an array/map/bytestring count encoded
// with a wider width selector than its value requires. Pos is the
// offset of the tag byte that selected the oversized width.
type ErrNonCanonicalLength struct {
	Pos int
	ctx string
}

func (e *ErrNonCanonicalLength) Error() string {
	return fmt.Sprintf("%sat byte %d: non-canonical length encoding", ctxPrefix(e.ctx), e.Pos)
}
func (e *ErrNonCanonicalLength) Resumable() bool { return false }
func (e *ErrNonCanonicalLength) Position() int   { return e.Pos }
func (e *ErrNonCanonicalLength) withContext(ctx string) error {
	c := *e
	c.ctx = ctx
	return &c
}

// ErrNonCanonicalFloat reports a float whose bit pattern is not the
// single canonic representation for its value (e.g. a non-canonical
// NaN payload). Pos is the offset of the float's tag byte.
type ErrNonCanonicalFloat struct {
	Pos int
	ctx string
}

func (e *ErrNonCanonicalFloat) Error() string {
	return fmt.Sprintf("%sat byte %d: non-canonical float encoding", ctxPrefix(e.ctx), e.Pos)
}
func (e *ErrNonCanonicalFloat) Resumable() bool { return false }
func (e *ErrNonCanonicalFloat) Position() int   { return e.Pos }
func (e *ErrNonCanonicalFloat) withContext(ctx string) error {
	c := *e
	c.ctx = ctx
	return &c
}

// ErrDuplicateMapKey reports a repeated map key rejected under canonic
// decoding (permissive decoding instead keeps the last occurrence).
// Pos is the offset where the duplicate entry's key began.
type ErrDuplicateMapKey struct {
	Pos int
	ctx string
}

func (e *ErrDuplicateMapKey) Error() string {
	return fmt.Sprintf("%sat byte %d: duplicate map key", ctxPrefix(e.ctx), e.Pos)
}
func (e *ErrDuplicateMapKey) Resumable() bool { return false }
func (e *ErrDuplicateMapKey) Position() int   { return e.Pos }
func (e *ErrDuplicateMapKey) withContext(ctx string) error {
	c := *e
	c.ctx = ctx
	return &c
}

// ErrUnsortedMapKeys reports map entries whose keys are not in
// strictly ascending total order, rejected under canonic decoding.
// Pos is the offset where the out-of-order entry's key began.
type ErrUnsortedMapKeys struct {
	Pos int
	ctx string
}

func (e *ErrUnsortedMapKeys) Error() string {
	return fmt.Sprintf("%sat byte %d: map keys not in strictly ascending order", ctxPrefix(e.ctx), e.Pos)
}
func (e *ErrUnsortedMapKeys) Resumable() bool { return false }
func (e *ErrUnsortedMapKeys) Position() int   { return e.Pos }
func (e *ErrUnsortedMapKeys) withContext(ctx string) error {
	c := *e
	c.ctx = ctx
	return &c
}

// ErrInvalidUTF8 reports a byte string used as text that is not
// well-formed UTF-8.
type ErrInvalidUTF8 struct {
	ctx string
}

func (e *ErrInvalidUTF8) Error() string { return ctxPrefix(e.ctx) + "invalid UTF-8" }
func (e *ErrInvalidUTF8) Resumable() bool { return false }
func (e *ErrInvalidUTF8) withContext(ctx string) error {
	c := *e
	c.ctx = ctx
	return &c
}

// ErrRecursionLimit reports that nested arrays/maps exceeded the
// decoder's depth bound.
type ErrRecursionLimit struct{}

func (e *ErrRecursionLimit) Error() string   { return "recursion limit exceeded" }
func (e *ErrRecursionLimit) Resumable() bool { return false }

// ErrReservedTag reports a tag byte using a width selector/major
// combination the format reserves and never assigns meaning to, or,
// in canonic mode, a tag outside the canonic subset (a nonzero nil
// argument, a byte-string tag, or a set tag). Pos is the offset of
// the tag byte itself.
type ErrReservedTag struct {
	Tag byte
	Pos int
	ctx string
}

func (e *ErrReservedTag) Error() string {
	return fmt.Sprintf("%sat byte %d: reserved tag byte %#x", ctxPrefix(e.ctx), e.Pos, e.Tag)
}
func (e *ErrReservedTag) Resumable() bool { return false }
func (e *ErrReservedTag) Position() int   { return e.Pos }
func (e *ErrReservedTag) withContext(ctx string) error {
	c := *e
	c.ctx = ctx
	return &c
}

func ctxPrefix(ctx string) string {
	if ctx == "" {
		return ""
	}
	return ctx + ": "
}
