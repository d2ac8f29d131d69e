// Package compact implements the valuable-value compact binary wire
// encoding: a tag byte (3-bit major type, 5-bit inline argument or
// width selector) followed by zero or more big-endian payload bytes,
// plus the canonic subset of that encoding that guarantees each value
// has exactly one byte representation.
package compact

// Major type occupies the top 3 bits of a tag byte.
type major uint8

const (
	majorNil   major = 0
	majorBool  major = 1
	majorFloat major = 2
	majorInt   major = 3
	majorBytes major = 4
	majorArray major = 5
	majorSet   major = 6
	majorMap   major = 7
)

// Argument/width-selector occupies the bottom 5 bits of a tag byte.
// Values 0-27 are an inline count or payload; 28-31 say that the
// count/payload instead follows as 1, 2, 4, or 8 big-endian bytes.
const (
	argDirectMax uint8 = 27
	argWidth1    uint8 = 28
	argWidth2    uint8 = 29
	argWidth4    uint8 = 30
	argWidth8    uint8 = 31
)

const (
	boolFalse uint8 = 0
	boolTrue  uint8 = 1
)

func makeTag(m major, arg uint8) byte {
	return byte(m)<<5 | (arg & 0x1f)
}

func tagMajor(b byte) major {
	return major(b >> 5)
}

func tagArg(b byte) uint8 {
	return b & 0x1f
}

// recursionLimit bounds the nesting depth the decoder will follow,
// mirroring the teacher's own depth guard against maliciously deep
// input.
const recursionLimit = 100000
