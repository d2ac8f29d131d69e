package compact

// ValidateWellFormed reports whether buf is a single well-formed
// compact value with no trailing bytes, without requiring canonic
// widths, float bit patterns, or map key ordering.
func ValidateWellFormed(buf []byte) error {
	_, err := Decode(buf)
	return err
}

// ValidateCanonic reports whether buf is a single well-formed compact
// value that is ALSO in canonic form: every count/int uses the
// narrowest width that represents it, every float is the single
// canonic bit pattern for its value, every map's keys are in strictly
// ascending order with no duplicates, and no byte-string or set tag
// appears.
func ValidateCanonic(buf []byte) error {
	_, err := DecodeCanonic(buf)
	return err
}
