package common

import (
	"errors"
	"fmt"
)

// Grid and code widths.
const (
	CoordBits = 22
	CodeBits  = 2 * CoordBits // 44
	WordBits  = 11
	Words     = CodeBits / WordBits // 4
	FrameBits = 48                  // byte-aligned container for a code

	MaxCoord = 1<<CoordBits - 1 // 4194303
	MaxWord  = 1<<WordBits - 1  // 2047

	Mask22 uint64 = 1<<CoordBits - 1
	Mask44 uint64 = 1<<CodeBits - 1
	Mask11 uint64 = 1<<WordBits - 1
)

// ErrBitWidth reports a value that escaped its expected bit range.
// Reaching it through the public API is a programming error.
var ErrBitWidth = errors.New("value exceeds bit width")

// Fits reports whether v fits in the low bits of an unsigned integer.
func Fits(v uint64, bits uint) bool {
	return v>>bits == 0
}

// CheckWidth returns an ErrBitWidth wrapping error when v needs more than bits.
func CheckWidth(what string, v uint64, bits uint) error {
	if Fits(v, bits) {
		return nil
	}
	return fmt.Errorf("%s %#x wider than %d bits: %w", what, v, bits, ErrBitWidth)
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
