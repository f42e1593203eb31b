// Package morton interleaves two 22-bit grid indices into a 44-bit
// Z-order code: bit 2i carries x's bit i, bit 2i+1 carries y's bit i.
package morton

import (
	"fmt"

	"github.com/rawbytedev/b39geo/internal/common"
)

var (
	masks = [...]uint64{
		0x5555555555555555,
		0x3333333333333333,
		0x0F0F0F0F0F0F0F0F,
		0x00FF00FF00FF00FF,
		0x0000FFFF0000FFFF,
		0x00000000FFFFFFFF,
	}
	shifts = [...]uint{1, 2, 4, 8, 16}
)

// spread moves bit i of a 32-bit value to bit 2i.
func spread(v uint64) uint64 {
	for i := 4; i >= 0; i-- {
		v = (v | v<<shifts[i]) & masks[i]
	}
	return v
}

// compact is the inverse of spread; odd bits are ignored.
func compact(v uint64) uint64 {
	v &= masks[0]
	for i := 0; i < 5; i++ {
		v = (v | v>>shifts[i]) & masks[i+1]
	}
	return v
}

// Interleave builds the code for (x, y). Both must fit in 22 bits.
func Interleave(x, y uint32) (uint64, error) {
	if err := common.CheckWidth("x", uint64(x), common.CoordBits); err != nil {
		return 0, err
	}
	if err := common.CheckWidth("y", uint64(y), common.CoordBits); err != nil {
		return 0, err
	}
	return spread(uint64(x)) | spread(uint64(y))<<1, nil
}

func MustInterleave(x, y uint32) uint64 {
	code, err := Interleave(x, y)
	if err != nil {
		panic(fmt.Errorf("cannot interleave %d and %d: %w", x, y, err))
	}
	return code
}

// Deinterleave splits a code back into (x, y). Bits above 44 are discarded.
func Deinterleave(code uint64) (x, y uint32) {
	code &= common.Mask44
	return uint32(compact(code)), uint32(compact(code >> 1))
}
