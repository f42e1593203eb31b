package b39geo

import (
	"fmt"

	"github.com/rawbytedev/b39geo/internal/common"
)

// Pack splits a 44-bit code into four 11-bit word indices, most
// significant group first.
func Pack(code uint64) ([common.Words]uint16, error) {
	var idx [common.Words]uint16
	if err := common.CheckWidth("code", code, common.CodeBits); err != nil {
		return idx, err
	}
	for i := range idx {
		shift := common.WordBits * (common.Words - 1 - i)
		idx[i] = uint16(code >> shift & common.Mask11)
	}
	return idx, nil
}

// Unpack joins four 11-bit word indices back into a 44-bit code.
func Unpack(idx [common.Words]uint16) (uint64, error) {
	var code uint64
	for i, v := range idx {
		if err := common.CheckWidth(fmt.Sprintf("index %d", i), uint64(v), common.WordBits); err != nil {
			return 0, err
		}
		code = code<<common.WordBits | uint64(v)
	}
	return code, nil
}
