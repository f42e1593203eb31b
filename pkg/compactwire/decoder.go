package compactwire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/rawbytedev/b39geo/internal/common"
)

// ReadCode parses the 6-byte form produced by AppendCode.
func ReadCode(b []byte) (uint64, error) {
	if len(b) != CodeSize {
		return 0, fmt.Errorf("%w, got %d", ErrCodeSize, len(b))
	}
	var full [8]byte
	copy(full[8-CodeSize:], b)
	code := binary.BigEndian.Uint64(full[:])
	if err := common.CheckWidth("code", code, common.CodeBits); err != nil {
		return 0, err
	}
	return code, nil
}

// DecodeFrame verifies a frame and returns the code it carries.
func DecodeFrame(data []byte) (uint64, error) {
	rdr := bytes.NewReader(data)
	t, err := readPreamble(rdr)
	if err != nil || t != TypeCode {
		return 0, ErrNotFrame
	}
	if len(data) != FrameSize {
		return 0, fmt.Errorf("%w: want %d bytes, got %d", ErrLengthMismatch, FrameSize, len(data))
	}
	body := data[len(magic) : FrameSize-4]
	want := binary.LittleEndian.Uint32(data[FrameSize-4:])
	if crc32.ChecksumIEEE(body) != want {
		return 0, ErrCRCMismatch
	}
	return ReadCode(body[1:])
}
