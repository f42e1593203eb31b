// Package compactwire is the binary form of a 44-bit location code.
//
// A bare code is 6 bytes, big-endian, with the top nibble zero. A frame
// wraps it for storage or transport:
//
//	magic   2 bytes  0xB3 0x9E
//	type    1 byte   TypeCode
//	code    6 bytes  big-endian
//	crc32   4 bytes  little-endian IEEE over type and code
package compactwire

import (
	"bytes"
	"errors"
)

const (
	CodeSize  = 6
	FrameSize = len(magic) + 1 + CodeSize + 4
)

const TypeCode byte = 0x01

var magic = [2]byte{0xB3, 0x9E}

var (
	ErrCodeSize       = errors.New("code must be 6 bytes")
	ErrNotFrame       = errors.New("not a code frame")
	ErrLengthMismatch = errors.New("length mismatch")
	ErrCRCMismatch    = errors.New("crc mismatch")
)

func writePreamble(buf *bytes.Buffer, t byte) {
	buf.Write(magic[:])
	buf.WriteByte(t)
}

func readPreamble(r *bytes.Reader) (byte, error) {
	var m [2]byte
	if _, err := r.Read(m[:]); err != nil || m != magic {
		return 0, ErrNotFrame
	}
	return r.ReadByte()
}
