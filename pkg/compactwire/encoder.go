package compactwire

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"

	"github.com/rawbytedev/b39geo/internal/common"
)

// AppendCode appends the 6-byte big-endian form of code to dst.
func AppendCode(dst []byte, code uint64) ([]byte, error) {
	if err := common.CheckWidth("code", code, common.CodeBits); err != nil {
		return dst, err
	}
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], code)
	return append(dst, b[8-CodeSize:]...), nil
}

// EncodeFrame serializes code into a checksummed frame.
func EncodeFrame(code uint64) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, FrameSize))
	writePreamble(buf, TypeCode)

	out, err := AppendCode(buf.Bytes(), code)
	if err != nil {
		return nil, err
	}
	// CRC over type + code; magic excluded
	crc := crc32.ChecksumIEEE(out[len(magic):])
	return binary.LittleEndian.AppendUint32(out, crc), nil
}
