package compactwire

import (
	"encoding/hex"
	"errors"
	"testing"
	"testing/quick"

	"github.com/rawbytedev/b39geo/internal/common"
	"github.com/stretchr/testify/require"
)

const sfCode = 0x8e62df862dc

func TestAppendCode(t *testing.T) {
	b, err := AppendCode(nil, sfCode)
	require.NoError(t, err)
	require.Equal(t, "08e62df862dc", hex.EncodeToString(b))

	b, err = AppendCode([]byte{0xAA}, common.Mask44)
	require.NoError(t, err)
	require.Equal(t, "aa0fffffffffff", hex.EncodeToString(b))

	_, err = AppendCode(nil, 1<<44)
	require.True(t, errors.Is(err, common.ErrBitWidth))
}

func TestReadCode(t *testing.T) {
	code, err := ReadCode([]byte{0x08, 0xe6, 0x2d, 0xf8, 0x62, 0xdc})
	require.NoError(t, err)
	require.Equal(t, uint64(sfCode), code)

	_, err = ReadCode([]byte{0x10, 0, 0, 0, 0, 0})
	require.True(t, errors.Is(err, common.ErrBitWidth))

	_, err = ReadCode([]byte{1, 2, 3})
	require.True(t, errors.Is(err, ErrCodeSize))
}

func TestFrameKnown(t *testing.T) {
	f, err := EncodeFrame(sfCode)
	require.NoError(t, err)
	require.Len(t, f, FrameSize)
	require.Equal(t, "b39e0108e62df862dc89a6fd41", hex.EncodeToString(f))

	code, err := DecodeFrame(f)
	require.NoError(t, err)
	require.Equal(t, uint64(sfCode), code)
}

func TestFrameRoundTrip(t *testing.T) {
	condition := func(code uint64) bool {
		code &= common.Mask44
		f, err := EncodeFrame(code)
		if err != nil {
			return false
		}
		got, err := DecodeFrame(f)
		return err == nil && got == code
	}
	require.NoError(t, quick.Check(condition, &quick.Config{}))
}

func TestFrameCorruption(t *testing.T) {
	f, err := EncodeFrame(sfCode)
	require.NoError(t, err)

	flipped := append([]byte(nil), f...)
	flipped[5] ^= 0x01
	_, err = DecodeFrame(flipped)
	require.True(t, errors.Is(err, ErrCRCMismatch))

	badMagic := append([]byte(nil), f...)
	badMagic[0] = 0
	_, err = DecodeFrame(badMagic)
	require.True(t, errors.Is(err, ErrNotFrame))

	badType := append([]byte(nil), f...)
	badType[2] = 0x7F
	_, err = DecodeFrame(badType)
	require.True(t, errors.Is(err, ErrNotFrame))

	_, err = DecodeFrame(f[:len(f)-1])
	require.True(t, errors.Is(err, ErrLengthMismatch))

	_, err = DecodeFrame(nil)
	require.True(t, errors.Is(err, ErrNotFrame))
}

func FuzzDecodeFrame(f *testing.F) {
	good, _ := EncodeFrame(sfCode)
	f.Add(good)
	f.Add([]byte{0xB3, 0x9E})
	f.Fuzz(func(t *testing.T, data []byte) {
		code, err := DecodeFrame(data)
		if err != nil {
			return
		}
		require.LessOrEqual(t, code, common.Mask44)
	})
}
