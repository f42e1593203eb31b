package morton

import (
	"errors"
	"testing"
	"testing/quick"

	"github.com/rawbytedev/b39geo/internal/common"
	"github.com/stretchr/testify/require"
)

// reference is the bit-by-bit definition of the interleave.
func reference(x, y uint32) uint64 {
	var code uint64
	for i := 0; i < common.CoordBits; i++ {
		code |= uint64(x>>i&1) << (2 * i)
		code |= uint64(y>>i&1) << (2*i + 1)
	}
	return code
}

func TestInterleaveKnown(t *testing.T) {
	cases := []struct {
		x, y uint32
		code uint64
	}{
		{0, 0, 0},
		{1, 0, 0b01},
		{0, 1, 0b10},
		{3, 0, 0b0101},
		{0b101, 0b011, 0b011011},
		{common.MaxCoord, 0, 0x55555555555},
		{0, common.MaxCoord, 0xAAAAAAAAAAA},
		{common.MaxCoord, common.MaxCoord, common.Mask44},
	}
	for _, c := range cases {
		got, err := Interleave(c.x, c.y)
		require.NoError(t, err)
		require.Equalf(t, c.code, got, "Interleave(%d, %d)", c.x, c.y)
		x, y := Deinterleave(c.code)
		require.Equal(t, c.x, x)
		require.Equal(t, c.y, y)
	}
}

func TestInterleaveMatchesReference(t *testing.T) {
	condition := func(x, y uint32) bool {
		x &= uint32(common.Mask22)
		y &= uint32(common.Mask22)
		code, err := Interleave(x, y)
		return err == nil && code == reference(x, y)
	}
	require.NoError(t, quick.Check(condition, &quick.Config{MaxCount: 5000}))
}

func TestBijection(t *testing.T) {
	condition := func(x, y uint32) bool {
		x &= uint32(common.Mask22)
		y &= uint32(common.Mask22)
		code := MustInterleave(x, y)
		if code > common.Mask44 {
			return false
		}
		gx, gy := Deinterleave(code)
		return gx == x && gy == y
	}
	require.NoError(t, quick.Check(condition, &quick.Config{MaxCount: 5000}))

	codes := func(code uint64) bool {
		code &= common.Mask44
		x, y := Deinterleave(code)
		return MustInterleave(x, y) == code
	}
	require.NoError(t, quick.Check(codes, &quick.Config{MaxCount: 5000}))
}

func TestDeinterleaveMasks(t *testing.T) {
	x, y := Deinterleave(0xFFFF000000000003)
	require.Equal(t, uint32(1), x)
	require.Equal(t, uint32(1), y)
}

func TestInterleaveWidth(t *testing.T) {
	_, err := Interleave(common.MaxCoord+1, 0)
	require.True(t, errors.Is(err, common.ErrBitWidth))
	_, err = Interleave(0, 1<<31)
	require.True(t, errors.Is(err, common.ErrBitWidth))
	require.Panics(t, func() { MustInterleave(1<<22, 0) })
}

func FuzzRoundTrip(f *testing.F) {
	f.Add(uint32(0), uint32(0))
	f.Add(uint32(common.MaxCoord), uint32(12345))
	f.Fuzz(func(t *testing.T, x, y uint32) {
		x &= uint32(common.Mask22)
		y &= uint32(common.Mask22)
		gx, gy := Deinterleave(MustInterleave(x, y))
		require.Equal(t, x, gx)
		require.Equal(t, y, gy)
	})
}

func BenchmarkInterleave(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = Interleave(uint32(i)&uint32(common.Mask22), 0x2AAAAA)
	}
}

func BenchmarkDeinterleave(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = Deinterleave(uint64(i) * 0x9E3779B9)
	}
}
