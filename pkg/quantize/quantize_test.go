package quantize

import (
	"errors"
	"math"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStep(t *testing.T) {
	require.InDelta(t, 180.0/4194303, Latitude.Step(), 1e-18)
	require.InDelta(t, 360.0/4194303, Longitude.Step(), 1e-18)
}

func TestForwardBounds(t *testing.T) {
	for _, r := range []Rounding{Nearest, Floor, Ceil} {
		lo, err := Latitude.Forward(-90, r)
		require.NoError(t, err)
		require.Equal(t, uint32(0), lo)

		hi, err := Latitude.Forward(90, r)
		require.NoError(t, err)
		require.Equal(t, uint32(4194303), hi)

		// clamped
		lo, err = Longitude.Forward(-1000, r)
		require.NoError(t, err)
		require.Equal(t, uint32(0), lo)
		hi, err = Longitude.Forward(1000, r)
		require.NoError(t, err)
		require.Equal(t, uint32(4194303), hi)
	}
}

func TestForwardRejectsNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := Latitude.Forward(v, Nearest)
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrInvalidInput))
	}
}

func TestForwardRounding(t *testing.T) {
	// An axis with integer steps makes the fractional offsets exact.
	a := Axis{Min: -4194303, Max: 4194303} // step == 2
	half, err := a.Forward(-4194303+3, Nearest)
	require.NoError(t, err)
	require.Equal(t, uint32(2), half, "1.5 rounds half away from zero")

	f, err := a.Forward(-4194303+3, Floor)
	require.NoError(t, err)
	require.Equal(t, uint32(1), f)

	c, err := a.Forward(-4194303+3, Ceil)
	require.NoError(t, err)
	require.Equal(t, uint32(2), c)

	below, err := a.Forward(-4194303+2.5, Nearest)
	require.NoError(t, err)
	require.Equal(t, uint32(1), below)
}

func TestInverse(t *testing.T) {
	step := Latitude.Step()
	require.Equal(t, -90.0, Latitude.Inverse(0, false))
	require.InDelta(t, -90+step/2, Latitude.Inverse(0, true), 1e-12)
	require.InDelta(t, 90.0, Latitude.Inverse(4194303, false), 1e-9)
}

func TestForwardInverseWithinCell(t *testing.T) {
	condition := func(u float64) bool {
		if math.IsNaN(u) || math.IsInf(u, 0) {
			return true
		}
		lon := math.Mod(u, 180)
		g, err := Longitude.Forward(lon, Nearest)
		if err != nil {
			return false
		}
		back := Longitude.Inverse(g, false)
		return math.Abs(back-lon) <= Longitude.Step()/2+1e-9
	}
	require.NoError(t, quick.Check(condition, &quick.Config{MaxCount: 2000}))
}

func TestParseRounding(t *testing.T) {
	for in, want := range map[string]Rounding{"": Nearest, "nearest": Nearest, "FLOOR": Floor, " ceil ": Ceil} {
		got, err := ParseRounding(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseRounding("up")
	require.Error(t, err)

	var r Rounding
	require.NoError(t, r.UnmarshalText([]byte("ceil")))
	require.Equal(t, Ceil, r)
	b, err := Floor.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "floor", string(b))
}
