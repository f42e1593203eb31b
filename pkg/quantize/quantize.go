// Package quantize maps a continuous coordinate axis onto the 22-bit
// integer grid used by the geocoder, and back.
package quantize

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/rawbytedev/b39geo/internal/common"
)

var ErrInvalidInput = errors.New("invalid number")

// Rounding selects how a fractional grid position becomes an index.
type Rounding uint8

const (
	Nearest Rounding = iota // half away from zero
	Floor
	Ceil
)

func (r Rounding) String() string {
	switch r {
	case Nearest:
		return "nearest"
	case Floor:
		return "floor"
	case Ceil:
		return "ceil"
	default:
		return fmt.Sprintf("Rounding(%d)", uint8(r))
	}
}

// ParseRounding parses "nearest", "floor" or "ceil" (case-insensitive).
// The empty string selects Nearest.
func ParseRounding(s string) (Rounding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nearest":
		return Nearest, nil
	case "floor":
		return Floor, nil
	case "ceil":
		return Ceil, nil
	}
	return Nearest, fmt.Errorf("unknown rounding mode %q", s)
}

// MarshalText lets Rounding appear in YAML/JSON configuration.
func (r Rounding) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Rounding) UnmarshalText(b []byte) error {
	v, err := ParseRounding(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Axis is a closed interval quantized into MaxCoord equal steps.
type Axis struct {
	Min float64
	Max float64
}

var (
	Latitude  = Axis{Min: -90, Max: 90}
	Longitude = Axis{Min: -180, Max: 180}
)

// Step is the width of one grid cell in axis units.
func (a Axis) Step() float64 {
	return (a.Max - a.Min) / common.MaxCoord
}

// Forward quantizes value to a grid index. Out-of-range values are clamped
// to the axis; NaN and infinities are rejected.
func (a Axis) Forward(value float64, r Rounding) (uint32, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, value)
	}
	value = common.Clamp(value, a.Min, a.Max)
	t := (value - a.Min) / a.Step()
	switch r {
	case Floor:
		t = math.Floor(t)
	case Ceil:
		t = math.Ceil(t)
	default:
		t = math.Round(t)
	}
	return uint32(common.Clamp(t, 0, common.MaxCoord)), nil
}

// Inverse maps a grid index back onto the axis: the lower cell edge, or the
// cell midpoint when center is set.
func (a Axis) Inverse(grid uint32, center bool) float64 {
	q := float64(grid)
	if center {
		q += 0.5
	}
	return a.Min + q*a.Step()
}
