// Package geodesy converts angular cell sizes into ground distances.
package geodesy

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/golang/geo/s2"
)

// EarthRadius is the IUGG mean Earth radius in metres.
const EarthRadius = 6371008.8

// Extent is the ground size of a cell.
type Extent struct {
	WidthMeters  float64 `json:"widthMeters" yaml:"widthMeters"`
	HeightMeters float64 `json:"heightMeters" yaml:"heightMeters"`
}

func (e Extent) String() string {
	return fmt.Sprintf("%s x %s", humanize.SIWithDigits(e.WidthMeters, 2, "m"), humanize.SIWithDigits(e.HeightMeters, 2, "m"))
}

// CellExtent measures a cell of latDeg x lonDeg degrees whose southern edge
// sits at lat. Width is taken along that parallel.
func CellExtent(lat, latDeg, lonDeg float64) Extent {
	lat = math.Max(-90, math.Min(90-latDeg, lat))
	sw := s2.LatLngFromDegrees(lat, 0)
	se := s2.LatLngFromDegrees(lat, lonDeg)
	nw := s2.LatLngFromDegrees(lat+latDeg, 0)
	return Extent{
		WidthMeters:  sw.Distance(se).Radians() * EarthRadius,
		HeightMeters: sw.Distance(nw).Radians() * EarthRadius,
	}
}
