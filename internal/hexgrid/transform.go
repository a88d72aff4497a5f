package hexgrid

import "math"

// CenterSpacingM is the center-to-center distance in meters between two
// adjacent hexes (3 miles).
const CenterSpacingM = 4828.032

const earthRadiusM = 6371000.0

var sqrt3 = math.Sqrt(3)

// HexSizeM is the hex circumradius in meters, derived from the spacing for
// pointy-top orientation.
var HexSizeM = CenterSpacingM / sqrt3

// Grid binds the pure hex math to a fixed geographic origin. The origin maps
// to Hex{0,0,0}; the projection is a local equirectangular linearization
// around it, the same forward/inverse pair for every consumer. The grid is
// explicitly a locally-linearized model, not a geodesic one.
type Grid struct {
	originLat float64
	originLng float64
	cosOrigin float64
}

// NewGrid anchors a grid at the given geographic origin.
func NewGrid(originLat, originLng float64) *Grid {
	return &Grid{
		originLat: originLat,
		originLng: originLng,
		cosOrigin: math.Cos(radians(originLat)),
	}
}

// GeoToMeters projects a geographic point into the local meters space.
func (g *Grid) GeoToMeters(lat, lng float64) Point {
	return Point{
		X: earthRadiusM * radians(lng-g.originLng) * g.cosOrigin,
		Y: earthRadiusM * radians(lat-g.originLat),
	}
}

// MetersToGeo is the exact inverse of GeoToMeters.
func (g *Grid) MetersToGeo(p Point) (lat, lng float64) {
	lat = g.originLat + degrees(p.Y/earthRadiusM)
	lng = g.originLng + degrees(p.X/(earthRadiusM*g.cosOrigin))
	return lat, lng
}

// GeoToHex returns the hex containing a geographic point.
func (g *Grid) GeoToHex(lat, lng float64) Hex {
	p := g.GeoToMeters(lat, lng)
	return MetersToHex(p.X, p.Y)
}

// HexToGeo returns the geographic position of a hex center.
func (g *Grid) HexToGeo(h Hex) (lat, lng float64) {
	return g.MetersToGeo(HexToMeters(h))
}

func radians(deg float64) float64 { return deg * math.Pi / 180.0 }
func degrees(rad float64) float64 { return rad * 180.0 / math.Pi }

// HexToMeters returns the center of a hex in local meters, computed directly
// from the origin. Summing per-hop neighbor offsets instead would accumulate
// floating-point error over many hops.
func HexToMeters(h Hex) Point {
	return Point{
		X: HexSizeM * sqrt3 * (float64(h.Q) + float64(h.R)/2),
		Y: HexSizeM * 1.5 * float64(h.R),
	}
}

// MetersToFractionalHex inverts the pointy-top hex-to-meters matrix without
// rounding; sFrac is implied as -qFrac-rFrac.
func MetersToFractionalHex(x, y float64) (qFrac, rFrac float64) {
	qFrac = (sqrt3/3*x - y/3) / HexSizeM
	rFrac = (2.0 / 3 * y) / HexSizeM
	return qFrac, rFrac
}

// Round maps fractional axial coordinates to the nearest valid hex. All
// three axes are rounded independently, then the axis with the largest
// rounding error is recomputed from the other two so the result always
// satisfies q+r+s = 0.
func Round(qFrac, rFrac float64) Hex {
	sFrac := -qFrac - rFrac

	q := math.Round(qFrac)
	r := math.Round(rFrac)
	s := math.Round(sFrac)

	dq := math.Abs(q - qFrac)
	dr := math.Abs(r - rFrac)
	ds := math.Abs(s - sFrac)

	switch {
	case dq > dr && dq > ds:
		q = -r - s
	case dr > ds:
		r = -q - s
	default:
		s = -q - r
	}

	return Hex{Q: int(q), R: int(r), S: int(s)}
}

// MetersToHex returns the hex containing a point in local meters.
func MetersToHex(x, y float64) Hex {
	return Round(MetersToFractionalHex(x, y))
}
