// Package hexgrid implements the cube-coordinate hex grid underlying the
// campaign map: geographic <-> local-meters <-> hex conversions, canonical
// hex identifiers, and viewport-culled corner geometry.
//
// All arithmetic happens in a single local meters space anchored at one
// fixed geographic origin. Hex centers are always computed directly from
// that origin, never by chaining neighbor steps, so floating-point error
// stays bounded at any distance from the origin.
package hexgrid

// Hex is a cube coordinate on the grid. Every valid coordinate satisfies
// Q + R + S == 0; it is a value type with no identity beyond its value.
type Hex struct {
	Q int `json:"q"`
	R int `json:"r"`
	S int `json:"s"`
}

// New builds a coordinate from all three axes, rejecting parity violations.
func New(q, r, s int) (Hex, error) {
	h := Hex{Q: q, R: r, S: s}
	if !h.Valid() {
		return Hex{}, ErrInvalidCoordinate
	}
	return h, nil
}

// FromAxial derives the third axis from the first two; the (q, r)
// parametrization is total over valid hexes.
func FromAxial(q, r int) Hex {
	return Hex{Q: q, R: r, S: -q - r}
}

// Valid reports whether the coordinate satisfies the q+r+s = 0 invariant.
func (h Hex) Valid() bool {
	return h.Q+h.R+h.S == 0
}

// Directions lists the six canonical unit vectors, counterclockwise from east.
var Directions = [6]Hex{
	{Q: 1, R: 0, S: -1},
	{Q: 1, R: -1, S: 0},
	{Q: 0, R: -1, S: 1},
	{Q: -1, R: 0, S: 1},
	{Q: -1, R: 1, S: 0},
	{Q: 0, R: 1, S: -1},
}

// Add returns the component-wise sum of two coordinates.
func (h Hex) Add(o Hex) Hex {
	return Hex{Q: h.Q + o.Q, R: h.R + o.R, S: h.S + o.S}
}

// Sub returns the component-wise difference of two coordinates.
func (h Hex) Sub(o Hex) Hex {
	return Hex{Q: h.Q - o.Q, R: h.R - o.R, S: h.S - o.S}
}

// Neighbor returns the adjacent hex in direction i (mod 6).
func (h Hex) Neighbor(i int) Hex {
	return h.Add(Directions[((i%6)+6)%6])
}

// Adjacent reports whether two coordinates differ by exactly one of the six
// canonical unit vectors.
func Adjacent(a, b Hex) bool {
	d := b.Sub(a)
	for _, dir := range Directions {
		if d == dir {
			return true
		}
	}
	return false
}

// Distance returns the hex distance between two coordinates: the maximum of
// the absolute axis differences in cube space.
func Distance(a, b Hex) int {
	d := a.Sub(b)
	dq, dr, ds := abs(d.Q), abs(d.R), abs(d.S)
	max := dq
	if dr > max {
		max = dr
	}
	if ds > max {
		max = ds
	}
	return max
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Point is a position in the local meters space, relative to the fixed
// origin. X grows east, Y grows north; renderers whose pixel space grows
// downward flip Y exactly once at the boundary.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
