package hexgrid

import "math"

// Corners returns the six corner points of a hex in local meters, each at
// distance HexSizeM from the center, at angles 30 + 60*i degrees. Pointy-top
// orientation: flat edges face east/west, points face north/south.
func Corners(h Hex) [6]Point {
	center := HexToMeters(h)
	var corners [6]Point
	for i := 0; i < 6; i++ {
		angle := radians(30 + 60*float64(i))
		corners[i] = Point{
			X: center.X + HexSizeM*math.Cos(angle),
			Y: center.Y + HexSizeM*math.Sin(angle),
		}
	}
	return corners
}

// Range is an inclusive axial bounding box of hexes.
type Range struct {
	MinQ int `json:"min_q"`
	MaxQ int `json:"max_q"`
	MinR int `json:"min_r"`
	MaxR int `json:"max_r"`
}

// Count returns the number of (q, r) pairs in the range.
func (r Range) Count() int {
	if r.MaxQ < r.MinQ || r.MaxR < r.MinR {
		return 0
	}
	return (r.MaxQ - r.MinQ + 1) * (r.MaxR - r.MinR + 1)
}

// Contains reports whether a hex falls inside the range.
func (r Range) Contains(h Hex) bool {
	return h.Q >= r.MinQ && h.Q <= r.MaxQ && h.R >= r.MinR && h.R <= r.MaxR
}

// Hexes enumerates every coordinate in the range, deriving s from (q, r);
// no separate validity filter is needed.
func (r Range) Hexes() []Hex {
	if r.Count() == 0 {
		return nil
	}
	hexes := make([]Hex, 0, r.Count())
	for q := r.MinQ; q <= r.MaxQ; q++ {
		for rr := r.MinR; rr <= r.MaxR; rr++ {
			hexes = append(hexes, FromAxial(q, rr))
		}
	}
	return hexes
}

// VisibleRange computes the axial bounding box enclosing a viewport given
// by its corner points in local meters, expanded by buffer hexes in each
// direction so panning does not pop hexes in and out abruptly.
func VisibleRange(viewportCorners []Point, buffer int) (Range, error) {
	if len(viewportCorners) == 0 {
		return Range{}, ErrEmptyViewport
	}
	if buffer < 0 {
		buffer = 0
	}

	minQ, maxQ := math.Inf(1), math.Inf(-1)
	minR, maxR := math.Inf(1), math.Inf(-1)
	for _, p := range viewportCorners {
		qf, rf := MetersToFractionalHex(p.X, p.Y)
		minQ = math.Min(minQ, qf)
		maxQ = math.Max(maxQ, qf)
		minR = math.Min(minR, rf)
		maxR = math.Max(maxR, rf)
	}

	return Range{
		MinQ: int(math.Floor(minQ)) - buffer,
		MaxQ: int(math.Ceil(maxQ)) + buffer,
		MinR: int(math.Floor(minR)) - buffer,
		MaxR: int(math.Ceil(maxR)) + buffer,
	}, nil
}

// GeometryConfig holds the rendering thresholds. Both are configuration
// inputs, not constants: outlines are suppressed entirely below
// OutlineMinZoom, labels only appear at or above LabelMinZoom (typically
// the higher of the two).
type GeometryConfig struct {
	BufferHexes    int
	OutlineMinZoom float64
	LabelMinZoom   float64
}

// Outline is the renderable geometry for one hex.
type Outline struct {
	ID      string   `json:"id"`
	Corners [6]Point `json:"corners"`
	// Label is the on-map annotation, empty below the label zoom threshold.
	Label string `json:"label,omitempty"`
}

// Outlines produces renderable geometry for every hex visible in the
// viewport at the given zoom. Below the outline threshold it returns no
// geometry at all; the range is still computed so callers can query
// persisted cells.
func Outlines(layer int, viewportCorners []Point, zoom float64, cfg GeometryConfig) ([]Outline, Range, error) {
	rng, err := VisibleRange(viewportCorners, cfg.BufferHexes)
	if err != nil {
		return nil, Range{}, err
	}
	if zoom < cfg.OutlineMinZoom {
		return nil, rng, nil
	}

	withLabels := zoom >= cfg.LabelMinZoom
	outlines := make([]Outline, 0, rng.Count())
	for _, h := range rng.Hexes() {
		id, err := GenerateID(layer, h)
		if err != nil {
			return nil, Range{}, err
		}
		o := Outline{ID: id, Corners: Corners(h)}
		if withLabels {
			o.Label = Label(h)
		}
		outlines = append(outlines, o)
	}
	return outlines, rng, nil
}
