package hexgrid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCornersDistanceInvariant(t *testing.T) {
	hexes := []Hex{
		{0, 0, 0},
		{1, 0, -1},
		{-6, 2, 4},
		{33, -17, -16},
	}
	for _, h := range hexes {
		center := HexToMeters(h)
		for i, c := range Corners(h) {
			d := math.Hypot(c.X-center.X, c.Y-center.Y)
			assert.InDelta(t, HexSizeM, d, 1e-6, "corner %d of %+v", i, h)
		}
	}
}

func TestCornersPointyTop(t *testing.T) {
	// First corner sits at 30 degrees: up and to the right of center.
	c := Corners(Hex{0, 0, 0})
	assert.InDelta(t, HexSizeM*math.Cos(math.Pi/6), c[0].X, 1e-6)
	assert.InDelta(t, HexSizeM*0.5, c[0].Y, 1e-6)

	// Corners 1 and 4 are the north and south points.
	assert.InDelta(t, 0, c[1].X, 1e-6)
	assert.InDelta(t, HexSizeM, c[1].Y, 1e-6)
	assert.InDelta(t, 0, c[4].X, 1e-6)
	assert.InDelta(t, -HexSizeM, c[4].Y, 1e-6)
}

func TestVisibleRangeEnclosesViewport(t *testing.T) {
	// A viewport roughly three hexes wide around the origin.
	corners := []Point{
		{X: -1.2 * CenterSpacingM, Y: -1.1 * CenterSpacingM},
		{X: 1.2 * CenterSpacingM, Y: -1.1 * CenterSpacingM},
		{X: 1.2 * CenterSpacingM, Y: 1.1 * CenterSpacingM},
		{X: -1.2 * CenterSpacingM, Y: 1.1 * CenterSpacingM},
	}

	rng, err := VisibleRange(corners, 0)
	require.NoError(t, err)

	// Every viewport corner's containing hex must fall inside the range.
	for _, p := range corners {
		assert.True(t, rng.Contains(MetersToHex(p.X, p.Y)), "corner %+v", p)
	}
	assert.True(t, rng.Contains(Hex{0, 0, 0}))
}

func TestVisibleRangeBuffer(t *testing.T) {
	corners := []Point{{X: 0, Y: 0}}

	tight, err := VisibleRange(corners, 0)
	require.NoError(t, err)
	buffered, err := VisibleRange(corners, 2)
	require.NoError(t, err)

	assert.Equal(t, tight.MinQ-2, buffered.MinQ)
	assert.Equal(t, tight.MaxQ+2, buffered.MaxQ)
	assert.Equal(t, tight.MinR-2, buffered.MinR)
	assert.Equal(t, tight.MaxR+2, buffered.MaxR)
}

func TestVisibleRangeEmptyViewport(t *testing.T) {
	_, err := VisibleRange(nil, 1)
	assert.ErrorIs(t, err, ErrEmptyViewport)
}

func TestRangeHexesAllValid(t *testing.T) {
	rng := Range{MinQ: -2, MaxQ: 2, MinR: -1, MaxR: 3}
	hexes := rng.Hexes()
	require.Len(t, hexes, rng.Count())
	for _, h := range hexes {
		require.True(t, h.Valid())
		require.True(t, rng.Contains(h))
	}
}

func TestOutlinesZoomThresholds(t *testing.T) {
	cfg := GeometryConfig{BufferHexes: 1, OutlineMinZoom: 8, LabelMinZoom: 11}
	viewport := []Point{
		{X: -CenterSpacingM, Y: -CenterSpacingM},
		{X: CenterSpacingM, Y: CenterSpacingM},
	}

	cases := []struct {
		name        string
		zoom        float64
		wantOutline bool
		wantLabels  bool
	}{
		{"BelowOutlineZoom", 7, false, false},
		{"OutlinesOnly", 9, true, false},
		{"OutlinesAndLabels", 11, true, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			outlines, rng, err := Outlines(0, viewport, tc.zoom, cfg)
			require.NoError(t, err)
			require.Greater(t, rng.Count(), 0)

			if !tc.wantOutline {
				assert.Empty(t, outlines)
				return
			}
			require.Len(t, outlines, rng.Count())
			for _, o := range outlines {
				if tc.wantLabels {
					assert.NotEmpty(t, o.Label)
				} else {
					assert.Empty(t, o.Label)
				}
			}
		})
	}
}

func TestOutlinesCarryCanonicalIDs(t *testing.T) {
	cfg := GeometryConfig{OutlineMinZoom: 0, LabelMinZoom: 0}
	outlines, _, err := Outlines(3, []Point{{X: 0, Y: 0}}, 5, cfg)
	require.NoError(t, err)
	require.NotEmpty(t, outlines)

	layer, hex, err := ParseID(outlines[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 3, layer)
	assert.True(t, hex.Valid())
}
