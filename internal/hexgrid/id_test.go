package hexgrid

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateIDDeterminism(t *testing.T) {
	id, err := GenerateID(0, Hex{Q: 3, R: -2, S: -1})
	require.NoError(t, err)
	assert.Equal(t, "hex:l0:q3:r-2:s-1", id)

	again, err := GenerateID(0, Hex{Q: 3, R: -2, S: -1})
	require.NoError(t, err)
	assert.Equal(t, id, again)
}

func TestGenerateIDParity(t *testing.T) {
	// Every zero-sum triple succeeds, every nonzero-sum triple fails.
	for q := -3; q <= 3; q++ {
		for r := -3; r <= 3; r++ {
			for s := -3; s <= 3; s++ {
				h := Hex{Q: q, R: r, S: s}
				_, err := GenerateID(1, h)
				if q+r+s == 0 {
					require.NoError(t, err, "hex %+v", h)
				} else {
					require.ErrorIs(t, err, ErrInvalidCoordinate, "hex %+v", h)
				}
			}
		}
	}
}

func TestParseIDInverse(t *testing.T) {
	cases := []struct {
		layer int
		hex   Hex
	}{
		{0, Hex{0, 0, 0}},
		{0, Hex{3, -2, -1}},
		{2, Hex{-14, 9, 5}},
		{-1, Hex{33, -17, -16}},
	}
	for _, tc := range cases {
		id, err := GenerateID(tc.layer, tc.hex)
		require.NoError(t, err)

		layer, hex, err := ParseID(id)
		require.NoError(t, err, "id %q", id)
		assert.Equal(t, tc.layer, layer)
		assert.Equal(t, tc.hex, hex)
	}
}

func TestParseIDMalformed(t *testing.T) {
	cases := []string{
		"",
		"hex",
		"hex:l0:q1:r0",
		"hex:l0:q1:r0:s-1:extra",
		"cell:l0:q1:r0:s-1",
		"hex:x0:q1:r0:s-1",
		"hex:l0:q:r0:s0",
		"hex:l0:qa:r0:s0",
		"hex:l0:q1:r1:s1",    // parity violation never produced by GenerateID
		"hex:l0:q+1:r0:s-1",  // signed spelling of q1
		"hex:l0:q01:r0:s-1",  // zero-padded spelling of q1
		"hex:l0:q1:r-0:s-1",  // negative zero spelling of r0
		"hex:l00:q1:r0:s-1",  // zero-padded layer
		"hex:l0:q 1:r0:s-1",  // embedded whitespace
	}
	for _, id := range cases {
		t.Run(fmt.Sprintf("%q", id), func(t *testing.T) {
			_, _, err := ParseID(id)
			assert.ErrorIs(t, err, ErrMalformedID)
		})
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "3, -2, -1", Label(Hex{Q: 3, R: -2, S: -1}))
	assert.Equal(t, "0, 0, 0", Label(Hex{}))
}
