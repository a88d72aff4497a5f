package terrain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dist(v float64) *float64 { return &v }

func forest() Type {
	return Type{
		ID:          "forest",
		DisplayName: "Forest",
		TravelTime:  Duration(90 * time.Minute),
		StealthTable: []StealthBand{
			{MaxDistance: dist(2), Modifier: 5},
			{MaxDistance: dist(6), Modifier: 2},
			{MaxDistance: nil, Modifier: 0},
		},
		NavigationDifficulty: 14,
	}
}

func TestLoadInjectsBuiltinDefault(t *testing.T) {
	r, err := Load(nil)
	require.NoError(t, err)

	undef, err := r.Lookup(UndefinedID)
	require.NoError(t, err)
	assert.Equal(t, UndefinedID, undef.ID)
	assert.True(t, undef.StealthTable[len(undef.StealthTable)-1].Unbounded())

	r, err = Load([]Type{forest()})
	require.NoError(t, err)
	assert.True(t, r.Has(UndefinedID))
	assert.True(t, r.Has("forest"))
}

func TestLoadRejectsInvalidCatalogs(t *testing.T) {
	negative := forest()
	negative.TravelTime = Duration(-time.Minute)

	boundedFinal := forest()
	boundedFinal.StealthTable = []StealthBand{
		{MaxDistance: dist(2), Modifier: 5},
		{MaxDistance: dist(6), Modifier: 2},
	}

	notAscending := forest()
	notAscending.StealthTable = []StealthBand{
		{MaxDistance: dist(6), Modifier: 5},
		{MaxDistance: dist(2), Modifier: 2},
		{MaxDistance: nil, Modifier: 0},
	}

	midUnbounded := forest()
	midUnbounded.StealthTable = []StealthBand{
		{MaxDistance: nil, Modifier: 5},
		{MaxDistance: nil, Modifier: 0},
	}

	emptyTable := forest()
	emptyTable.StealthTable = nil

	reserved := forest()
	reserved.ID = UndefinedID

	cases := []struct {
		name    string
		entries []Type
	}{
		{"DuplicateID", []Type{forest(), forest()}},
		{"NegativeTravelTime", []Type{negative}},
		{"BoundedFinalBand", []Type{boundedFinal}},
		{"NotAscending", []Type{notAscending}},
		{"UnboundedMidBand", []Type{midUnbounded}},
		{"EmptyStealthTable", []Type{emptyTable}},
		{"ReservedUndefinedID", []Type{reserved}},
		{"EmptyID", []Type{{StealthTable: []StealthBand{{MaxDistance: nil}}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(tc.entries)
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	r, err := Load([]Type{forest()})
	require.NoError(t, err)

	_, err = r.Lookup("lava")
	assert.ErrorIs(t, err, ErrUnknownTerrain)
}

func TestAllPreservesLoadOrder(t *testing.T) {
	swamp := forest()
	swamp.ID = "swamp"

	r, err := Load([]Type{forest(), swamp})
	require.NoError(t, err)

	ids := make([]string, 0, 3)
	for _, tt := range r.All() {
		ids = append(ids, tt.ID)
	}
	assert.Equal(t, []string{UndefinedID, "forest", "swamp"}, ids)
}

func TestStealthModifier(t *testing.T) {
	f := forest()

	cases := []struct {
		distance float64
		want     int
	}{
		{0, 5},
		{2, 5},  // first band is inclusive of its max
		{2.1, 2},
		{6, 2},
		{7, 0},
		{1e9, 0}, // unbounded final band always answers
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StealthModifier(f, tc.distance), "distance %v", tc.distance)
	}
}

func TestDurationJSONRoundTrip(t *testing.T) {
	d := Duration(90 * time.Minute)
	data, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"1h30m0s"`, string(data))

	var parsed Duration
	require.NoError(t, parsed.UnmarshalJSON([]byte(`"45m"`)))
	assert.Equal(t, Duration(45*time.Minute), parsed)

	assert.Error(t, parsed.UnmarshalJSON([]byte(`"fast"`)))
	assert.Error(t, parsed.UnmarshalJSON([]byte(`12`)))
}
