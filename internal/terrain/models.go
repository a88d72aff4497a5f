// Package terrain holds the immutable terrain-type registry. The catalog is
// loaded once at process start and read-only afterward, so lookups are safe
// for unsynchronized concurrent reads.
package terrain

import (
	"encoding/json"
	"fmt"
	"time"
)

// UndefinedID is the built-in terrain every unpersisted hex resolves to. It
// is always present in a loaded registry, whether or not the catalog file
// mentions it.
const UndefinedID = "undefined"

// Duration marshals as a Go duration string ("90m", "4h") so catalog files
// stay readable.
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("terrain: travel_time must be a duration string: %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("terrain: invalid travel_time %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// StealthBand is one entry of a stealth-distance table. A nil MaxDistance
// marks the unbounded final band.
type StealthBand struct {
	MaxDistance *float64 `json:"max_distance"`
	Modifier    int      `json:"modifier"`
}

// Unbounded reports whether the band has no upper distance limit.
func (b StealthBand) Unbounded() bool { return b.MaxDistance == nil }

// Type is a terrain definition from the catalog.
type Type struct {
	ID                   string        `json:"id"`
	DisplayName          string        `json:"display_name"`
	TravelTime           Duration      `json:"travel_time"`
	StealthTable         []StealthBand `json:"stealth_distance_table"`
	NavigationDifficulty int           `json:"navigation_difficulty"`
}

// undefinedType is the universal implicit-hex default.
func undefinedType() Type {
	return Type{
		ID:           UndefinedID,
		DisplayName:  "Undefined",
		TravelTime:   0,
		StealthTable: []StealthBand{{MaxDistance: nil, Modifier: 0}},
	}
}
