package terrain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCatalog indicates the catalog failed validation at load time.
	// This is fatal at startup: the process must not run with a partially
	// valid registry.
	ErrInvalidCatalog = errors.New("terrain: invalid catalog")
	// ErrUnknownTerrain indicates a lookup for an unregistered terrain id.
	ErrUnknownTerrain = errors.New("terrain: unknown terrain type")
)

// Registry answers terrain lookups. Built once via Load, immutable after.
type Registry struct {
	types map[string]Type
	order []string
}

// Load validates catalog entries and builds a registry. The built-in
// "undefined" entry is injected first; catalog content can neither remove
// nor redefine it.
func Load(entries []Type) (*Registry, error) {
	r := &Registry{types: make(map[string]Type, len(entries)+1)}
	r.add(undefinedType())

	for i, t := range entries {
		if err := validateType(t); err != nil {
			return nil, fmt.Errorf("%w: entry %d (%q): %w", ErrInvalidCatalog, i, t.ID, err)
		}
		if t.ID == UndefinedID {
			return nil, fmt.Errorf("%w: entry %d: %q is reserved for the built-in default", ErrInvalidCatalog, i, UndefinedID)
		}
		if _, dup := r.types[t.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidCatalog, t.ID)
		}
		r.add(t)
	}
	return r, nil
}

func (r *Registry) add(t Type) {
	r.types[t.ID] = t
	r.order = append(r.order, t.ID)
}

func validateType(t Type) error {
	if t.ID == "" {
		return errors.New("id must not be empty")
	}
	if t.TravelTime < 0 {
		return fmt.Errorf("travel_time must not be negative, got %v", t.TravelTime)
	}
	if len(t.StealthTable) == 0 {
		return errors.New("stealth_distance_table must not be empty")
	}

	prev := -1.0
	for i, band := range t.StealthTable {
		last := i == len(t.StealthTable)-1
		if last {
			if !band.Unbounded() {
				return errors.New("final stealth band must be unbounded")
			}
			continue
		}
		if band.Unbounded() {
			return fmt.Errorf("stealth band %d: only the final band may be unbounded", i)
		}
		if *band.MaxDistance <= prev {
			return fmt.Errorf("stealth band %d: max_distance must be strictly ascending", i)
		}
		prev = *band.MaxDistance
	}
	return nil
}

// Lookup returns a terrain type by id.
func (r *Registry) Lookup(id string) (Type, error) {
	t, ok := r.types[id]
	if !ok {
		return Type{}, fmt.Errorf("%w: %q", ErrUnknownTerrain, id)
	}
	return t, nil
}

// Has reports whether a terrain id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.types[id]
	return ok
}

// All returns every registered type in load order.
func (r *Registry) All() []Type {
	out := make([]Type, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.types[id])
	}
	return out
}

// StealthModifier scans the stealth table in ascending order and returns the
// modifier of the first band covering the given distance. The final band is
// unbounded, so the scan always terminates with a value.
func StealthModifier(t Type, distanceUnits float64) int {
	for _, band := range t.StealthTable {
		if band.Unbounded() || *band.MaxDistance >= distanceUnits {
			return band.Modifier
		}
	}
	// Unreachable for a validated type; a zero modifier is the safe answer.
	return 0
}
