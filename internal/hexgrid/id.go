package hexgrid

import (
	"fmt"
	"strconv"
	"strings"
)

// GenerateID returns the canonical identifier for a hex within a layer,
// "hex:l{layer}:q{q}:r{r}:s{s}". This is the only place ids are produced;
// no other component assembles the string by hand. Layer is part of the id,
// so ids are unique across layers by construction.
func GenerateID(layer int, h Hex) (string, error) {
	if !h.Valid() {
		return "", ErrInvalidCoordinate
	}
	return fmt.Sprintf("hex:l%d:q%d:r%d:s%d", layer, h.Q, h.R, h.S), nil
}

// ParseID is the inverse of GenerateID. Any string not matching the
// canonical shape, including a parity-violating triple that GenerateID
// could never have produced, fails with ErrMalformedID.
func ParseID(id string) (layer int, h Hex, err error) {
	parts := strings.Split(id, ":")
	if len(parts) != 5 || parts[0] != "hex" {
		return 0, Hex{}, ErrMalformedID
	}

	layer, err = parseIDPart(parts[1], 'l')
	if err != nil {
		return 0, Hex{}, err
	}
	h.Q, err = parseIDPart(parts[2], 'q')
	if err != nil {
		return 0, Hex{}, err
	}
	h.R, err = parseIDPart(parts[3], 'r')
	if err != nil {
		return 0, Hex{}, err
	}
	h.S, err = parseIDPart(parts[4], 's')
	if err != nil {
		return 0, Hex{}, err
	}

	if !h.Valid() {
		return 0, Hex{}, ErrMalformedID
	}
	return layer, h, nil
}

func parseIDPart(part string, prefix byte) (int, error) {
	if len(part) < 2 || part[0] != prefix {
		return 0, ErrMalformedID
	}
	v, err := strconv.Atoi(part[1:])
	if err != nil {
		return 0, ErrMalformedID
	}
	// Atoi tolerates "+1" and "007"; only the exact spelling GenerateID
	// emits is a valid id, so the parse must round-trip.
	if strconv.Itoa(v) != part[1:] {
		return 0, ErrMalformedID
	}
	return v, nil
}

// Label is the human-readable display form used for on-map annotation only,
// never for lookups.
func Label(h Hex) string {
	return fmt.Sprintf("%d, %d, %d", h.Q, h.R, h.S)
}
