// Package route stores road and river adjacency as flat node/edge
// collections keyed by hex id. Edges are validated at write time: the two
// endpoints must be hexes in the same layer differing by exactly one
// canonical unit vector. There is no object graph and no traversal here,
// only the validated edge list.
package route

import (
	"errors"
	"time"
)

// Kind partitions edges into the two networks.
type Kind string

const (
	KindRoad  Kind = "road"
	KindRiver Kind = "river"
)

func (k Kind) Valid() bool {
	return k == KindRoad || k == KindRiver
}

var (
	// ErrNotAdjacent indicates endpoints that are not hex neighbors.
	ErrNotAdjacent = errors.New("route: edge endpoints must be adjacent hexes")
	// ErrCrossLayer indicates endpoints on different layers.
	ErrCrossLayer = errors.New("route: edge endpoints must share a layer")
	// ErrInvalidKind indicates an unknown edge kind.
	ErrInvalidKind = errors.New("route: edge kind must be road or river")
)

// Edge joins two adjacent hex cells within one layer. Endpoints are stored
// canonically ordered (FromHexID < ToHexID) so the same undirected edge has
// one representation.
type Edge struct {
	Layer     int       `json:"layer"`
	FromHexID string    `json:"from_hex_id"`
	ToHexID   string    `json:"to_hex_id"`
	Kind      Kind      `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}
