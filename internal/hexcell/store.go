package hexcell

import (
	"context"
	"errors"

	"campaign-server/internal/hexgrid"
)

// ErrNotPersisted indicates an operation that requires an existing record
// found none at the coordinate.
var ErrNotPersisted = errors.New("hexcell: no record persisted at coordinate")

// Store is the sparse persistence contract. Reads never write; "no record"
// means "implicit default" and is reported as a nil record, not an error.
// The store assumes a single concurrent writer per key (last-write-wins);
// transient I/O failures propagate as-is, retry policy belongs to the
// implementation behind this contract.
type Store interface {
	// Get returns the persisted record at a coordinate, or nil if never
	// written.
	Get(ctx context.Context, layer int, h hexgrid.Hex) (*Record, error)
	// Put creates or fully replaces the record at a coordinate.
	Put(ctx context.Context, layer int, h hexgrid.Hex, rec Record) error
	// ApplyPatch partially updates an existing record, returning the updated
	// state. It never creates: ErrNotPersisted if nothing is stored.
	ApplyPatch(ctx context.Context, layer int, h hexgrid.Hex, p Patch) (*Record, error)
	// Delete removes the record if present and reports whether one existed.
	// Deleting an absent record is a successful no-op.
	Delete(ctx context.Context, layer int, h hexgrid.Hex) (bool, error)
	// GetRange returns only persisted cells inside the bounding box, keyed
	// by hex id, in a single round trip. Implicit cells are never included
	// or materialized.
	GetRange(ctx context.Context, layer int, rng hexgrid.Range) (map[string]Record, error)
}
