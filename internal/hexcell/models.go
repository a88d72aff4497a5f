// Package hexcell implements the sparse persistence model for hex cells:
// only explicitly edited coordinates are stored, every other coordinate
// resolves at read time to an implicit default view that is never
// materialized.
package hexcell

import (
	"time"

	"campaign-server/internal/hexgrid"
	"campaign-server/internal/terrain"
)

// Record is the persisted state of an edited hex cell. Layer and q/r/s live
// only in the key (the hex id), never duplicated inside the value.
type Record struct {
	TerrainType string    `json:"terrain_type"`
	HasFord     bool      `json:"has_ford"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Patch is a partial update; nil fields are left unchanged.
type Patch struct {
	TerrainType *string `json:"terrain_type,omitempty"`
	HasFord     *bool   `json:"has_ford,omitempty"`
}

func (p Patch) Empty() bool {
	return p.TerrainType == nil && p.HasFord == nil
}

// View is the read-time projection of a coordinate, persisted or implicit.
type View struct {
	HexID       string     `json:"hex_id"`
	LayerID     int        `json:"layer_id"`
	Q           int        `json:"q"`
	R           int        `json:"r"`
	S           int        `json:"s"`
	IsPersisted bool       `json:"is_persisted"`
	TerrainType string     `json:"terrain_type"`
	HasFord     bool       `json:"has_ford"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// NewView projects a record, or the implicit default when rec is nil, onto
// a coordinate.
func NewView(layer int, h hexgrid.Hex, rec *Record) (View, error) {
	id, err := hexgrid.GenerateID(layer, h)
	if err != nil {
		return View{}, err
	}

	v := View{
		HexID:       id,
		LayerID:     layer,
		Q:           h.Q,
		R:           h.R,
		S:           h.S,
		TerrainType: terrain.UndefinedID,
	}
	if rec != nil {
		v.IsPersisted = true
		v.TerrainType = rec.TerrainType
		v.HasFord = rec.HasFord
		updatedAt := rec.UpdatedAt
		v.UpdatedAt = &updatedAt
	}
	return v, nil
}
