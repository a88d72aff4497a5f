// Package marker implements campaign map markers: named geographic points
// pinned to the map. Marker responses carry the id of the hex containing
// the marker so the map UI can link a marker to its cell without redoing
// the projection client-side.
package marker

import (
	"errors"
	"time"
)

// ErrNameTaken indicates a marker name that is already in use.
var ErrNameTaken = errors.New("marker: name already in use")

// Marker is a persisted map marker.
type Marker struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	MapID       string    `json:"map_id"`
	IconType    string    `json:"icon_type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// View is a marker plus its derived hex placement on the ground layer.
type View struct {
	Marker
	HexID string `json:"hex_id"`
}

// CreateRequest is the client-supplied portion of a new marker.
type CreateRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	MapID       string  `json:"map_id"`
	IconType    string  `json:"icon_type"`
}

// UpdateRequest is a partial marker update; nil fields are left unchanged.
type UpdateRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	MapID       *string  `json:"map_id,omitempty"`
	IconType    *string  `json:"icon_type,omitempty"`
}
