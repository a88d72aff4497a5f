// Package viewport turns viewport-change events into renderable map frames:
// visible hex range, culled outline geometry, and the sparse overlay of
// persisted cells, merged in one store round trip per frame.
package viewport

import (
	"context"
	"log/slog"

	"campaign-server/internal/hexcell"
	"campaign-server/internal/hexgrid"

	apperrors "campaign-server/internal/shared/errors"
)

// CellSource supplies the persisted cells for a bounding box.
type CellSource interface {
	GetRange(ctx context.Context, layer int, rng hexgrid.Range) (map[string]hexcell.Record, error)
}

// Viewport is one settled view of the map: geographic bounds plus zoom.
// Events are coalesced upstream; intermediate drag positions never arrive
// here.
type Viewport struct {
	Layer int     `json:"layer"`
	Zoom  float64 `json:"zoom"`
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// Frame is the complete recompute result for one viewport.
type Frame struct {
	Generation uint64                    `json:"generation"`
	Range      hexgrid.Range             `json:"range"`
	Outlines   []hexgrid.Outline         `json:"outlines"`
	Cells      map[string]hexcell.Record `json:"cells"`
}

// Service performs the pure, synchronous frame recompute. It holds no
// mutable state and is safe for concurrent use.
type Service struct {
	grid   *hexgrid.Grid
	cfg    hexgrid.GeometryConfig
	cells  CellSource
	logger *slog.Logger
}

func NewService(grid *hexgrid.Grid, cfg hexgrid.GeometryConfig, cells CellSource, logger *slog.Logger) *Service {
	return &Service{
		grid:   grid,
		cfg:    cfg,
		cells:  cells,
		logger: logger,
	}
}

// ComputeFrame builds the frame for a viewport: the four corner points are
// projected to meters, culled to a hex range, and merged with the persisted
// overlay.
func (s *Service) ComputeFrame(ctx context.Context, vp Viewport) (*Frame, error) {
	if vp.North < vp.South {
		return nil, apperrors.Validation("viewport north bound must not be below south bound")
	}

	corners := []hexgrid.Point{
		s.grid.GeoToMeters(vp.South, vp.West),
		s.grid.GeoToMeters(vp.South, vp.East),
		s.grid.GeoToMeters(vp.North, vp.East),
		s.grid.GeoToMeters(vp.North, vp.West),
	}

	outlines, rng, err := hexgrid.Outlines(vp.Layer, corners, vp.Zoom, s.cfg)
	if err != nil {
		return nil, apperrors.WrapValidation("failed to build viewport geometry", err)
	}

	cells, err := s.cells.GetRange(ctx, vp.Layer, rng)
	if err != nil {
		return nil, apperrors.WrapInternal("failed to load persisted cells for viewport", err)
	}
	if cells == nil {
		cells = map[string]hexcell.Record{}
	}

	s.logger.Debug("Viewport frame computed",
		"layer", vp.Layer,
		"zoom", vp.Zoom,
		"hexes", rng.Count(),
		"outlines", len(outlines),
		"persisted_cells", len(cells),
	)

	return &Frame{
		Range:    rng,
		Outlines: outlines,
		Cells:    cells,
	}, nil
}
