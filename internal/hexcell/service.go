package hexcell

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"campaign-server/internal/hexgrid"
	"campaign-server/internal/terrain"

	apperrors "campaign-server/internal/shared/errors"
)

// Service enforces the hex-cell contract on top of a Store: parity checks
// before any storage access, terrain validation on writes, implicit-default
// reads, patch-never-creates, idempotent deletes.
type Service struct {
	store    Store
	registry *terrain.Registry
	logger   *slog.Logger
}

func NewService(store Store, registry *terrain.Registry, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		registry: registry,
		logger:   logger,
	}
}

// WriteRequest is the client-supplied portion of a record.
type WriteRequest struct {
	TerrainType string `json:"terrain_type"`
	HasFord     bool   `json:"has_ford"`
}

func validateCoordinate(h hexgrid.Hex) error {
	if !h.Valid() {
		return apperrors.WrapValidation("invalid hex coordinate", hexgrid.ErrInvalidCoordinate)
	}
	return nil
}

// GetOrImplicit returns the persisted view of a coordinate, or the implicit
// default when nothing is stored. Reading never writes.
func (s *Service) GetOrImplicit(ctx context.Context, layer int, h hexgrid.Hex) (View, error) {
	if err := validateCoordinate(h); err != nil {
		return View{}, err
	}

	rec, err := s.store.Get(ctx, layer, h)
	if err != nil {
		return View{}, apperrors.WrapInternal("failed to read hex cell", err)
	}
	return NewView(layer, h, rec)
}

// Put creates or fully replaces the record at a coordinate. The referenced
// terrain must exist in the registry; otherwise the persisted state is left
// unchanged.
func (s *Service) Put(ctx context.Context, layer int, h hexgrid.Hex, req WriteRequest) (View, error) {
	if err := validateCoordinate(h); err != nil {
		return View{}, err
	}
	if !s.registry.Has(req.TerrainType) {
		return View{}, apperrors.WrapValidation("unknown terrain type", terrain.ErrUnknownTerrain)
	}

	rec := Record{
		TerrainType: req.TerrainType,
		HasFord:     req.HasFord,
		UpdatedAt:   time.Now().UTC(),
	}
	if err := s.store.Put(ctx, layer, h, rec); err != nil {
		return View{}, apperrors.WrapInternal("failed to write hex cell", err)
	}

	s.logger.Debug("Hex cell written", "layer", layer, "q", h.Q, "r", h.R, "terrain", req.TerrainType)
	return NewView(layer, h, &rec)
}

// ApplyPatch partially updates an existing record. Patching an unpersisted
// coordinate fails with not-found; patch never creates.
func (s *Service) ApplyPatch(ctx context.Context, layer int, h hexgrid.Hex, p Patch) (View, error) {
	if err := validateCoordinate(h); err != nil {
		return View{}, err
	}
	if p.Empty() {
		return View{}, apperrors.Validation("patch must set at least one field")
	}
	if p.TerrainType != nil && !s.registry.Has(*p.TerrainType) {
		return View{}, apperrors.WrapValidation("unknown terrain type", terrain.ErrUnknownTerrain)
	}

	rec, err := s.store.ApplyPatch(ctx, layer, h, p)
	if err != nil {
		if errors.Is(err, ErrNotPersisted) {
			return View{}, apperrors.NotFoundf("no hex cell persisted at layer %d, (%d, %d, %d)", layer, h.Q, h.R, h.S)
		}
		return View{}, apperrors.WrapInternal("failed to patch hex cell", err)
	}
	return NewView(layer, h, rec)
}

// Delete removes the record if present and reports whether one existed.
// The coordinate reverts to the implicit view either way; deleting an
// absent record is not an error.
func (s *Service) Delete(ctx context.Context, layer int, h hexgrid.Hex) (bool, error) {
	if err := validateCoordinate(h); err != nil {
		return false, err
	}

	existed, err := s.store.Delete(ctx, layer, h)
	if err != nil {
		return false, apperrors.WrapInternal("failed to delete hex cell", err)
	}
	return existed, nil
}

// GetRange returns only the persisted cells inside a bounding box, keyed by
// hex id. Implicit cells are never included, keeping the store sparse by
// construction.
func (s *Service) GetRange(ctx context.Context, layer int, rng hexgrid.Range) (map[string]Record, error) {
	if rng.MaxQ < rng.MinQ || rng.MaxR < rng.MinR {
		return nil, apperrors.Validation("range bounds must satisfy min <= max")
	}

	cells, err := s.store.GetRange(ctx, layer, rng)
	if err != nil {
		return nil, apperrors.WrapInternal("failed to query hex cell range", err)
	}
	return cells, nil
}
