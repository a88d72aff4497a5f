package route

import (
	"context"
	"log/slog"
	"time"

	"campaign-server/internal/hexgrid"

	apperrors "campaign-server/internal/shared/errors"
)

// Store is the flat edge-list persistence contract.
type Store interface {
	// Upsert stores an edge; re-adding an existing edge is a no-op.
	Upsert(ctx context.Context, e Edge) error
	// Delete removes an edge and reports whether it existed.
	Delete(ctx context.Context, layer int, fromID, toID string, kind Kind) (bool, error)
	// List returns edges for a layer, optionally filtered by kind ("" for all).
	List(ctx context.Context, layer int, kind Kind) ([]Edge, error)
}

type Service struct {
	store  Store
	logger *slog.Logger
}

func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// EdgeRequest names an edge by its endpoint hex ids.
type EdgeRequest struct {
	FromHexID string `json:"from_hex_id"`
	ToHexID   string `json:"to_hex_id"`
	Kind      Kind   `json:"kind"`
}

// validate parses both endpoints and checks layer agreement and adjacency.
// Returns the shared layer and the canonically ordered ids.
func validate(req EdgeRequest) (layer int, fromID, toID string, err error) {
	if !req.Kind.Valid() {
		return 0, "", "", apperrors.WrapValidation("invalid edge kind", ErrInvalidKind)
	}

	fromLayer, fromHex, err := hexgrid.ParseID(req.FromHexID)
	if err != nil {
		return 0, "", "", apperrors.WrapValidation("invalid from_hex_id", err)
	}
	toLayer, toHex, err := hexgrid.ParseID(req.ToHexID)
	if err != nil {
		return 0, "", "", apperrors.WrapValidation("invalid to_hex_id", err)
	}

	if fromLayer != toLayer {
		return 0, "", "", apperrors.WrapValidation("edge spans layers", ErrCrossLayer)
	}
	if !hexgrid.Adjacent(fromHex, toHex) {
		return 0, "", "", apperrors.WrapValidation("edge endpoints not adjacent", ErrNotAdjacent)
	}

	fromID, toID = req.FromHexID, req.ToHexID
	if toID < fromID {
		fromID, toID = toID, fromID
	}
	return fromLayer, fromID, toID, nil
}

// Create validates and stores an edge. Idempotent: re-creating the same
// edge succeeds without effect.
func (s *Service) Create(ctx context.Context, req EdgeRequest) (Edge, error) {
	layer, fromID, toID, err := validate(req)
	if err != nil {
		return Edge{}, err
	}

	edge := Edge{
		Layer:     layer,
		FromHexID: fromID,
		ToHexID:   toID,
		Kind:      req.Kind,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Upsert(ctx, edge); err != nil {
		return Edge{}, apperrors.WrapInternal("failed to store route edge", err)
	}

	s.logger.Debug("Route edge stored", "layer", layer, "from", fromID, "to", toID, "kind", req.Kind)
	return edge, nil
}

// Delete removes an edge and reports whether it existed; deleting an absent
// edge is a successful no-op.
func (s *Service) Delete(ctx context.Context, req EdgeRequest) (bool, error) {
	layer, fromID, toID, err := validate(req)
	if err != nil {
		return false, err
	}

	existed, err := s.store.Delete(ctx, layer, fromID, toID, req.Kind)
	if err != nil {
		return false, apperrors.WrapInternal("failed to delete route edge", err)
	}
	return existed, nil
}

// List returns a layer's edges, optionally filtered by kind.
func (s *Service) List(ctx context.Context, layer int, kind Kind) ([]Edge, error) {
	if kind != "" && !kind.Valid() {
		return nil, apperrors.WrapValidation("invalid edge kind", ErrInvalidKind)
	}

	edges, err := s.store.List(ctx, layer, kind)
	if err != nil {
		return nil, apperrors.WrapInternal("failed to list route edges", err)
	}
	if edges == nil {
		edges = []Edge{}
	}
	return edges, nil
}
