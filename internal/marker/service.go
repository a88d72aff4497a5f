package marker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"campaign-server/internal/hexgrid"

	apperrors "campaign-server/internal/shared/errors"
)

// Repo is the marker persistence contract, implemented by Repository.
type Repo interface {
	Create(ctx context.Context, m Marker) error
	Get(ctx context.Context, id string) (*Marker, error)
	List(ctx context.Context, mapID string) ([]Marker, error)
	Update(ctx context.Context, m Marker) error
	Delete(ctx context.Context, id string) (bool, error)
}

// groundLayer is the layer markers are resolved against for hex placement.
const groundLayer = 0

type Service struct {
	repo   Repo
	grid   *hexgrid.Grid
	logger *slog.Logger
}

func NewService(repo Repo, grid *hexgrid.Grid, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		grid:   grid,
		logger: logger,
	}
}

func (s *Service) view(m Marker) View {
	hex := s.grid.GeoToHex(m.Latitude, m.Longitude)
	// GenerateID cannot fail here: GeoToHex only produces valid coordinates.
	id, _ := hexgrid.GenerateID(groundLayer, hex)
	return View{Marker: m, HexID: id}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (View, error) {
	if req.Name == "" {
		return View{}, apperrors.Validation("marker name is required")
	}

	now := time.Now().UTC()
	m := Marker{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		MapID:       req.MapID,
		IconType:    req.IconType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		if errors.Is(err, ErrNameTaken) {
			return View{}, apperrors.Conflictf("a marker named %q already exists", req.Name)
		}
		return View{}, apperrors.WrapInternal("failed to create marker", err)
	}

	s.logger.Debug("Marker created", "id", m.ID, "name", m.Name)
	return s.view(m), nil
}

func (s *Service) Get(ctx context.Context, id string) (View, error) {
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return View{}, apperrors.WrapInternal("failed to read marker", err)
	}
	if m == nil {
		return View{}, apperrors.NotFoundf("marker %s not found", id)
	}
	return s.view(*m), nil
}

func (s *Service) List(ctx context.Context, mapID string) ([]View, error) {
	markers, err := s.repo.List(ctx, mapID)
	if err != nil {
		return nil, apperrors.WrapInternal("failed to list markers", err)
	}

	views := make([]View, 0, len(markers))
	for _, m := range markers {
		views = append(views, s.view(m))
	}
	return views, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (View, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return View{}, apperrors.WrapInternal("failed to read marker", err)
	}
	if existing == nil {
		return View{}, apperrors.NotFoundf("marker %s not found", id)
	}

	m := *existing
	if req.Name != nil {
		if *req.Name == "" {
			return View{}, apperrors.Validation("marker name must not be empty")
		}
		m.Name = *req.Name
	}
	if req.Description != nil {
		m.Description = *req.Description
	}
	if req.Latitude != nil {
		m.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		m.Longitude = *req.Longitude
	}
	if req.MapID != nil {
		m.MapID = *req.MapID
	}
	if req.IconType != nil {
		m.IconType = *req.IconType
	}
	m.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, m); err != nil {
		if errors.Is(err, ErrNameTaken) {
			return View{}, apperrors.Conflictf("a marker named %q already exists", m.Name)
		}
		return View{}, apperrors.WrapInternal("failed to update marker", err)
	}
	return s.view(m), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	existed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperrors.WrapInternal("failed to delete marker", err)
	}
	if !existed {
		return apperrors.NotFoundf("marker %s not found", id)
	}
	return nil
}
