package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"campaign-server/internal/shared/response"
	"campaign-server/internal/terrain"

	apperrors "campaign-server/internal/shared/errors"
)

// TerrainHandler serves read-only registry lookups.
type TerrainHandler struct {
	registry *terrain.Registry
}

func NewTerrainHandler(registry *terrain.Registry) *TerrainHandler {
	return &TerrainHandler{registry: registry}
}

func (h *TerrainHandler) List(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, h.registry.All())
}

func (h *TerrainHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "terrain_get")

	id := r.PathValue("id")
	if id == "" {
		response.Error(w, r, logger, apperrors.Validation("terrain id is required"))
		return
	}

	t, err := h.registry.Lookup(id)
	if err != nil {
		if errors.Is(err, terrain.ErrUnknownTerrain) {
			response.Error(w, r, logger, apperrors.NotFoundf("terrain type %q not found", id))
			return
		}
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, t)
}
