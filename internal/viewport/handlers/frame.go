package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"campaign-server/internal/shared/response"
	"campaign-server/internal/viewport"

	apperrors "campaign-server/internal/shared/errors"
)

// FrameHandler serves GET /api/map/frame: a synchronous recompute for one
// settled viewport. Clients coalesce drag events and call once per settle.
type FrameHandler struct {
	service *viewport.Service
}

func NewFrameHandler(service *viewport.Service) *FrameHandler {
	return &FrameHandler{service: service}
}

func (h *FrameHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "map_frame")

	vp, err := parseViewport(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	frame, err := h.service.ComputeFrame(r.Context(), vp)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	response.Success(w, http.StatusOK, frame)
}

func parseViewport(r *http.Request) (viewport.Viewport, error) {
	query := r.URL.Query()

	layer, err := strconv.Atoi(query.Get("layer"))
	if err != nil {
		return viewport.Viewport{}, apperrors.Validation("layer query parameter is required")
	}

	vp := viewport.Viewport{Layer: layer}
	for _, part := range []struct {
		name string
		dst  *float64
	}{
		{"zoom", &vp.Zoom},
		{"north", &vp.North},
		{"south", &vp.South},
		{"east", &vp.East},
		{"west", &vp.West},
	} {
		v, err := strconv.ParseFloat(query.Get(part.name), 64)
		if err != nil {
			return viewport.Viewport{}, apperrors.Validationf("%s query parameter is required", part.name)
		}
		*part.dst = v
	}
	return vp, nil
}
