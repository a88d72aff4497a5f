package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"campaign-server/internal/hexcell"
	"campaign-server/internal/hexgrid"
	"campaign-server/internal/shared/response"

	apperrors "campaign-server/internal/shared/errors"
)

// HexCellHandler serves the /api/hex-cells surface. Coordinate parsing and
// the parity check happen here, before anything touches storage.
type HexCellHandler struct {
	service *hexcell.Service
}

func NewHexCellHandler(service *hexcell.Service) *HexCellHandler {
	return &HexCellHandler{service: service}
}

// pathCoordinate parses {layer}/{q}/{r}/{s} and rejects parity violations.
func pathCoordinate(r *http.Request) (int, hexgrid.Hex, error) {
	layer, err := strconv.Atoi(r.PathValue("layer"))
	if err != nil {
		return 0, hexgrid.Hex{}, apperrors.WrapValidation("invalid layer", err)
	}

	var hex hexgrid.Hex
	for _, part := range []struct {
		name string
		dst  *int
	}{
		{"q", &hex.Q},
		{"r", &hex.R},
		{"s", &hex.S},
	} {
		v, err := strconv.Atoi(r.PathValue(part.name))
		if err != nil {
			return 0, hexgrid.Hex{}, apperrors.Validationf("invalid %s coordinate", part.name)
		}
		*part.dst = v
	}

	if !hex.Valid() {
		return 0, hexgrid.Hex{}, apperrors.WrapValidation("invalid hex coordinate", hexgrid.ErrInvalidCoordinate)
	}
	return layer, hex, nil
}

func (h *HexCellHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "hexcell_get")

	layer, hex, err := pathCoordinate(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	view, err := h.service.GetOrImplicit(r.Context(), layer, hex)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	response.Success(w, http.StatusOK, view)
}

func (h *HexCellHandler) Put(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "hexcell_put")

	layer, hex, err := pathCoordinate(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	var req hexcell.WriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, apperrors.WrapValidation("invalid request body", err))
		return
	}

	view, err := h.service.Put(r.Context(), layer, hex, req)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	response.Success(w, http.StatusOK, view)
}

func (h *HexCellHandler) Patch(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "hexcell_patch")

	layer, hex, err := pathCoordinate(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	var patch hexcell.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.Error(w, r, logger, apperrors.WrapValidation("invalid request body", err))
		return
	}

	view, err := h.service.ApplyPatch(r.Context(), layer, hex, patch)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	response.Success(w, http.StatusOK, view)
}

type deleteResponse struct {
	Existed bool `json:"existed"`
}

func (h *HexCellHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "hexcell_delete")

	layer, hex, err := pathCoordinate(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	existed, err := h.service.Delete(r.Context(), layer, hex)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	response.Success(w, http.StatusOK, deleteResponse{Existed: existed})
}

// GetRange serves GET /api/hex-cells?layer&minQ&maxQ&minR&maxR.
func (h *HexCellHandler) GetRange(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "hexcell_range")

	query := r.URL.Query()
	layer, err := strconv.Atoi(query.Get("layer"))
	if err != nil {
		response.Error(w, r, logger, apperrors.Validation("layer query parameter is required"))
		return
	}

	var rng hexgrid.Range
	for _, part := range []struct {
		name string
		dst  *int
	}{
		{"minQ", &rng.MinQ},
		{"maxQ", &rng.MaxQ},
		{"minR", &rng.MinR},
		{"maxR", &rng.MaxR},
	} {
		v, err := strconv.Atoi(query.Get(part.name))
		if err != nil {
			response.Error(w, r, logger, apperrors.Validationf("%s query parameter is required", part.name))
			return
		}
		*part.dst = v
	}

	cells, err := h.service.GetRange(r.Context(), layer, rng)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	if cells == nil {
		cells = map[string]hexcell.Record{}
	}
	response.Success(w, http.StatusOK, cells)
}
