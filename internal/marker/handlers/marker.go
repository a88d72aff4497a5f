package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"campaign-server/internal/marker"
	"campaign-server/internal/shared/response"

	apperrors "campaign-server/internal/shared/errors"
)

type MarkerHandler struct {
	service *marker.Service
}

func NewMarkerHandler(service *marker.Service) *MarkerHandler {
	return &MarkerHandler{service: service}
}

// List serves GET /api/map-markers?map_id.
func (h *MarkerHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "marker_list")

	views, err := h.service.List(r.Context(), r.URL.Query().Get("map_id"))
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	if views == nil {
		views = []marker.View{}
	}
	response.Success(w, http.StatusOK, views)
}

func (h *MarkerHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "marker_create")

	var req marker.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, apperrors.WrapValidation("invalid request body", err))
		return
	}

	view, err := h.service.Create(r.Context(), req)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	response.Success(w, http.StatusCreated, view)
}

func (h *MarkerHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "marker_get")

	view, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	response.Success(w, http.StatusOK, view)
}

func (h *MarkerHandler) Update(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "marker_update")

	var req marker.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, apperrors.WrapValidation("invalid request body", err))
		return
	}

	view, err := h.service.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	response.Success(w, http.StatusOK, view)
}

func (h *MarkerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "marker_delete")

	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		response.Error(w, r, logger, err)
		return
	}
	response.Success(w, http.StatusNoContent, nil)
}
