package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"campaign-server/internal/route"
	"campaign-server/internal/shared/response"

	apperrors "campaign-server/internal/shared/errors"
)

type RouteHandler struct {
	service *route.Service
}

func NewRouteHandler(service *route.Service) *RouteHandler {
	return &RouteHandler{service: service}
}

// List serves GET /api/route-edges?layer&kind.
func (h *RouteHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "route_list")

	layer, err := strconv.Atoi(r.URL.Query().Get("layer"))
	if err != nil {
		response.Error(w, r, logger, apperrors.Validation("layer query parameter is required"))
		return
	}
	kind := route.Kind(r.URL.Query().Get("kind"))

	edges, err := h.service.List(r.Context(), layer, kind)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	response.Success(w, http.StatusOK, edges)
}

// Create serves POST /api/route-edges.
func (h *RouteHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "route_create")

	var req route.EdgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, apperrors.WrapValidation("invalid request body", err))
		return
	}

	edge, err := h.service.Create(r.Context(), req)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	response.Success(w, http.StatusCreated, edge)
}

type deleteResponse struct {
	Existed bool `json:"existed"`
}

// Delete serves DELETE /api/route-edges with the edge named in the body.
func (h *RouteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "route_delete")

	var req route.EdgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, apperrors.WrapValidation("invalid request body", err))
		return
	}

	existed, err := h.service.Delete(r.Context(), req)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	response.Success(w, http.StatusOK, deleteResponse{Existed: existed})
}
