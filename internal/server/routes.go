package server

import (
	"log/slog"
	"net/http"

	"campaign-server/internal/auth"
	authHandlers "campaign-server/internal/auth/handlers"
	"campaign-server/internal/hexcell"
	hexcellHandlers "campaign-server/internal/hexcell/handlers"
	"campaign-server/internal/marker"
	markerHandlers "campaign-server/internal/marker/handlers"
	"campaign-server/internal/middleware"
	"campaign-server/internal/route"
	routeHandlers "campaign-server/internal/route/handlers"
	serverHandlers "campaign-server/internal/server/handlers"
	"campaign-server/internal/shared/database"
	"campaign-server/internal/shared/redis"
	"campaign-server/internal/terrain"
	terrainHandlers "campaign-server/internal/terrain/handlers"
	"campaign-server/internal/viewport"
	viewportHandlers "campaign-server/internal/viewport/handlers"
)

type Routes struct {
	db              *database.DB
	cache           *redis.Client
	authService     *auth.Service
	hexCellService  *hexcell.Service
	viewportService *viewport.Service
	routeService    *route.Service
	markerService   *marker.Service
	registry        *terrain.Registry
	logger          *slog.Logger
}

func NewRoutes(
	db *database.DB,
	cache *redis.Client,
	authService *auth.Service,
	hexCellService *hexcell.Service,
	viewportService *viewport.Service,
	routeService *route.Service,
	markerService *marker.Service,
	registry *terrain.Registry,
	logger *slog.Logger,
) *Routes {
	return &Routes{
		db:              db,
		cache:           cache,
		authService:     authService,
		hexCellService:  hexCellService,
		viewportService: viewportService,
		routeService:    routeService,
		markerService:   markerService,
		registry:        registry,
		logger:          logger,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := slog.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	healthHandler := serverHandlers.NewHealthHandler(r.db, r.cache)
	authHandler := authHandlers.NewAuthHandler(r.authService, r.logger)
	hexCellHandler := hexcellHandlers.NewHexCellHandler(r.hexCellService)
	frameHandler := viewportHandlers.NewFrameHandler(r.viewportService)
	routeHandler := routeHandlers.NewRouteHandler(r.routeService)
	markerHandler := markerHandlers.NewMarkerHandler(r.markerService)
	terrainHandler := terrainHandlers.NewTerrainHandler(r.registry)

	requireUser := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireUser(h)
	}

	// Public endpoints
	mux.Handle("GET /api/server/health", healthHandler)
	mux.HandleFunc("GET /api/terrain-types", terrainHandler.List)
	mux.HandleFunc("GET /api/terrain-types/{id}", terrainHandler.Get)
	mux.HandleFunc("GET /api/map/frame", frameHandler.Get)
	mux.HandleFunc("GET /api/hex-cells", hexCellHandler.GetRange)
	mux.HandleFunc("GET /api/hex-cells/{layer}/{q}/{r}/{s}", hexCellHandler.Get)
	mux.HandleFunc("GET /api/route-edges", routeHandler.List)
	mux.HandleFunc("GET /api/map-markers", markerHandler.List)
	mux.HandleFunc("GET /api/map-markers/{id}", markerHandler.Get)

	// Protected endpoints (authenticated users)
	mux.Handle("PUT /api/hex-cells/{layer}/{q}/{r}/{s}", requireUser(hexCellHandler.Put))
	mux.Handle("PATCH /api/hex-cells/{layer}/{q}/{r}/{s}", requireUser(hexCellHandler.Patch))
	mux.Handle("DELETE /api/hex-cells/{layer}/{q}/{r}/{s}", requireUser(hexCellHandler.Delete))
	mux.Handle("POST /api/route-edges", requireUser(routeHandler.Create))
	mux.Handle("DELETE /api/route-edges", requireUser(routeHandler.Delete))
	mux.Handle("POST /api/map-markers", requireUser(markerHandler.Create))
	mux.Handle("PUT /api/map-markers/{id}", requireUser(markerHandler.Update))
	mux.Handle("DELETE /api/map-markers/{id}", requireUser(markerHandler.Delete))
	mux.Handle("GET /api/me", requireUser(authHandler.Me))

	// Auth endpoints
	mux.HandleFunc("GET /auth/login", authHandler.Login)
	mux.HandleFunc("GET /auth/callback", authHandler.Callback)
	mux.HandleFunc("POST /auth/logout", authHandler.Logout)

	logger.Info("Routes configured successfully",
		"public_endpoints", []string{"/api/server/health", "/api/terrain-types", "/api/map/frame", "/api/hex-cells", "/api/route-edges", "/api/map-markers"},
		"protected_endpoints", []string{"/api/hex-cells", "/api/route-edges", "/api/map-markers", "/api/me"},
		"auth_endpoints", []string{"/auth/login", "/auth/callback", "/auth/logout"},
	)

	return mux
}
