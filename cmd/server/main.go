package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campaign-server/internal/auth"
	"campaign-server/internal/hexcell"
	"campaign-server/internal/hexgrid"
	"campaign-server/internal/marker"
	"campaign-server/internal/middleware"
	"campaign-server/internal/route"
	"campaign-server/internal/server"
	"campaign-server/internal/shared/config"
	"campaign-server/internal/shared/database"
	"campaign-server/internal/shared/logger"
	"campaign-server/internal/shared/redis"
	"campaign-server/internal/terrain"
	"campaign-server/internal/viewport"
)

func main() {
	if err := config.Init(); err != nil {
		slog.Error("Failed to initialize configuration", "error", err)
		os.Exit(1)
	}
	cfg := config.GlobalConfig

	logger.Init()
	log := slog.With("component", "main")

	db, err := database.Connect()
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}()

	if err := db.RunMigrations(); err != nil {
		log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	cache, err := redis.Connect()
	if err != nil {
		log.Error("Failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := cache.Close(); err != nil {
			log.Error("Failed to close redis", "error", err)
		}
	}()

	registry, err := terrain.LoadFile(cfg.Terrain.CatalogPath)
	if err != nil {
		log.Error("Failed to load terrain catalog", "error", err, "path", cfg.Terrain.CatalogPath)
		os.Exit(1)
	}

	grid := hexgrid.NewGrid(cfg.Grid.OriginLat, cfg.Grid.OriginLng)
	geometryCfg := hexgrid.GeometryConfig{
		BufferHexes:    cfg.Grid.BufferHexes,
		OutlineMinZoom: cfg.Grid.OutlineMinZoom,
		LabelMinZoom:   cfg.Grid.LabelMinZoom,
	}

	authProvider, err := auth.NewProvider()
	if err != nil {
		log.Error("Failed to initialize auth provider", "error", err)
		os.Exit(1)
	}

	var cellStore hexcell.Store = hexcell.NewRepository(db, slog.With("component", "hexcell_repository"))
	if cache != nil {
		cellStore = hexcell.NewCachedStore(cellStore, cache, cfg.Cache.HexCellTTL, slog.With("component", "hexcell_cache"))
	}

	authService := auth.NewService(auth.NewRepository(db), authProvider, slog.With("component", "auth_service"))
	hexCellService := hexcell.NewService(cellStore, registry, slog.With("component", "hexcell_service"))
	viewportService := viewport.NewService(grid, geometryCfg, hexCellService, slog.With("component", "viewport_service"))
	routeService := route.NewService(route.NewRepository(db, slog.With("component", "route_repository")), slog.With("component", "route_service"))
	markerService := marker.NewService(marker.NewRepository(db, slog.With("component", "marker_repository")), grid, slog.With("component", "marker_service"))

	routes := server.NewRoutes(db, cache, authService, hexCellService, viewportService, routeService, markerService, registry, slog.Default())
	mux := routes.Setup()

	rateLimiter := middleware.NewRateLimiter()
	corsMiddleware := middleware.NewCORS()

	handler := corsMiddleware.Middleware(rateLimiter.Middleware(mux))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("Server starting",
			"port", cfg.Server.Port,
			"environment", cfg.Server.Environment,
			"auth_provider", authProvider.Name())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server stopped")
}
