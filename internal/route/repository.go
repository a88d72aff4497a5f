package route

import (
	"context"
	"fmt"
	"log/slog"

	"campaign-server/internal/shared/database"
)

// Repository is the Postgres edge store. Nodes need no table of their own:
// an endpoint is just a hex id, resolved against hex_cells on demand.
type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing route repository")
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) Upsert(ctx context.Context, e Edge) error {
	query := `
		INSERT INTO route_edges (layer, from_hex_id, to_hex_id, kind, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (layer, from_hex_id, to_hex_id, kind) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, e.Layer, e.FromHexID, e.ToHexID, e.Kind, e.CreatedAt); err != nil {
		r.logger.Error("Failed to upsert route edge", "from", e.FromHexID, "to", e.ToHexID, "error", err)
		return fmt.Errorf("failed to upsert route edge: %w", err)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, layer int, fromID, toID string, kind Kind) (bool, error) {
	query := `
		DELETE FROM route_edges
		WHERE layer = $1 AND from_hex_id = $2 AND to_hex_id = $3 AND kind = $4
	`

	result, err := r.db.ExecContext(ctx, query, layer, fromID, toID, kind)
	if err != nil {
		r.logger.Error("Failed to delete route edge", "from", fromID, "to", toID, "error", err)
		return false, fmt.Errorf("failed to delete route edge: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}
	return affected > 0, nil
}

func (r *Repository) List(ctx context.Context, layer int, kind Kind) ([]Edge, error) {
	logger := r.logger.With(
		"component", "route_repository",
		"operation", "list",
		"layer", layer,
	)

	query := `
		SELECT layer, from_hex_id, to_hex_id, kind, created_at
		FROM route_edges
		WHERE layer = $1 AND ($2 = '' OR kind = $2)
		ORDER BY from_hex_id, to_hex_id, kind
	`

	rows, err := r.db.QueryContext(ctx, query, layer, string(kind))
	if err != nil {
		logger.Error("Failed to query route edges", "error", err)
		return nil, fmt.Errorf("failed to query route edges: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	var edges []Edge
	for rows.Next() {
		var e Edge
		if err := rows.Scan(&e.Layer, &e.FromHexID, &e.ToHexID, &e.Kind, &e.CreatedAt); err != nil {
			logger.Error("Failed to scan route edge", "error", err)
			return nil, fmt.Errorf("failed to scan route edge: %w", err)
		}
		edges = append(edges, e)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating route edges: %w", err)
	}

	logger.Debug("Route edges retrieved", "count", len(edges))
	return edges, nil
}
