package hexcell

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"campaign-server/internal/hexgrid"
	"campaign-server/internal/shared/database"
)

// Repository is the Postgres implementation of Store. The table carries
// layer/q/r columns solely as the range-query index; the value columns never
// echo the coordinate back.
type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing hex cell repository")
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) Get(ctx context.Context, layer int, h hexgrid.Hex) (*Record, error) {
	id, err := hexgrid.GenerateID(layer, h)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT terrain_type, has_ford, updated_at
		FROM hex_cells
		WHERE hex_id = $1
	`

	var rec Record
	err = r.db.QueryRowContext(ctx, query, id).Scan(&rec.TerrainType, &rec.HasFord, &rec.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get hex cell", "hex_id", id, "error", err)
		return nil, fmt.Errorf("failed to get hex cell %s: %w", id, err)
	}
	return &rec, nil
}

func (r *Repository) Put(ctx context.Context, layer int, h hexgrid.Hex, rec Record) error {
	id, err := hexgrid.GenerateID(layer, h)
	if err != nil {
		return err
	}

	logger := r.logger.With(
		"component", "hexcell_repository",
		"operation", "put",
		"hex_id", id,
	)
	logger.Debug("Upserting hex cell")

	query := `
		INSERT INTO hex_cells (hex_id, layer, q, r, terrain_type, has_ford, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (hex_id) DO UPDATE
		SET terrain_type = EXCLUDED.terrain_type,
		    has_ford = EXCLUDED.has_ford,
		    updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.ExecContext(ctx, query, id, layer, h.Q, h.R, rec.TerrainType, rec.HasFord, rec.UpdatedAt); err != nil {
		logger.Error("Failed to upsert hex cell", "error", err)
		return fmt.Errorf("failed to upsert hex cell %s: %w", id, err)
	}
	return nil
}

func (r *Repository) ApplyPatch(ctx context.Context, layer int, h hexgrid.Hex, p Patch) (*Record, error) {
	id, err := hexgrid.GenerateID(layer, h)
	if err != nil {
		return nil, err
	}

	logger := r.logger.With(
		"component", "hexcell_repository",
		"operation", "patch",
		"hex_id", id,
	)
	logger.Debug("Patching hex cell")

	query := `
		UPDATE hex_cells
		SET terrain_type = COALESCE($2, terrain_type),
		    has_ford = COALESCE($3, has_ford),
		    updated_at = now()
		WHERE hex_id = $1
		RETURNING terrain_type, has_ford, updated_at
	`

	var rec Record
	err = r.db.QueryRowContext(ctx, query, id, p.TerrainType, p.HasFord).Scan(&rec.TerrainType, &rec.HasFord, &rec.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotPersisted
	}
	if err != nil {
		logger.Error("Failed to patch hex cell", "error", err)
		return nil, fmt.Errorf("failed to patch hex cell %s: %w", id, err)
	}
	return &rec, nil
}

func (r *Repository) Delete(ctx context.Context, layer int, h hexgrid.Hex) (bool, error) {
	id, err := hexgrid.GenerateID(layer, h)
	if err != nil {
		return false, err
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM hex_cells WHERE hex_id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete hex cell", "hex_id", id, "error", err)
		return false, fmt.Errorf("failed to delete hex cell %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result for %s: %w", id, err)
	}
	return affected > 0, nil
}

func (r *Repository) GetRange(ctx context.Context, layer int, rng hexgrid.Range) (map[string]Record, error) {
	logger := r.logger.With(
		"component", "hexcell_repository",
		"operation", "get_range",
		"layer", layer,
	)
	logger.Debug("Querying hex cell range",
		"min_q", rng.MinQ, "max_q", rng.MaxQ, "min_r", rng.MinR, "max_r", rng.MaxR)

	// One round trip per bounding box, never one per hex.
	query := `
		SELECT hex_id, terrain_type, has_ford, updated_at
		FROM hex_cells
		WHERE layer = $1 AND q BETWEEN $2 AND $3 AND r BETWEEN $4 AND $5
	`

	rows, err := r.db.QueryContext(ctx, query, layer, rng.MinQ, rng.MaxQ, rng.MinR, rng.MaxR)
	if err != nil {
		logger.Error("Failed to query hex cell range", "error", err)
		return nil, fmt.Errorf("failed to query hex cell range: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	cells := make(map[string]Record)
	for rows.Next() {
		var id string
		var rec Record
		if err := rows.Scan(&id, &rec.TerrainType, &rec.HasFord, &rec.UpdatedAt); err != nil {
			logger.Error("Failed to scan hex cell row", "error", err)
			return nil, fmt.Errorf("failed to scan hex cell: %w", err)
		}
		cells[id] = rec
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating hex cells: %w", err)
	}

	logger.Debug("Hex cell range retrieved", "count", len(cells))
	return cells, nil
}
