package marker

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lib/pq"

	"campaign-server/internal/shared/database"
)

const uniqueViolation = "23505"

// Repository is the Postgres marker store.
type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing marker repository")
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func isNameConflict(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func (r *Repository) Create(ctx context.Context, m Marker) error {
	query := `
		INSERT INTO markers (id, name, description, latitude, longitude, map_id, icon_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.Name, m.Description, m.Latitude, m.Longitude, m.MapID, m.IconType, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		if isNameConflict(err) {
			return fmt.Errorf("%w: %q", ErrNameTaken, m.Name)
		}
		r.logger.Error("Failed to create marker", "name", m.Name, "error", err)
		return fmt.Errorf("failed to create marker: %w", err)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, id string) (*Marker, error) {
	query := `
		SELECT id, name, description, latitude, longitude, map_id, icon_type, created_at, updated_at
		FROM markers
		WHERE id = $1
	`

	var m Marker
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.Name, &m.Description, &m.Latitude, &m.Longitude, &m.MapID, &m.IconType, &m.CreatedAt, &m.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get marker", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get marker %s: %w", id, err)
	}
	return &m, nil
}

// List returns markers, optionally filtered by map id ("" for all).
func (r *Repository) List(ctx context.Context, mapID string) ([]Marker, error) {
	logger := r.logger.With("component", "marker_repository", "operation", "list")

	query := `
		SELECT id, name, description, latitude, longitude, map_id, icon_type, created_at, updated_at
		FROM markers
		WHERE $1 = '' OR map_id = $1
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query, mapID)
	if err != nil {
		logger.Error("Failed to query markers", "error", err)
		return nil, fmt.Errorf("failed to query markers: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	var markers []Marker
	for rows.Next() {
		var m Marker
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Description, &m.Latitude, &m.Longitude, &m.MapID, &m.IconType, &m.CreatedAt, &m.UpdatedAt); err != nil {
			logger.Error("Failed to scan marker", "error", err)
			return nil, fmt.Errorf("failed to scan marker: %w", err)
		}
		markers = append(markers, m)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating markers: %w", err)
	}
	return markers, nil
}

func (r *Repository) Update(ctx context.Context, m Marker) error {
	query := `
		UPDATE markers
		SET name = $2, description = $3, latitude = $4, longitude = $5, map_id = $6, icon_type = $7, updated_at = $8
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.Name, m.Description, m.Latitude, m.Longitude, m.MapID, m.IconType, m.UpdatedAt)
	if err != nil {
		if isNameConflict(err) {
			return fmt.Errorf("%w: %q", ErrNameTaken, m.Name)
		}
		r.logger.Error("Failed to update marker", "id", m.ID, "error", err)
		return fmt.Errorf("failed to update marker %s: %w", m.ID, err)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM markers WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete marker", "id", id, "error", err)
		return false, fmt.Errorf("failed to delete marker %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result for %s: %w", id, err)
	}
	return affected > 0, nil
}
