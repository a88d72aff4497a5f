package terrain

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

// LoadFile reads a catalog JSON file and builds the registry. An empty path
// yields a registry holding only the built-in default; any validation
// failure surfaces as ErrInvalidCatalog for the caller to treat as fatal.
func LoadFile(path string) (*Registry, error) {
	logger := slog.With("component", "terrain", "operation", "load_catalog")

	if path == "" {
		logger.Warn("No terrain catalog configured, registry holds only the built-in default")
		return Load(nil)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrInvalidCatalog, path, err)
	}

	var entries []Type
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", ErrInvalidCatalog, path, err)
	}

	registry, err := Load(entries)
	if err != nil {
		return nil, err
	}

	logger.Info("Terrain catalog loaded", "path", path, "types", len(registry.All()))
	return registry, nil
}
