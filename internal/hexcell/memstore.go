package hexcell

import (
	"context"
	"sync"
	"time"

	"campaign-server/internal/hexgrid"
)

// MemStore is an in-memory Store used by tests and redis-less development.
// It keeps the same sparse semantics as the SQL store: absent keys resolve
// to nil records.
type MemStore struct {
	mu    sync.RWMutex
	cells map[string]Record
}

func NewMemStore() *MemStore {
	return &MemStore{cells: make(map[string]Record)}
}

func (m *MemStore) key(layer int, h hexgrid.Hex) (string, error) {
	return hexgrid.GenerateID(layer, h)
}

func (m *MemStore) Get(_ context.Context, layer int, h hexgrid.Hex) (*Record, error) {
	key, err := m.key(layer, h)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.cells[key]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *MemStore) Put(_ context.Context, layer int, h hexgrid.Hex, rec Record) error {
	key, err := m.key(layer, h)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.cells[key] = rec
	return nil
}

func (m *MemStore) ApplyPatch(_ context.Context, layer int, h hexgrid.Hex, p Patch) (*Record, error) {
	key, err := m.key(layer, h)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.cells[key]
	if !ok {
		return nil, ErrNotPersisted
	}
	if p.TerrainType != nil {
		rec.TerrainType = *p.TerrainType
	}
	if p.HasFord != nil {
		rec.HasFord = *p.HasFord
	}
	rec.UpdatedAt = time.Now().UTC()
	m.cells[key] = rec
	return &rec, nil
}

func (m *MemStore) Delete(_ context.Context, layer int, h hexgrid.Hex) (bool, error) {
	key, err := m.key(layer, h)
	if err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	_, existed := m.cells[key]
	delete(m.cells, key)
	return existed, nil
}

func (m *MemStore) GetRange(_ context.Context, layer int, rng hexgrid.Range) (map[string]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]Record)
	for key, rec := range m.cells {
		cellLayer, hex, err := hexgrid.ParseID(key)
		if err != nil {
			continue
		}
		if cellLayer == layer && rng.Contains(hex) {
			out[key] = rec
		}
	}
	return out, nil
}
