package route

import (
	"context"
	"sync"
)

type edgeKey struct {
	layer    int
	from, to string
	kind     Kind
}

// MemStore is the in-memory Store used by tests.
type MemStore struct {
	mu    sync.RWMutex
	edges map[edgeKey]Edge
}

func NewMemStore() *MemStore {
	return &MemStore{edges: make(map[edgeKey]Edge)}
}

func (m *MemStore) Upsert(_ context.Context, e Edge) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := edgeKey{layer: e.Layer, from: e.FromHexID, to: e.ToHexID, kind: e.Kind}
	if _, exists := m.edges[key]; !exists {
		m.edges[key] = e
	}
	return nil
}

func (m *MemStore) Delete(_ context.Context, layer int, fromID, toID string, kind Kind) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := edgeKey{layer: layer, from: fromID, to: toID, kind: kind}
	_, existed := m.edges[key]
	delete(m.edges, key)
	return existed, nil
}

func (m *MemStore) List(_ context.Context, layer int, kind Kind) ([]Edge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Edge
	for key, e := range m.edges {
		if key.layer != layer {
			continue
		}
		if kind != "" && key.kind != kind {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
