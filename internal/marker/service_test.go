package marker

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign-server/internal/hexgrid"

	apperrors "campaign-server/internal/shared/errors"
)

const (
	originLat = 47.6062
	originLng = -122.3321
)

// fakeRepo mirrors the unique-name behavior of the Postgres store.
type fakeRepo struct {
	mu      sync.Mutex
	markers map[string]Marker
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{markers: make(map[string]Marker)}
}

func (f *fakeRepo) nameInUse(name, excludeID string) bool {
	for id, m := range f.markers {
		if m.Name == name && id != excludeID {
			return true
		}
	}
	return false
}

func (f *fakeRepo) Create(_ context.Context, m Marker) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.nameInUse(m.Name, m.ID) {
		return fmt.Errorf("%w: %q", ErrNameTaken, m.Name)
	}
	f.markers[m.ID] = m
	return nil
}

func (f *fakeRepo) Get(_ context.Context, id string) (*Marker, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.markers[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (f *fakeRepo) List(_ context.Context, mapID string) ([]Marker, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Marker
	for _, m := range f.markers {
		if mapID == "" || m.MapID == mapID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(_ context.Context, m Marker) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.nameInUse(m.Name, m.ID) {
		return fmt.Errorf("%w: %q", ErrNameTaken, m.Name)
	}
	f.markers[m.ID] = m
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, existed := f.markers[id]
	delete(f.markers, id)
	return existed, nil
}

func newTestService() *Service {
	grid := hexgrid.NewGrid(originLat, originLng)
	return NewService(newFakeRepo(), grid, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreateAssignsContainingHex(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	// A marker at the grid origin lands in the origin hex.
	view, err := svc.Create(ctx, CreateRequest{
		Name:      "Riverwatch Keep",
		Latitude:  originLat,
		Longitude: originLng,
		MapID:     "main",
		IconType:  "castle",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, view.ID)
	assert.Equal(t, "hex:l0:q0:r0:s0", view.HexID)
}

func TestCreateDuplicateNameConflicts(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Name: "Old Mill"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateRequest{Name: "Old Mill"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.GetType(err))
}

func TestUpdateRecomputesHex(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateRequest{Name: "Ferry", Latitude: originLat, Longitude: originLng})
	require.NoError(t, err)

	// Move the marker one hex spacing east; the derived hex must follow.
	grid := hexgrid.NewGrid(originLat, originLng)
	lat, lng := grid.HexToGeo(hexgrid.Hex{Q: 1, R: 0, S: -1})

	updated, err := svc.Update(ctx, created.ID, UpdateRequest{Latitude: &lat, Longitude: &lng})
	require.NoError(t, err)
	assert.Equal(t, "hex:l0:q1:r0:s-1", updated.HexID)
	assert.Equal(t, "Ferry", updated.Name, "untouched fields survive partial update")
}

func TestGetAndDeleteMissingMarker(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Get(ctx, "nope")
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.GetType(err))

	err = svc.Delete(ctx, "nope")
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.GetType(err))
}

func TestListFiltersByMap(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Name: "A", MapID: "main"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateRequest{Name: "B", MapID: "underdark"})
	require.NoError(t, err)

	main, err := svc.List(ctx, "main")
	require.NoError(t, err)
	assert.Len(t, main, 1)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCreateRequiresName(t *testing.T) {
	svc := newTestService()

	_, err := svc.Create(context.Background(), CreateRequest{})
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.GetType(err))
}
