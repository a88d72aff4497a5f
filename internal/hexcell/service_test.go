package hexcell

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign-server/internal/hexgrid"
	"campaign-server/internal/terrain"

	apperrors "campaign-server/internal/shared/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T) *Service {
	t.Helper()

	unbounded := []terrain.StealthBand{{MaxDistance: nil, Modifier: 0}}
	registry, err := terrain.Load([]terrain.Type{
		{ID: "forest", DisplayName: "Forest", StealthTable: unbounded},
		{ID: "swamp", DisplayName: "Swamp", StealthTable: unbounded},
	})
	require.NoError(t, err)

	return NewService(NewMemStore(), registry, testLogger())
}

func strptr(s string) *string { return &s }
func boolptr(b bool) *bool    { return &b }

func TestGetOrImplicitNeverMaterializes(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	h := hexgrid.Hex{Q: 4, R: -1, S: -3}

	view, err := svc.GetOrImplicit(ctx, 0, h)
	require.NoError(t, err)
	assert.False(t, view.IsPersisted)
	assert.Equal(t, terrain.UndefinedID, view.TerrainType)
	assert.False(t, view.HasFord)
	assert.Nil(t, view.UpdatedAt)

	// The implicit read must not have written anything: a covering range
	// query stays empty.
	cells, err := svc.GetRange(ctx, 0, hexgrid.Range{MinQ: 0, MaxQ: 10, MinR: -5, MaxR: 5})
	require.NoError(t, err)
	assert.Empty(t, cells)
}

func TestPutThenGet(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	h := hexgrid.Hex{Q: 3, R: -2, S: -1}

	written, err := svc.Put(ctx, 0, h, WriteRequest{TerrainType: "forest", HasFord: true})
	require.NoError(t, err)
	assert.Equal(t, "hex:l0:q3:r-2:s-1", written.HexID)
	assert.True(t, written.IsPersisted)

	view, err := svc.GetOrImplicit(ctx, 0, h)
	require.NoError(t, err)
	assert.True(t, view.IsPersisted)
	assert.Equal(t, "forest", view.TerrainType)
	assert.True(t, view.HasFord)
	require.NotNil(t, view.UpdatedAt)
	assert.WithinDuration(t, time.Now().UTC(), *view.UpdatedAt, time.Minute)
}

func TestPutUnknownTerrainLeavesStateUnchanged(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	h := hexgrid.Hex{Q: 1, R: 0, S: -1}

	_, err := svc.Put(ctx, 0, h, WriteRequest{TerrainType: "lava"})
	require.Error(t, err)
	assert.ErrorIs(t, err, terrain.ErrUnknownTerrain)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.GetType(err))

	view, err := svc.GetOrImplicit(ctx, 0, h)
	require.NoError(t, err)
	assert.False(t, view.IsPersisted)
}

func TestPatchNeverCreates(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	h := hexgrid.Hex{Q: -2, R: 2, S: 0}

	_, err := svc.ApplyPatch(ctx, 0, h, Patch{HasFord: boolptr(true)})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.GetType(err))

	view, err := svc.GetOrImplicit(ctx, 0, h)
	require.NoError(t, err)
	assert.False(t, view.IsPersisted)
}

func TestPatchUpdatesOnlyGivenFields(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	h := hexgrid.Hex{Q: 0, R: 1, S: -1}

	_, err := svc.Put(ctx, 0, h, WriteRequest{TerrainType: "forest", HasFord: true})
	require.NoError(t, err)

	view, err := svc.ApplyPatch(ctx, 0, h, Patch{TerrainType: strptr("swamp")})
	require.NoError(t, err)
	assert.Equal(t, "swamp", view.TerrainType)
	assert.True(t, view.HasFord, "unpatched field must survive")
}

func TestPatchValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	h := hexgrid.Hex{Q: 0, R: 1, S: -1}

	_, err := svc.Put(ctx, 0, h, WriteRequest{TerrainType: "forest"})
	require.NoError(t, err)

	_, err = svc.ApplyPatch(ctx, 0, h, Patch{})
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.GetType(err))

	_, err = svc.ApplyPatch(ctx, 0, h, Patch{TerrainType: strptr("lava")})
	assert.ErrorIs(t, err, terrain.ErrUnknownTerrain)
}

func TestDeleteIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	h := hexgrid.Hex{Q: 5, R: 5, S: -10}

	// Deleting a never-persisted coordinate succeeds and reports absence.
	existed, err := svc.Delete(ctx, 0, h)
	require.NoError(t, err)
	assert.False(t, existed)

	_, err = svc.Put(ctx, 0, h, WriteRequest{TerrainType: "forest"})
	require.NoError(t, err)

	existed, err = svc.Delete(ctx, 0, h)
	require.NoError(t, err)
	assert.True(t, existed)

	// The coordinate reverts to the implicit view.
	view, err := svc.GetOrImplicit(ctx, 0, h)
	require.NoError(t, err)
	assert.False(t, view.IsPersisted)
	assert.Equal(t, terrain.UndefinedID, view.TerrainType)
}

func TestLayersAreIndependentNamespaces(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	h := hexgrid.Hex{Q: 2, R: 0, S: -2}

	_, err := svc.Put(ctx, 0, h, WriteRequest{TerrainType: "forest"})
	require.NoError(t, err)

	view, err := svc.GetOrImplicit(ctx, 1, h)
	require.NoError(t, err)
	assert.False(t, view.IsPersisted, "layer 1 must not see layer 0 writes")
}

func TestGetRangeReturnsOnlyPersisted(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	inside := hexgrid.Hex{Q: 1, R: 1, S: -2}
	outside := hexgrid.Hex{Q: 40, R: 0, S: -40}
	for _, h := range []hexgrid.Hex{inside, outside} {
		_, err := svc.Put(ctx, 0, h, WriteRequest{TerrainType: "forest"})
		require.NoError(t, err)
	}

	cells, err := svc.GetRange(ctx, 0, hexgrid.Range{MinQ: -5, MaxQ: 5, MinR: -5, MaxR: 5})
	require.NoError(t, err)
	require.Len(t, cells, 1)

	id, err := hexgrid.GenerateID(0, inside)
	require.NoError(t, err)
	assert.Contains(t, cells, id)
}

func TestGetRangeRejectsInvertedBounds(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetRange(context.Background(), 0, hexgrid.Range{MinQ: 5, MaxQ: -5})
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.GetType(err))
}

func TestParityRejectedBeforeStorage(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	bad := hexgrid.Hex{Q: 1, R: 1, S: 1}

	_, err := svc.GetOrImplicit(ctx, 0, bad)
	assert.ErrorIs(t, err, hexgrid.ErrInvalidCoordinate)

	_, err = svc.Put(ctx, 0, bad, WriteRequest{TerrainType: "forest"})
	assert.ErrorIs(t, err, hexgrid.ErrInvalidCoordinate)

	_, err = svc.Delete(ctx, 0, bad)
	assert.ErrorIs(t, err, hexgrid.ErrInvalidCoordinate)
}
