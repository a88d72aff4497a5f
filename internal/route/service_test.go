package route

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign-server/internal/hexgrid"
)

func testService() *Service {
	return NewService(NewMemStore(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func mustID(t *testing.T, layer int, h hexgrid.Hex) string {
	t.Helper()
	id, err := hexgrid.GenerateID(layer, h)
	require.NoError(t, err)
	return id
}

func TestCreateAdjacentEdge(t *testing.T) {
	svc := testService()
	ctx := context.Background()

	from := mustID(t, 0, hexgrid.Hex{Q: 0, R: 0, S: 0})
	to := mustID(t, 0, hexgrid.Hex{Q: 1, R: 0, S: -1})

	edge, err := svc.Create(ctx, EdgeRequest{FromHexID: from, ToHexID: to, Kind: KindRoad})
	require.NoError(t, err)
	assert.Equal(t, 0, edge.Layer)
	assert.Equal(t, KindRoad, edge.Kind)

	edges, err := svc.List(ctx, 0, KindRoad)
	require.NoError(t, err)
	assert.Len(t, edges, 1)
}

func TestCreateCanonicalizesEndpointOrder(t *testing.T) {
	svc := testService()
	ctx := context.Background()

	a := mustID(t, 0, hexgrid.Hex{Q: 0, R: 0, S: 0})
	b := mustID(t, 0, hexgrid.Hex{Q: 0, R: 1, S: -1})

	_, err := svc.Create(ctx, EdgeRequest{FromHexID: a, ToHexID: b, Kind: KindRiver})
	require.NoError(t, err)
	// Same undirected edge, reversed: must collapse onto one row.
	_, err = svc.Create(ctx, EdgeRequest{FromHexID: b, ToHexID: a, Kind: KindRiver})
	require.NoError(t, err)

	edges, err := svc.List(ctx, 0, KindRiver)
	require.NoError(t, err)
	assert.Len(t, edges, 1)
}

func TestCreateRejectsInvalidEdges(t *testing.T) {
	svc := testService()
	ctx := context.Background()

	origin := mustID(t, 0, hexgrid.Hex{Q: 0, R: 0, S: 0})

	cases := []struct {
		name string
		req  EdgeRequest
		want error
	}{
		{
			"NotAdjacent",
			EdgeRequest{FromHexID: origin, ToHexID: mustID(t, 0, hexgrid.Hex{Q: 2, R: 0, S: -2}), Kind: KindRoad},
			ErrNotAdjacent,
		},
		{
			"SelfEdge",
			EdgeRequest{FromHexID: origin, ToHexID: origin, Kind: KindRoad},
			ErrNotAdjacent,
		},
		{
			"CrossLayer",
			EdgeRequest{FromHexID: origin, ToHexID: mustID(t, 1, hexgrid.Hex{Q: 1, R: 0, S: -1}), Kind: KindRoad},
			ErrCrossLayer,
		},
		{
			"MalformedEndpoint",
			EdgeRequest{FromHexID: "not-an-id", ToHexID: origin, Kind: KindRoad},
			hexgrid.ErrMalformedID,
		},
		{
			"UnknownKind",
			EdgeRequest{FromHexID: origin, ToHexID: mustID(t, 0, hexgrid.Hex{Q: 1, R: 0, S: -1}), Kind: "canal"},
			ErrInvalidKind,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCreateRejectsNonCanonicalIDSpelling(t *testing.T) {
	svc := testService()
	ctx := context.Background()

	origin := mustID(t, 0, hexgrid.Hex{Q: 0, R: 0, S: 0})
	east := mustID(t, 0, hexgrid.Hex{Q: 1, R: 0, S: -1})

	_, err := svc.Create(ctx, EdgeRequest{FromHexID: origin, ToHexID: east, Kind: KindRoad})
	require.NoError(t, err)

	// Alternative spellings of the same endpoint must not slip past the
	// parser and persist a second copy of the edge.
	for _, alias := range []string{"hex:l0:q+1:r0:s-1", "hex:l0:q01:r0:s-1"} {
		_, err = svc.Create(ctx, EdgeRequest{FromHexID: origin, ToHexID: alias, Kind: KindRoad})
		assert.ErrorIs(t, err, hexgrid.ErrMalformedID, "alias %q", alias)
	}

	edges, err := svc.List(ctx, 0, KindRoad)
	require.NoError(t, err)
	assert.Len(t, edges, 1)
}

func TestDeleteIdempotent(t *testing.T) {
	svc := testService()
	ctx := context.Background()

	req := EdgeRequest{
		FromHexID: mustID(t, 0, hexgrid.Hex{Q: 0, R: 0, S: 0}),
		ToHexID:   mustID(t, 0, hexgrid.Hex{Q: 1, R: -1, S: 0}),
		Kind:      KindRoad,
	}

	existed, err := svc.Delete(ctx, req)
	require.NoError(t, err)
	assert.False(t, existed)

	_, err = svc.Create(ctx, req)
	require.NoError(t, err)

	existed, err = svc.Delete(ctx, req)
	require.NoError(t, err)
	assert.True(t, existed)
}

func TestListFiltersByKind(t *testing.T) {
	svc := testService()
	ctx := context.Background()

	origin := mustID(t, 0, hexgrid.Hex{Q: 0, R: 0, S: 0})
	east := mustID(t, 0, hexgrid.Hex{Q: 1, R: 0, S: -1})
	southEast := mustID(t, 0, hexgrid.Hex{Q: 0, R: 1, S: -1})

	_, err := svc.Create(ctx, EdgeRequest{FromHexID: origin, ToHexID: east, Kind: KindRoad})
	require.NoError(t, err)
	_, err = svc.Create(ctx, EdgeRequest{FromHexID: origin, ToHexID: southEast, Kind: KindRiver})
	require.NoError(t, err)

	roads, err := svc.List(ctx, 0, KindRoad)
	require.NoError(t, err)
	assert.Len(t, roads, 1)

	all, err := svc.List(ctx, 0, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.List(ctx, 0, "canal")
	assert.ErrorIs(t, err, ErrInvalidKind)
}
