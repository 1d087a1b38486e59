package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/graphcore/analytics"
	"github.com/katalvlaran/graphcore/ids"
	"github.com/katalvlaran/graphcore/store"
)

func newTestStore(t *testing.T) (*store.Store, ids.RelationId) {
	t.Helper()
	s := store.NewStore()
	knows := s.AddRelation("KNOWS")
	return s, knows
}

func TestConnectedComponents_TwoIslands(t *testing.T) {
	s, knows := newTestStore(t)
	a, _ := s.CreateNode(nil)
	b, _ := s.CreateNode(nil)
	c, _ := s.CreateNode(nil)
	d, _ := s.CreateNode(nil)

	_, err := s.CreateEdge(a, b, knows)
	require.NoError(t, err)
	_, err = s.CreateEdge(c, d, knows)
	require.NoError(t, err)

	comps, err := analytics.ConnectedComponents(s, knows)
	require.NoError(t, err)
	require.Equal(t, comps[a], comps[b])
	require.Equal(t, comps[c], comps[d])
	require.NotEqual(t, comps[a], comps[c])
}

func TestConnectedComponents_TransitiveChain(t *testing.T) {
	s, knows := newTestStore(t)
	a, _ := s.CreateNode(nil)
	b, _ := s.CreateNode(nil)
	c, _ := s.CreateNode(nil)

	_, err := s.CreateEdge(a, b, knows)
	require.NoError(t, err)
	_, err = s.CreateEdge(b, c, knows)
	require.NoError(t, err)

	comps, err := analytics.ConnectedComponents(s, knows)
	require.NoError(t, err)
	require.Equal(t, comps[a], comps[b])
	require.Equal(t, comps[b], comps[c])
}

func TestDegreeCentrality_OutInBoth(t *testing.T) {
	s, knows := newTestStore(t)
	a, _ := s.CreateNode(nil)
	b, _ := s.CreateNode(nil)
	c, _ := s.CreateNode(nil)

	_, err := s.CreateEdge(a, b, knows)
	require.NoError(t, err)
	_, err = s.CreateEdge(a, c, knows)
	require.NoError(t, err)

	out, err := analytics.DegreeCentrality(s, knows, store.Out)
	require.NoError(t, err)
	require.Equal(t, 2.0, out[a])
	require.Equal(t, 0.0, out[b])

	in, err := analytics.DegreeCentrality(s, knows, store.In)
	require.NoError(t, err)
	require.Equal(t, 1.0, in[b])
	require.Equal(t, 1.0, in[c])
	require.Equal(t, 0.0, in[a])

	both, err := analytics.DegreeCentrality(s, knows, store.Both)
	require.NoError(t, err)
	require.Equal(t, 2.0, both[a])
	require.Equal(t, 1.0, both[b])
}

func TestDegreeCentrality_MultiEdgeCountsEachId(t *testing.T) {
	s, knows := newTestStore(t)
	a, _ := s.CreateNode(nil)
	b, _ := s.CreateNode(nil)

	_, err := s.CreateEdge(a, b, knows)
	require.NoError(t, err)
	_, err = s.CreateEdge(a, b, knows)
	require.NoError(t, err)

	out, err := analytics.DegreeCentrality(s, knows, store.Out)
	require.NoError(t, err)
	require.Equal(t, 2.0, out[a])
}

func TestDegreeCentrality_UnknownDirection(t *testing.T) {
	s, knows := newTestStore(t)
	_, err := analytics.DegreeCentrality(s, knows, store.Direction(99))
	require.Error(t, err)
}

func TestShortestPathDistances_ThroughIntermediate(t *testing.T) {
	s, knows := newTestStore(t)
	a, _ := s.CreateNode(nil)
	b, _ := s.CreateNode(nil)
	c, _ := s.CreateNode(nil)

	_, err := s.CreateEdge(a, b, knows)
	require.NoError(t, err)
	_, err = s.CreateEdge(b, c, knows)
	require.NoError(t, err)

	dist, err := analytics.ShortestPathDistances(s, knows)
	require.NoError(t, err)
	require.Equal(t, 0.0, dist[a][a])
	require.Equal(t, 1.0, dist[a][b])
	require.Equal(t, 2.0, dist[a][c])
	require.Equal(t, 1.0, dist[b][c])
}

func TestShortestPathDistances_UnreachableOmitted(t *testing.T) {
	s, knows := newTestStore(t)
	a, _ := s.CreateNode(nil)
	b, _ := s.CreateNode(nil)
	_, _ = s.CreateNode(nil) // isolated, unreachable from either side

	_, err := s.CreateEdge(a, b, knows)
	require.NoError(t, err)

	dist, err := analytics.ShortestPathDistances(s, knows)
	require.NoError(t, err)
	_, reachable := dist[b][a]
	require.False(t, reachable)
}

func TestShortestPathDistances_EmptyGraph(t *testing.T) {
	s, knows := newTestStore(t)
	dist, err := analytics.ShortestPathDistances(s, knows)
	require.NoError(t, err)
	require.Empty(t, dist)
}
