package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/graphcore/ids"
)

func newTestStore(t *testing.T) (*Store, ids.LabelId, ids.RelationId) {
	t.Helper()
	s := NewStore()
	person := s.AddLabel("Person")
	knows := s.AddRelation("KNOWS")
	return s, person, knows
}

func TestCreateNodeSetsLabelsAndCounts(t *testing.T) {
	s, person, _ := newTestStore(t)
	n, err := s.CreateNode([]ids.LabelId{person})
	require.NoError(t, err)

	labels, err := s.LabelsOf(n)
	require.NoError(t, err)
	require.Equal(t, []ids.LabelId{person}, labels)

	st := s.Stats()
	require.Equal(t, 1, st.NodeCount)
	require.EqualValues(t, 1, st.LabelCounts["Person"])
}

func TestCreateEdgeAndEdgesConnecting(t *testing.T) {
	s, person, knows := newTestStore(t)
	a, _ := s.CreateNode([]ids.LabelId{person})
	b, _ := s.CreateNode([]ids.LabelId{person})

	e, err := s.CreateEdge(a, b, knows)
	require.NoError(t, err)

	edges, err := s.EdgesConnecting(a, b, knows)
	require.NoError(t, err)
	require.Len(t, edges, 1)
	require.Equal(t, e, edges[0].ID)

	st := s.Stats()
	require.EqualValues(t, 1, st.RelationCounts["KNOWS"])
}

func TestCreateEdgeUnknownNodeFails(t *testing.T) {
	s, _, knows := newTestStore(t)
	a, _ := s.CreateNode(nil)
	_, err := s.CreateEdge(a, ids.NodeId(999), knows)
	require.Error(t, err)
}

func TestMultiEdgePromotionAndCollapse(t *testing.T) {
	s, person, knows := newTestStore(t)
	a, _ := s.CreateNode([]ids.LabelId{person})
	b, _ := s.CreateNode([]ids.LabelId{person})

	e1, err := s.CreateEdge(a, b, knows)
	require.NoError(t, err)
	e2, err := s.CreateEdge(a, b, knows)
	require.NoError(t, err)

	edges, err := s.EdgesConnecting(a, b, knows)
	require.NoError(t, err)
	require.Len(t, edges, 2)

	require.NoError(t, s.DeleteEdge(e1))
	edges, err = s.EdgesConnecting(a, b, knows)
	require.NoError(t, err)
	require.Len(t, edges, 1)
	require.Equal(t, e2, edges[0].ID)

	require.NoError(t, s.DeleteEdge(e2))
	edges, err = s.EdgesConnecting(a, b, knows)
	require.NoError(t, err)
	require.Empty(t, edges)
}

func TestDeleteEdgeClearsAdjacencyWhenLastRelationGone(t *testing.T) {
	s, person, knows := newTestStore(t)
	likes := s.AddRelation("LIKES")
	a, _ := s.CreateNode([]ids.LabelId{person})
	b, _ := s.CreateNode([]ids.LabelId{person})

	e1, _ := s.CreateEdge(a, b, knows)
	_, _ = s.CreateEdge(a, b, likes)

	require.NoError(t, s.DeleteEdge(e1))

	adj := s.GetAdjacencyMatrix()
	_, ok := adj.Get(int(a), int(b))
	require.True(t, ok, "adjacency should still hold while LIKES edge remains")
}

func TestNodeEdgesDirectionality(t *testing.T) {
	s, person, knows := newTestStore(t)
	a, _ := s.CreateNode([]ids.LabelId{person})
	b, _ := s.CreateNode([]ids.LabelId{person})
	_, err := s.CreateEdge(a, b, knows)
	require.NoError(t, err)

	out, err := s.NodeEdges(a, Out, knows)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, b, out[0].Dst)

	in, err := s.NodeEdges(b, In, knows)
	require.NoError(t, err)
	require.Len(t, in, 1)
	require.Equal(t, a, in[0].Src)

	none, err := s.NodeEdges(a, In, knows)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestDeleteNodeRecyclesId(t *testing.T) {
	s, person, _ := newTestStore(t)
	a, _ := s.CreateNode([]ids.LabelId{person})
	require.NoError(t, s.DeleteNode(a))

	b, _ := s.CreateNode(nil)
	require.Equal(t, a, b, "deleted node id should be recycled")

	labels, err := s.LabelsOf(b)
	require.NoError(t, err)
	require.Empty(t, labels, "recycled slot must not carry the old labels")
}

func TestBulkDeleteCascadesIncidentEdges(t *testing.T) {
	s, person, knows := newTestStore(t)
	a, _ := s.CreateNode([]ids.LabelId{person})
	b, _ := s.CreateNode([]ids.LabelId{person})
	c, _ := s.CreateNode([]ids.LabelId{person})
	_, _ = s.CreateEdge(a, b, knows)
	_, _ = s.CreateEdge(b, c, knows)

	result, err := s.BulkDelete([]ids.NodeId{b}, nil)
	require.NoError(t, err)
	require.Equal(t, 1, result.NodesDeleted)
	require.Equal(t, 2, result.EdgesDeleted)

	st := s.Stats()
	require.Equal(t, 2, st.NodeCount)
	require.EqualValues(t, 0, st.RelationCounts["KNOWS"])
}

func TestApplyPendingFlushesWithoutChangingLogicalContent(t *testing.T) {
	s, person, knows := newTestStore(t)
	a, _ := s.CreateNode([]ids.LabelId{person})
	b, _ := s.CreateNode([]ids.LabelId{person})
	_, err := s.CreateEdge(a, b, knows)
	require.NoError(t, err)

	s.ApplyPending(true)

	edges, err := s.EdgesConnecting(a, b, knows)
	require.NoError(t, err)
	require.Len(t, edges, 1)
}

func TestSyncPolicySwitchAffectsLabelMatrixAccess(t *testing.T) {
	s, person, _ := newTestStore(t)
	_, err := s.CreateNode([]ids.LabelId{person})
	require.NoError(t, err)

	require.Equal(t, FlushResize, s.SyncPolicy())
	s.SetSyncPolicy(NOP)
	require.Equal(t, NOP, s.SyncPolicy())

	m, err := s.GetLabelMatrix(person)
	require.NoError(t, err)
	require.Equal(t, 1, m.Rows())
}
