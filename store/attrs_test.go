package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/graphcore/ids"
)

func TestNodeAttributeSetGetRemove(t *testing.T) {
	s, person, _ := newTestStore(t)
	n, err := s.CreateNode([]ids.LabelId{person})
	require.NoError(t, err)

	const nameAttr ids.AttributeId = 0
	_, ok, err := s.NodeAttribute(n, nameAttr)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.SetNodeAttribute(n, nameAttr, ids.StringValue("Alice")))
	v, ok, err := s.NodeAttribute(n, nameAttr)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Alice", v.Raw())

	seen := map[ids.AttributeId]ids.Value{}
	require.NoError(t, s.NodeAttributes(n, func(id ids.AttributeId, val ids.Value) bool {
		seen[id] = val
		return true
	}))
	require.Len(t, seen, 1)

	// Setting NULL removes the attribute (spec §3.2 invariant).
	require.NoError(t, s.SetNodeAttribute(n, nameAttr, ids.NullValue()))
	_, ok, err = s.NodeAttribute(n, nameAttr)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestNodeAttributeUnknownNode(t *testing.T) {
	s, _, _ := newTestStore(t)
	_, _, err := s.NodeAttribute(ids.NodeId(42), ids.AttributeId(0))
	require.ErrorIs(t, err, ids.ErrNotFound)
	require.ErrorIs(t, s.SetNodeAttribute(ids.NodeId(42), ids.AttributeId(0), ids.IntValue(1)), ids.ErrNotFound)
}

func TestEdgeAttributeSetGetRemove(t *testing.T) {
	s, person, knows := newTestStore(t)
	a, _ := s.CreateNode([]ids.LabelId{person})
	b, _ := s.CreateNode([]ids.LabelId{person})
	e, err := s.CreateEdge(a, b, knows)
	require.NoError(t, err)

	const sinceAttr ids.AttributeId = 1
	require.NoError(t, s.SetEdgeAttribute(e, sinceAttr, ids.IntValue(2020)))
	v, ok, err := s.EdgeAttribute(e, sinceAttr)
	require.NoError(t, err)
	require.True(t, ok)
	require.EqualValues(t, 2020, v.Raw())

	require.NoError(t, s.RemoveEdgeAttribute(e, sinceAttr))
	_, ok, err = s.EdgeAttribute(e, sinceAttr)
	require.NoError(t, err)
	require.False(t, ok)
}
