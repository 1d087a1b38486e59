package orderer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/graphcore/expr"
	"github.com/katalvlaran/graphcore/orderer"
)

func leafEdge(src, dst, edgeAlias string) *expr.Node {
	return expr.NewOperand(false, src, dst, edgeAlias, "", "")
}

func TestPlanCache_HitsOnRepeatedShape(t *testing.T) {
	qg := fakeQueryGraph{"a": {"Person"}, "b": {"Person"}}
	fi := orderer.FilterInfo{}
	pc := orderer.NewPlanCache(8)

	exprs := []*expr.Node{leafEdge("a", "b", "e")}
	first := pc.OrderCached(exprs, nil, fi, qg)
	require.Equal(t, 1, pc.Len())

	second := pc.OrderCached([]*expr.Node{leafEdge("a", "b", "e")}, nil, fi, qg)
	require.Equal(t, 1, pc.Len())
	require.Equal(t, first[0].Score, second[0].Score)
}

func TestPlanCache_DistinguishesBoundSets(t *testing.T) {
	qg := fakeQueryGraph{"a": {"Person"}, "b": {"Person"}}
	fi := orderer.FilterInfo{}
	pc := orderer.NewPlanCache(8)

	exprs := func() []*expr.Node { return []*expr.Node{leafEdge("a", "b", "e")} }
	pc.OrderCached(exprs(), nil, fi, qg)
	pc.OrderCached(exprs(), map[string]bool{"a": true}, fi, qg)
	require.Equal(t, 2, pc.Len())
}

func TestPlanCache_ZeroSizeNeverCaches(t *testing.T) {
	qg := fakeQueryGraph{"a": {"Person"}, "b": {"Person"}}
	fi := orderer.FilterInfo{}
	pc := orderer.NewPlanCache(0)

	pc.OrderCached([]*expr.Node{leafEdge("a", "b", "e")}, nil, fi, qg)
	require.Equal(t, 0, pc.Len())
}

func TestPlanCache_PurgeClearsEntries(t *testing.T) {
	qg := fakeQueryGraph{"a": {"Person"}, "b": {"Person"}}
	fi := orderer.FilterInfo{}
	pc := orderer.NewPlanCache(8)

	pc.OrderCached([]*expr.Node{leafEdge("a", "b", "e")}, nil, fi, qg)
	require.Equal(t, 1, pc.Len())
	pc.Purge()
	require.Equal(t, 0, pc.Len())
}

func TestPlanCache_NilReceiverRecomputes(t *testing.T) {
	qg := fakeQueryGraph{"a": {"Person"}, "b": {"Person"}}
	fi := orderer.FilterInfo{}
	var pc *orderer.PlanCache

	plans := pc.OrderCached([]*expr.Node{leafEdge("a", "b", "e")}, nil, fi, qg)
	require.Len(t, plans, 1)
}
