package orderer_test

import (
	"testing"

	"github.com/katalvlaran/graphcore/expr"
	"github.com/katalvlaran/graphcore/orderer"
	"github.com/stretchr/testify/require"
)

type fakeQueryGraph map[string][]string

func (f fakeQueryGraph) Labels(alias string) []string { return f[alias] }

func leaf(src, dst, edge string) *expr.Node {
	return expr.NewOperand(false, src, dst, edge, "", "KNOWS")
}

// TestOrder_PlacesHighestScoringEntryFirst mirrors spec's worked example:
// two expressions over aliases a, b, c with a filter on a and no bound
// variables places the a-sourced expression first.
func TestOrder_PlacesHighestScoringEntryFirst(t *testing.T) {
	ab := leaf("a", "b", "e1")
	bc := leaf("b", "c", "e2")
	qg := fakeQueryGraph{}
	fi := orderer.FilterInfo{
		Filtered:    map[string]int{"a": 1},
		Independent: map[string]int{"a": 1},
	}

	plans := orderer.Order([]*expr.Node{bc, ab}, nil, fi, qg)
	require.Len(t, plans, 2)
	require.Equal(t, "a", expr.Source(plans[0].Expr))
	require.Equal(t, "b", expr.Source(plans[1].Expr))
}

func TestOrder_SourceAlwaysResolvedByPriorOrEntry(t *testing.T) {
	ab := leaf("a", "b", "e1")
	bc := leaf("b", "c", "e2")
	cd := leaf("c", "d", "e3")
	qg := fakeQueryGraph{}

	plans := orderer.Order([]*expr.Node{cd, bc, ab}, nil, orderer.FilterInfo{}, qg)
	require.Len(t, plans, 3)

	resolved := map[string]bool{}
	for i, p := range plans {
		src := expr.Source(p.Expr)
		if i > 0 {
			require.True(t, resolved[src], "expression %d's source %q not resolved by a prior expression", i, src)
		}
		resolved[expr.Source(p.Expr)] = true
		resolved[expr.Destination(p.Expr)] = true
	}
}

func TestOrder_EntryPointTransposeFavoursHigherLabelCount(t *testing.T) {
	ab := leaf("a", "b", "e1")
	qg := fakeQueryGraph{"b": {"Person", "Admin"}}

	plans := orderer.Order([]*expr.Node{ab}, nil, orderer.FilterInfo{}, qg)
	require.Len(t, plans, 1)
	// b has more labels than a (which has none), so destination outscores
	// source and the entry is transposed: execution now starts at b.
	require.Equal(t, "b", expr.Source(plans[0].Expr))
	require.Equal(t, "a", expr.Destination(plans[0].Expr))
}

func TestOrder_BoundVariableIsPreferredEntry(t *testing.T) {
	ab := leaf("a", "b", "e1")
	bc := leaf("b", "c", "e2")
	qg := fakeQueryGraph{}
	bound := map[string]bool{"c": true}

	plans := orderer.Order([]*expr.Node{ab, bc}, bound, orderer.FilterInfo{}, qg)
	require.Len(t, plans, 2)
	require.Equal(t, "c", expr.Source(plans[0].Expr))
}

func TestOrder_EmptyInput(t *testing.T) {
	require.Nil(t, orderer.Order(nil, nil, orderer.FilterInfo{}, fakeQueryGraph{}))
}
