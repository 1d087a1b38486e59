package expr_test

import (
	"testing"

	"github.com/katalvlaran/graphcore/expr"
	"github.com/stretchr/testify/require"
)

func leaf(src, dst, edge string) *expr.Node {
	return expr.NewOperand(false, src, dst, edge, "", "KNOWS")
}

func label(alias, name string) *expr.Node {
	return expr.NewOperand(true, alias, alias, "", name, "")
}

func TestDomain_SingleOperand(t *testing.T) {
	n := leaf("a", "b", "e")
	require.Equal(t, "a", expr.Source(n))
	require.Equal(t, "b", expr.Destination(n))
	require.False(t, expr.Transposed(n))
}

func TestDomain_MulChain(t *testing.T) {
	n := expr.NewOperation(expr.Mul, leaf("a", "b", "e1"), leaf("b", "c", "e2"), leaf("c", "d", "e3"))
	require.Equal(t, "a", expr.Source(n))
	require.Equal(t, "d", expr.Destination(n))
}

func TestDomain_AddPreservesLeftChild(t *testing.T) {
	n := expr.NewOperation(expr.Add, leaf("a", "b", "e1"), leaf("a", "b", "e2"))
	require.Equal(t, "a", expr.Source(n))
	require.Equal(t, "b", expr.Destination(n))
}

func TestDomain_TransposeSwaps(t *testing.T) {
	n := expr.NewOperation(expr.Transpose, leaf("a", "b", "e"))
	require.Equal(t, "b", expr.Source(n))
	require.Equal(t, "a", expr.Destination(n))
	require.True(t, expr.Transposed(n))

	twice := expr.NewOperation(expr.Transpose, n)
	require.False(t, expr.Transposed(twice))
}

func TestClone_IsIndependent(t *testing.T) {
	n := expr.NewOperation(expr.Mul, leaf("a", "b", "e1"), leaf("b", "c", "e2"))
	c := expr.Clone(n)
	c.Children[0].Operand.SrcDomain = "zzz"
	require.Equal(t, "a", expr.Source(n))
	require.Equal(t, "zzz", expr.Source(c))
}

func TestOperandCount_OperationCount(t *testing.T) {
	n := expr.NewOperation(expr.Mul,
		leaf("a", "b", "e1"),
		expr.NewOperation(expr.Transpose, leaf("c", "b", "e2")),
	)
	require.Equal(t, 2, expr.OperandCount(n))
	require.Equal(t, 2, expr.OperationCount(n))
	require.Equal(t, 1, expr.OperationCount(n, expr.Transpose))
	require.True(t, expr.ContainsOp(n, expr.Transpose))
	require.False(t, expr.ContainsOp(n, expr.Add))
}

func TestDiagonalOperand(t *testing.T) {
	n := expr.NewOperation(expr.Mul, label("a", "Person"), leaf("a", "b", "e"))
	op := expr.DiagonalOperand(n, 0)
	require.NotNil(t, op)
	require.True(t, op.Diagonal)
	require.Nil(t, expr.DiagonalOperand(n, 1))
}

func TestVariableLength(t *testing.T) {
	fixed := expr.NewOperation(expr.Mul, leaf("a", "b", "e1"), leaf("b", "c", "e2"))
	require.False(t, expr.VariableLength(fixed))

	varlen := expr.NewOperation(expr.Mul,
		leaf("a", "b", "e1"),
		expr.NewVariableLengthOperand("b", "c", "e2", "KNOWS", 1, 5),
	)
	require.True(t, expr.VariableLength(varlen))
}

func TestRemoveSource_CollapsesBinaryNode(t *testing.T) {
	n := expr.NewOperation(expr.Mul, leaf("a", "b", "e1"), leaf("b", "c", "e2"))
	rest, removed := expr.RemoveSource(n)
	require.NotNil(t, removed)
	require.Equal(t, "a", removed.SrcDomain)
	require.True(t, rest.IsOperand())
	require.Equal(t, "b", expr.Source(rest))
	require.Equal(t, "c", expr.Destination(rest))
}

func TestRemoveSource_RespectsTranspose(t *testing.T) {
	n := expr.NewOperation(expr.Transpose, leaf("a", "b", "e1"))
	rest, removed := expr.RemoveSource(n)
	require.Nil(t, rest)
	require.Equal(t, "a", removed.SrcDomain)
}

func TestMultiplyAndAddToEnds(t *testing.T) {
	base := leaf("a", "b", "e1")
	extended := expr.MultiplyToRight(base, expr.MatrixHandle{})
	require.Equal(t, "a", expr.Source(extended))
	require.Equal(t, "b", expr.Destination(extended))

	withAlt := expr.AddToLeft(base, expr.MatrixHandle{})
	require.Equal(t, "a", expr.Source(withAlt))
	require.Equal(t, "b", expr.Destination(withAlt))
}

func TestRemoveRedundantOperands_DropsConfirmedLabel(t *testing.T) {
	first := expr.NewOperation(expr.Mul, leaf("a", "b", "e1"), label("b", "Person"))
	second := expr.NewOperation(expr.Mul, label("b", "Person"), leaf("b", "c", "e2"))

	out := expr.RemoveRedundantOperands([]*expr.Node{first, second})
	require.Len(t, out, 2)
	// second's leading label operand for "b" is redundant: first's trailing
	// operand is a Person-label check on the same alias.
	require.Equal(t, "b", expr.Source(out[1]))
	require.Equal(t, 1, expr.OperandCount(out[1]))
}

func TestRemoveRedundantOperands_KeepsUnconfirmedLabel(t *testing.T) {
	first := leaf("a", "b", "e1")
	second := expr.NewOperation(expr.Mul, label("b", "Person"), leaf("b", "c", "e2"))

	out := expr.RemoveRedundantOperands([]*expr.Node{first, second})
	require.Len(t, out, 2)
	require.Equal(t, 2, expr.OperandCount(out[1]))
}

func TestLocateOperand(t *testing.T) {
	n := expr.NewOperation(expr.Mul, leaf("a", "b", "e1"), leaf("b", "c", "e2"))
	match, parent := expr.LocateOperand(n, "b", "c", "e2")
	require.NotNil(t, match)
	require.NotNil(t, parent)

	none, _ := expr.LocateOperand(n, "x", "y", "z")
	require.Nil(t, none)
}
