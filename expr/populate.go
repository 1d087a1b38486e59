package expr

import (
	"fmt"

	"github.com/katalvlaran/graphcore/store"
)

// PopulateOperands resolves every leaf operand's MatrixHandle by
// consulting s (spec §4.4's populate_operands): a diagonal operand binds
// to its named label matrix, a non-diagonal operand naming a relation
// type binds to that relation's matrix, and an operand naming neither
// binds to the global adjacency matrix. A name that does not resolve in
// the store binds to the shared zero matrix rather than erroring — an
// unmatched label or relation type means the pattern can never match,
// not that the expression is malformed.
//
// Idempotent: an operand already marked Resolved is left untouched, so
// calling PopulateOperands twice on overlapping expressions never
// clobbers an earlier resolution.
func PopulateOperands(root *Node, s *store.Store) error {
	if root == nil {
		return nil
	}
	if root.IsOperand() {
		return populateOperand(root.Operand, s)
	}
	for _, c := range root.Children {
		if err := PopulateOperands(c, s); err != nil {
			return err
		}
	}
	if root.Op == Transpose && root.Children[0].IsOperand() {
		collapseTranspose(root)
	}
	return nil
}

func populateOperand(o *Operand, s *store.Store) error {
	if o.Resolved {
		return nil
	}
	switch {
	case o.Diagonal:
		id, ok := s.LabelID(o.Label)
		if !ok {
			o.Matrix = zeroHandle()
			break
		}
		m, err := s.GetLabelMatrix(id)
		if err != nil {
			return fmt.Errorf("expr: populate_operands: label %q: %w", o.Label, err)
		}
		o.Matrix = MatrixHandle{Kind: KindLabel, Bool: m}
	case o.RelationType != "":
		id, ok := s.RelationID(o.RelationType)
		if !ok {
			o.Matrix = zeroHandle()
			break
		}
		rm, err := s.GetRelationMatrix(id)
		if err != nil {
			return fmt.Errorf("expr: populate_operands: relation %q: %w", o.RelationType, err)
		}
		o.Matrix = MatrixHandle{Kind: KindRelation, Relation: rm}
	default:
		o.Matrix = MatrixHandle{Kind: KindAdjacency, Bool: s.GetAdjacencyMatrix()}
	}
	o.Resolved = true
	return nil
}

// collapseTranspose rewrites a TRANSPOSE node whose single child is a
// plain operand into that operand directly, with domains swapped and the
// matrix handle replaced by its transpose — eliminating the explicit
// TRANSPOSE node from the tree, per spec §4.4.
func collapseTranspose(n *Node) {
	child := n.Children[0].Operand
	n.Op = 0
	n.Children = nil
	n.Operand = &Operand{
		Matrix:       child.Matrix.Transposed(),
		Resolved:     child.Resolved,
		Diagonal:     child.Diagonal,
		VarLength:    child.VarLength,
		MinHops:      child.MinHops,
		MaxHops:      child.MaxHops,
		SrcDomain:    child.DestDomain,
		DestDomain:   child.SrcDomain,
		EdgeAlias:    child.EdgeAlias,
		Label:        child.Label,
		RelationType: child.RelationType,
	}
}
