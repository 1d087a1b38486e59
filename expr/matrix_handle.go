package expr

import (
	"github.com/katalvlaran/graphcore/deltamatrix"
)

// MatrixKind tags which of the store's matrix families a resolved operand
// is bound to.
type MatrixKind int

const (
	KindAdjacency MatrixKind = iota
	KindLabel
	KindRelation
	KindZero
)

func (k MatrixKind) String() string {
	switch k {
	case KindAdjacency:
		return "adjacency"
	case KindLabel:
		return "label"
	case KindRelation:
		return "relation"
	case KindZero:
		return "zero"
	default:
		return "unknown"
	}
}

// MatrixHandle is the resolved form of an Operand: a reference to one of
// the store's boolean matrices (adjacency, label, or the shared zero
// singleton) or a relation's multi-edge matrix. Exactly one of Bool /
// Relation is non-nil, selected by Kind.
type MatrixHandle struct {
	Kind     MatrixKind
	Bool     *deltamatrix.DeltaMatrix[bool]
	Relation *deltamatrix.RelationMatrix
}

// zeroSingleton is the shared zero matrix spec §4.4's populate_operands
// resolves a missing-schema operand to: a 0x0 boolean matrix that never
// has any entries and never grows, so every read against it behaves as
// "never matches" regardless of which row/column a caller probes.
var zeroSingleton = deltamatrix.NewBool(0, 0, false)

func zeroHandle() MatrixHandle {
	return MatrixHandle{Kind: KindZero, Bool: zeroSingleton}
}

// Transposed returns the logical transpose of h. For adjacency and
// relation matrices (both transpose-maintained) this is the live twin;
// for label and zero matrices — symmetric by construction — h is
// returned unchanged.
func (h MatrixHandle) Transposed() MatrixHandle {
	switch h.Kind {
	case KindRelation:
		if h.Relation == nil {
			return h
		}
		if twin := h.Relation.Twin(); twin != nil {
			return MatrixHandle{Kind: KindRelation, Relation: &deltamatrix.RelationMatrix{DeltaMatrix: twin}}
		}
		return h
	case KindAdjacency:
		if h.Bool == nil {
			return h
		}
		if twin := h.Bool.Twin(); twin != nil {
			return MatrixHandle{Kind: KindAdjacency, Bool: twin}
		}
		return h
	default: // label and zero matrices are diagonal/empty: self-transpose
		return h
	}
}

// Resolved reports whether h names an actual matrix (as opposed to the
// MatrixHandle zero value, which callers use as "nothing bound yet").
func (h MatrixHandle) Resolved() bool {
	return h.Bool != nil || h.Relation != nil
}
