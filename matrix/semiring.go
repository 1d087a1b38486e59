// SPDX-License-Identifier: MIT
package matrix

// Monoid is a commutative, associative combine operation plus an identity
// element — the "Add" half of a semiring, also used on its own as an
// accumulator (e.g. eWiseAdd's combine function).
type Monoid[T any] struct {
	Name    string
	Zero    T
	Combine func(a, b T) T
}

// Semiring pairs an additive Monoid with a multiplicative operator, the
// algebraic structure spec §6 requires the backend to expose: "common
// monoids and semirings (boolean OR-AND, uint64 PLUS-TIMES, ANY-PAIR over
// bool/uint64, SECOND for overwrite)".
type Semiring[T any] struct {
	Name string
	Add  Monoid[T]
	Mul  func(a, b T) T
}

// BoolOrAnd is the boolean OR-AND semiring used for adjacency/label
// matrix composition.
var BoolOrAnd = Semiring[bool]{
	Name: "OR_AND_BOOL",
	Add:  Monoid[bool]{Name: "OR", Zero: false, Combine: func(a, b bool) bool { return a || b }},
	Mul:  func(a, b bool) bool { return a && b },
}

// Uint64PlusTimes is the classical PLUS-TIMES semiring over uint64,
// occasionally useful for counting walks.
var Uint64PlusTimes = Semiring[uint64]{
	Name: "PLUS_TIMES_UINT64",
	Add:  Monoid[uint64]{Name: "PLUS", Zero: 0, Combine: func(a, b uint64) uint64 { return a + b }},
	Mul:  func(a, b uint64) uint64 { return a * b },
}

// AnyPairBool is the ANY-PAIR semiring over bool: addition picks either
// operand (both are boolean presence markers), multiplication is AND —
// this is the semiring mxm uses when composing a structural (boolean)
// matrix against another boolean matrix.
var AnyPairBool = Semiring[bool]{
	Name: "ANY_PAIR_BOOL",
	Add:  Monoid[bool]{Name: "ANY", Zero: false, Combine: func(a, b bool) bool { return a || b }},
	Mul:  func(a, b bool) bool { return a && b },
}

// SecondUint64 overwrites the accumulator with the incoming value,
// discarding the prior one — the same overwrite rule Wait applies when
// merging DP over M (Wait writes DP values into M directly and does not
// call this function).
func SecondUint64(_, incoming uint64) uint64 { return incoming }

// SecondBool overwrites the accumulator with the incoming value.
func SecondBool(_, incoming bool) bool { return incoming }

// Mxm computes out = left * right under semiring sr: out[i,k] = Add over j
// of Mul(left[i,j], right[j,k]). out must already be sized to
// left.Rows() x right.Cols(); it accumulates into whatever out already
// holds using sr.Add, so pass a fresh Sparse to get a clean product.
func Mxm[T any](out *Sparse[T], sr Semiring[T], left, right Matrix[T]) {
	if left.Cols() != right.Rows() {
		return
	}
	// Build a column index of `right` grouped by row for a single
	// row-major scan of `left` (classic sparse GEMM: for each nonzero
	// left[i,j], fan out across row j of `right`).
	rr, isSparse := right.(*Sparse[T])
	lit := left.RowIterator(0, left.Rows()-1)
	for {
		i, j, lv, ok := lit.Next()
		if !ok {
			break
		}
		if isSparse {
			row, present := rr.rows[j]
			if !present {
				continue
			}
			for k, rv := range row {
				v := sr.Mul(lv, rv)
				if existing, has := out.At(i, k); has {
					out.Set(i, k, sr.Add.Combine(existing, v))
				} else {
					out.Set(i, k, v)
				}
			}
			continue
		}
		for k := 0; k < right.Cols(); k++ {
			rv, present := right.At(j, k)
			if !present {
				continue
			}
			v := sr.Mul(lv, rv)
			if existing, has := out.At(i, k); has {
				out.Set(i, k, sr.Add.Combine(existing, v))
			} else {
				out.Set(i, k, v)
			}
		}
	}
}

// EWiseAdd computes out = a ⊕ b element-wise under monoid m, writing into a
// fresh Sparse sized to a's dimensions.
func EWiseAdd[T any](m Monoid[T], a, b Matrix[T]) *Sparse[T] {
	out := NewSparse[T](a.Rows(), a.Cols())
	ai := a.RowIterator(0, a.Rows()-1)
	for {
		i, j, v, ok := ai.Next()
		if !ok {
			break
		}
		out.Set(i, j, v)
	}
	bi := b.RowIterator(0, b.Rows()-1)
	for {
		i, j, v, ok := bi.Next()
		if !ok {
			break
		}
		if existing, has := out.At(i, j); has {
			out.Set(i, j, m.Combine(existing, v))
		} else {
			out.Set(i, j, v)
		}
	}
	return out
}

// Transpose returns a new Sparse that is m's transpose.
func Transpose[T any](m Matrix[T]) *Sparse[T] {
	out := NewSparse[T](m.Cols(), m.Rows())
	it := m.RowIterator(0, m.Rows()-1)
	for {
		i, j, v, ok := it.Next()
		if !ok {
			break
		}
		out.Set(j, i, v)
	}
	return out
}
