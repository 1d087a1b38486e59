package deltamatrix

import (
	"github.com/katalvlaran/graphcore/ids"
	"github.com/katalvlaran/graphcore/matrix"
)

// Iterator walks a DeltaMatrix's logical content as two chained streams:
// first M (skipping anything masked by DM), then DP — spec §4.2's M-first,
// DP-second order. A given logical cell is yielded at most once.
//
// Iterator holds the DeltaMatrix's mutex only inside each call, never
// across calls: per spec §4.2, callers rely on the MVCC read version
// captured at Attach time to guarantee a stable snapshot; concurrent
// mutation during iteration is undefined behaviour.
type Iterator[T any] struct {
	d              *DeltaMatrix[T]
	minRow, maxRow int
	phase          int // 0 = walking base, 1 = walking plus, 2 = exhausted
	baseIt         *matrix.RowIter[T]
	plusIt         *matrix.RowIter[T]
}

// Attach binds it to DeltaMatrix d restricted to [minRow, maxRow], ready for
// Next. Pass 0 and Rows()-1 to walk the whole matrix.
func Attach[T any](d *DeltaMatrix[T], minRow, maxRow int) *Iterator[T] {
	it := &Iterator[T]{d: d, minRow: minRow, maxRow: maxRow}
	it.Reset()
	return it
}

// IterateRow attaches (or re-attaches) the iterator to a single row.
func (it *Iterator[T]) IterateRow(row int) {
	it.minRow, it.maxRow = row, row
	it.Reset()
}

// IterateRange re-attaches the iterator to [lo, hi].
func (it *Iterator[T]) IterateRange(lo, hi int) {
	it.minRow, it.maxRow = lo, hi
	it.Reset()
}

// JumpToRow repositions an already-attached iterator's base stream at the
// first non-empty row at or after row; the plus stream (if already being
// walked) is unaffected.
func (it *Iterator[T]) JumpToRow(row int) {
	if it.baseIt != nil {
		it.baseIt.JumpToRow(row)
	}
}

// Reset restarts the iterator from the beginning of its current range.
func (it *Iterator[T]) Reset() {
	it.d.mu.Lock()
	defer it.d.mu.Unlock()
	it.baseIt = it.d.base.RowIterator(it.minRow, it.maxRow)
	it.plusIt = it.d.plus.RowIterator(it.minRow, it.maxRow)
	it.phase = 0
}

// Detach releases the iterator's underlying streams; the Iterator must not
// be used again except via Reset.
func (it *Iterator[T]) Detach() {
	it.baseIt = nil
	it.plusIt = nil
	it.phase = 2
}

// Next returns the next (row, col, value) tuple, or ids.ErrExhausted once
// the iterator has yielded everything in range.
func (it *Iterator[T]) Next() (row, col int, val T, err error) {
	it.d.mu.Lock()
	defer it.d.mu.Unlock()

	for it.phase == 0 {
		r, c, v, ok := it.baseIt.Next()
		if !ok {
			it.phase = 1
			break
		}
		if _, deleted := it.d.minus.At(r, c); deleted {
			continue
		}
		// A cell present in both M and DP is logically governed by DP
		// (Get's precedence); skip it here so it is yielded exactly
		// once, from the DP stream.
		if _, inPlus := it.d.plus.At(r, c); inPlus {
			continue
		}
		return r, c, v, nil
	}
	if it.phase == 1 {
		r, c, v, ok := it.plusIt.Next()
		if !ok {
			it.phase = 2
			var zero T
			return 0, 0, zero, ids.ErrExhausted
		}
		return r, c, v, nil
	}
	var zero T
	return 0, 0, zero, ids.ErrExhausted
}
