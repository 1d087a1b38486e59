// Package deltamatrix implements the mutable, concurrent, versioned sparse
// matrix described in spec §3.4/§4.1: a stable base plus pending-addition
// and pending-deletion overlays, with lazy flushing.
//
// A DeltaMatrix's logical content is `(M masked by ¬DM) ⊕ DP`: reads check
// DP first, then DM, then fall back to the base M. New cells go to DP and
// removals of base cells go to DM until Wait merges them into M; a write to
// a cell that M already holds, or that DM marks as deleted, updates M
// directly.
package deltamatrix

import (
	"sync"

	"github.com/katalvlaran/graphcore/ids"
	"github.com/katalvlaran/graphcore/matrix"
)

// DefaultFlushThreshold is the pending-entry count at or above which Wait(false)
// performs a flush even without a forced sync.
const DefaultFlushThreshold = 1000

// Combiner merges an incoming value into an already-present one when a
// second mutation targets the same cell before a flush (spec §4.1's
// multi-edge accumulator; NewBool's boolean matrices keep the incoming value).
type Combiner[T any] func(existing, incoming T) T

// DeltaMatrix is a base matrix M plus pending-addition (DP) and
// pending-deletion (DM) overlays, guarded by a non-reentrant mutex. See
// spec §3.4 for the invariants it maintains at all times.
type DeltaMatrix[T any] struct {
	mu sync.Mutex

	base  *matrix.Sparse[T]
	plus  *matrix.Sparse[T]
	minus *matrix.Sparse[bool] // DM is always boolean (presence-of-deletion marker)

	dirty             bool
	combine           Combiner[T]
	maintainTranspose bool
	twin              *DeltaMatrix[T]
	flushThreshold    int
}

// New constructs a DeltaMatrix of the given dimensions. combine resolves a
// same-cell double-write before flush (pass a plain "last write wins"
// function for matrices that never accumulate, e.g. boolean label
// matrices). If maintainTranspose is true, New also allocates a twin
// DeltaMatrix kept in sync on every mutation (spec invariant 4).
func New[T any](nrows, ncols int, combine Combiner[T], maintainTranspose bool) *DeltaMatrix[T] {
	d := &DeltaMatrix[T]{
		base:           matrix.NewSparse[T](nrows, ncols),
		plus:           matrix.NewSparse[T](nrows, ncols),
		minus:          matrix.NewSparse[bool](nrows, ncols),
		combine:        combine,
		flushThreshold: DefaultFlushThreshold,
	}
	if maintainTranspose {
		d.maintainTranspose = true
		d.twin = New[T](ncols, nrows, combine, false)
	}
	return d
}

// NewBool constructs a boolean DeltaMatrix whose combine rule is last write
// wins (the incoming value is kept) —
// the constructor used for label matrices (diagonal) and the adjacency
// matrix.
func NewBool(nrows, ncols int, maintainTranspose bool) *DeltaMatrix[bool] {
	return New[bool](nrows, ncols, func(_, incoming bool) bool { return incoming }, maintainTranspose)
}

// Rows returns the matrix's row dimension.
func (d *DeltaMatrix[T]) Rows() int { d.mu.Lock(); defer d.mu.Unlock(); return d.base.Rows() }

// Cols returns the matrix's column dimension.
func (d *DeltaMatrix[T]) Cols() int { d.mu.Lock(); defer d.mu.Unlock(); return d.base.Cols() }

// NVals returns the number of logically present cells: base entries not
// masked by a pending deletion, plus pending additions.
func (d *DeltaMatrix[T]) NVals() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.nvalsLocked()
}

func (d *DeltaMatrix[T]) nvalsLocked() int {
	n := 0
	it := d.base.RowIterator(0, d.base.Rows()-1)
	for {
		i, j, _, ok := it.Next()
		if !ok {
			break
		}
		if _, deleted := d.minus.At(i, j); !deleted {
			n++
		}
	}
	return n + d.plus.NVals()
}

// Pending reports whether any pending addition or deletion exists.
func (d *DeltaMatrix[T]) Pending() bool { d.mu.Lock(); defer d.mu.Unlock(); return d.dirty }

// SetFlushThreshold overrides the pending-entry count at or above which Wait(false)
// flushes even without a forced sync (DefaultFlushThreshold otherwise).
func (d *DeltaMatrix[T]) SetFlushThreshold(n int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.flushThreshold = n
	if d.maintainTranspose {
		d.twin.SetFlushThreshold(n)
	}
}

// Resize grows the matrix's dimensions, propagating to the overlays and the
// transpose twin. Resize only ever grows in practice (spec §4.1).
func (d *DeltaMatrix[T]) Resize(nrows, ncols int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.base.Resize(nrows, ncols)
	d.plus.Resize(nrows, ncols)
	d.minus.Resize(nrows, ncols)
	if d.maintainTranspose {
		d.twin.Resize(ncols, nrows)
	}
}

// Get reads the logical value at (i,j): DP first, then DM (masks M), then
// M itself.
func (d *DeltaMatrix[T]) Get(i, j int) (T, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.getLocked(i, j)
}

func (d *DeltaMatrix[T]) getLocked(i, j int) (T, bool) {
	if v, ok := d.plus.At(i, j); ok {
		return v, true
	}
	if _, deleted := d.minus.At(i, j); deleted {
		var zero T
		return zero, false
	}
	return d.base.At(i, j)
}

// Set performs the add/merge case of spec §4.1's set_bool/set_u64:
//
//   - if DM[i,j] is set, clear it and replace M[i,j] with v outright
//     (the caller is assumed to have just removed the prior occupant);
//   - else if a value already exists (in M or DP), merge via combine;
//   - else write v fresh into DP.
//
// The transpose twin, if maintained, is mirrored before Set returns.
func (d *DeltaMatrix[T]) Set(i, j int, v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.setLocked(i, j, v)
}

func (d *DeltaMatrix[T]) setLocked(i, j int, v T) {
	if _, deleted := d.minus.At(i, j); deleted {
		d.minus.Remove(i, j)
		d.base.Set(i, j, v)
		d.dirty = d.plus.NVals() > 0 || d.minus.NVals() > 0
		d.mirror(i, j, v, false)
		return
	}
	if existing, ok := d.base.At(i, j); ok {
		d.base.Set(i, j, d.combine(existing, v))
		d.mirror(i, j, v, false)
		return
	}
	merged := v
	if existing, ok := d.plus.At(i, j); ok {
		merged = d.combine(existing, v)
	}
	d.plus.Set(i, j, merged)
	d.dirty = true
	d.mirror(i, j, v, false)
}

// replaceLocked overwrites whichever overlay currently holds (i,j) with v
// outright, bypassing combine — used by RelationMatrix.RemoveEdge to store
// the collapsed/trimmed entry it already computed from the prior value.
func (d *DeltaMatrix[T]) replaceLocked(i, j int, v T) {
	if _, ok := d.plus.At(i, j); ok {
		d.plus.Set(i, j, v)
	} else {
		d.base.Set(i, j, v)
	}
	if d.maintainTranspose {
		d.twin.mu.Lock()
		d.twin.replaceLocked(j, i, v)
		d.twin.mu.Unlock()
	}
}

// mirror applies the same write/removal to the transpose twin at (j,i). It
// must be called while d.mu is held so the twin is updated before Set,
// Remove or RemoveEntry returns control to the caller (spec concurrency
// ordering guarantee).
func (d *DeltaMatrix[T]) mirror(i, j int, v T, remove bool) {
	if !d.maintainTranspose {
		return
	}
	d.twin.mu.Lock()
	defer d.twin.mu.Unlock()
	if remove {
		d.twin.removeLocked(j, i)
		return
	}
	d.twin.setLocked(j, i, v)
}

// Remove deletes the entry at (i,j). Returns ids.ErrNotFound if the cell
// was already logically absent.
func (d *DeltaMatrix[T]) Remove(i, j int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.removeLocked(i, j)
}

func (d *DeltaMatrix[T]) removeLocked(i, j int) error {
	_, hadBase := d.base.At(i, j)
	_, alreadyMarked := d.minus.At(i, j)
	if hadBase && !alreadyMarked {
		d.minus.Set(i, j, true)
		d.dirty = true
	}
	hadPlus := d.plus.Remove(i, j)
	if hadPlus {
		d.dirty = d.plus.NVals() > 0 || d.minus.NVals() > 0
	}
	if (!hadBase || alreadyMarked) && !hadPlus {
		return ids.ErrNotFound
	}
	var zero T
	d.mirror(i, j, zero, true)
	return nil
}

// Wait flushes pending overlays into the base when forced, or when the
// combined pending size reaches the configured threshold: DM is applied as
// an erase mask over M, then DP overwrites M (SECOND semantics — DP already
// holds the fully merged value for any cell touched more than once, see
// Combiner), and both overlays are cleared. The mirrored twin, if any, is
// flushed first under the same policy.
func (d *DeltaMatrix[T]) Wait(forceSync bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.waitLocked(forceSync)
}

func (d *DeltaMatrix[T]) waitLocked(forceSync bool) {
	if d.maintainTranspose {
		d.twin.mu.Lock()
		d.twin.waitLocked(forceSync)
		d.twin.mu.Unlock()
	}
	if !forceSync && d.plus.NVals()+d.minus.NVals() < d.flushThreshold {
		return
	}
	if d.plus.NVals() == 0 && d.minus.NVals() == 0 {
		d.dirty = false
		return
	}
	mit := d.minus.RowIterator(0, d.minus.Rows()-1)
	for {
		i, j, _, ok := mit.Next()
		if !ok {
			break
		}
		d.base.Remove(i, j)
	}
	pit := d.plus.RowIterator(0, d.plus.Rows()-1)
	for {
		i, j, v, ok := pit.Next()
		if !ok {
			break
		}
		d.base.Set(i, j, v)
	}
	d.plus.Clear()
	d.minus.Clear()
	d.dirty = false
}

// Export materialises the logical view `(M masked by ¬DM) ⊕ DP` into a
// fresh Sparse without mutating the instance.
func (d *DeltaMatrix[T]) Export() *matrix.Sparse[T] {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := matrix.NewSparse[T](d.base.Rows(), d.base.Cols())
	it := d.base.RowIterator(0, d.base.Rows()-1)
	for {
		i, j, v, ok := it.Next()
		if !ok {
			break
		}
		if _, deleted := d.minus.At(i, j); !deleted {
			out.Set(i, j, v)
		}
	}
	pit := d.plus.RowIterator(0, d.plus.Rows()-1)
	for {
		i, j, v, ok := pit.Next()
		if !ok {
			break
		}
		out.Set(i, j, v)
	}
	return out
}

// MemoryUsage returns a rough accounting of the number of cells the matrix
// currently occupies across base and overlays — useful for diagnostics,
// not a precise byte count.
func (d *DeltaMatrix[T]) MemoryUsage() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.base.NVals() + d.plus.NVals() + d.minus.NVals()
}

// Clone returns a deep, independent copy of d (base and overlays), with its
// own transpose twin if maintained.
func (d *DeltaMatrix[T]) Clone() *DeltaMatrix[T] {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := &DeltaMatrix[T]{
		base:              d.base.Clone().(*matrix.Sparse[T]),
		plus:              d.plus.Clone().(*matrix.Sparse[T]),
		minus:             d.minus.Clone().(*matrix.Sparse[bool]),
		dirty:             d.dirty,
		combine:           d.combine,
		maintainTranspose: d.maintainTranspose,
		flushThreshold:    d.flushThreshold,
	}
	if d.maintainTranspose {
		out.twin = d.twin.Clone()
	}
	return out
}

// Dup is an alias for Clone matching the spec §4.1 operation name.
func (d *DeltaMatrix[T]) Dup() *DeltaMatrix[T] { return d.Clone() }

// Twin returns the transpose-maintained companion matrix, or nil if d was
// constructed with maintainTranspose = false.
func (d *DeltaMatrix[T]) Twin() *DeltaMatrix[T] { return d.twin }
