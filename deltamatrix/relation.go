package deltamatrix

import "github.com/katalvlaran/graphcore/ids"

// RelationMatrix is a DeltaMatrix[Entry] with the multi-edge-aware
// operations spec §4.1 adds on top of the generic Get/Set/Remove contract:
// AccumulateEdge (set_u64) and RemoveEdge (remove_entry).
type RelationMatrix struct {
	*DeltaMatrix[Entry]
}

// NewRelationMatrix constructs the Delta-Matrix backing one relation type:
// uint64-valued (via Entry), multi-edge enabled, transpose-maintained, per
// spec §4.3's relations[] field.
func NewRelationMatrix(nrows, ncols int) *RelationMatrix {
	return &RelationMatrix{DeltaMatrix: New[Entry](nrows, ncols, CombineEntries, true)}
}

// AccumulateEdge implements set_u64: adds edgeID to the cell at (s,d),
// promoting a scalar to a multi-edge array (or appending to one) exactly as
// spec §4.1 describes.
func (r *RelationMatrix) AccumulateEdge(s, d int, edgeID ids.EdgeId) {
	r.Set(s, d, SingleEntry(edgeID))
}

// RemoveEdge implements remove_entry: removes a single edge id from the
// cell at (s,d). If the cell holds a scalar equal to edgeID, it behaves
// like Remove. If the cell holds a multi-edge array, the matching id is
// dropped, collapsing back to scalar form when exactly one id remains; a
// multi-edge cell is never left holding an empty scalar. Returns
// ids.ErrNotFound if the cell is absent or does not contain edgeID.
func (r *RelationMatrix) RemoveEdge(s, d int, edgeID ids.EdgeId) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.getLocked(s, d)
	if !ok {
		return ids.ErrNotFound
	}
	result, removed, empty := removeEdge(existing, edgeID)
	if !removed {
		return ids.ErrNotFound
	}
	if empty {
		return r.removeLocked(s, d)
	}
	// Overwrite outright: Set's combine path would merge `result` into
	// whatever is already stored, but we've already computed the final
	// collapsed/trimmed entry ourselves.
	r.replaceLocked(s, d, result)
	return nil
}
