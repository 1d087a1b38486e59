package deltamatrix

import "github.com/katalvlaran/graphcore/ids"

// Entry is a relation-matrix cell: either exactly one edge (Single) or two
// or more (Multi). This is the Go-native stand-in for the original's
// tagged-pointer uint64 encoding described in spec §3.3/§9 ("Cyclic
// structures") — a closed sum type rather than a bit-packed pointer, with
// identical promotion/demotion semantics:
//
//   - a fresh cell holds Single;
//   - inserting a second edge between the same (s,d,r) promotes to Multi
//     (len >= 2, enforced by the invariant below);
//   - removing an edge out of a Multi collapses back to Single once exactly
//     one id remains; Single never holds zero ids (absence is "no entry").
type Entry struct {
	single ids.EdgeId
	multi  []ids.EdgeId // non-nil iff this is the multi-edge form, len(multi) >= 2
}

// SingleEntry constructs a scalar (one-edge) Entry.
func SingleEntry(e ids.EdgeId) Entry { return Entry{single: e} }

// IsMulti reports whether the entry currently holds more than one edge id.
func (e Entry) IsMulti() bool { return e.multi != nil }

// EdgeIds returns every edge id the entry encodes, in a fresh slice.
func (e Entry) EdgeIds() []ids.EdgeId {
	if e.multi != nil {
		out := make([]ids.EdgeId, len(e.multi))
		copy(out, e.multi)
		return out
	}
	return []ids.EdgeId{e.single}
}

// CombineEntries implements the multi-edge accumulator from spec §4.1's
// set_u64: if existing already holds a value, accumulate incoming into it
// (promoting a scalar to an array and appending, or appending to the
// existing array); this is the Combiner passed to a relation
// DeltaMatrix's constructor.
func CombineEntries(existing, incoming Entry) Entry {
	if existing.multi != nil {
		merged := append(append([]ids.EdgeId(nil), existing.multi...), incoming.EdgeIds()...)
		return Entry{multi: merged}
	}
	merged := append([]ids.EdgeId{existing.single}, incoming.EdgeIds()...)
	return Entry{multi: merged}
}

// removeEdge removes edgeID from the entry. removed reports whether edgeID
// was found. If the removal collapses a Multi entry down to exactly one
// remaining id, the result is the Single form (never an empty scalar); if
// the entry becomes fully empty, empty reports that the cell itself
// should be deleted.
func removeEdge(e Entry, edgeID ids.EdgeId) (result Entry, removed bool, empty bool) {
	if e.multi == nil {
		if e.single == edgeID {
			return Entry{}, true, true
		}
		return e, false, false
	}
	idx := -1
	for i, id := range e.multi {
		if id == edgeID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return e, false, false
	}
	remaining := append(append([]ids.EdgeId(nil), e.multi[:idx]...), e.multi[idx+1:]...)
	if len(remaining) == 1 {
		return Entry{single: remaining[0]}, true, false
	}
	return Entry{multi: remaining}, true, false
}
