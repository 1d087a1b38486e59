package ids

// AttributeSet is an insertion-ordered sequence of (AttributeId, Value)
// pairs. Lookup is linear: entity attribute arity is small in practice, so
// a flat slice with linear search beats a map on both memory and cache
// behaviour (the same justification the teacher's adjacency-list package
// gives for small per-vertex fan-out).
//
// AttributeSet is NOT safe for concurrent mutation; the owning Node/Edge
// slot is protected by the graph store's locks.
type AttributeSet struct {
	ids    []AttributeId
	values []Value
}

// Get returns the value stored under id and whether it was present.
// Complexity: O(n) in the number of attributes on the entity.
func (a *AttributeSet) Get(id AttributeId) (Value, bool) {
	for i, existing := range a.ids {
		if existing == id {
			return a.values[i], true
		}
	}
	return Value{}, false
}

// Set assigns value under id, replacing any existing entry. Setting a NULL
// value removes the attribute entirely (invariant from the data model:
// "Setting an attribute to NULL removes it").
//
// Values are copy-on-write at this boundary for the container types
// (map/array/vector): a defensive shallow copy is taken so a caller
// mutating their own slice/map after Set cannot corrupt stored state.
func (a *AttributeSet) Set(id AttributeId, value Value) {
	if value.IsNull() {
		a.Remove(id)
		return
	}
	value = cloneValue(value)
	for i, existing := range a.ids {
		if existing == id {
			a.values[i] = value
			return
		}
	}
	a.ids = append(a.ids, id)
	a.values = append(a.values, value)
}

// Remove deletes the attribute under id, if present. Idempotent.
func (a *AttributeSet) Remove(id AttributeId) {
	for i, existing := range a.ids {
		if existing == id {
			a.ids = append(a.ids[:i], a.ids[i+1:]...)
			a.values = append(a.values[:i], a.values[i+1:]...)
			return
		}
	}
}

// Len returns the number of attributes currently set.
func (a *AttributeSet) Len() int { return len(a.ids) }

// Each calls fn for every (AttributeId, Value) pair in insertion order.
// Returning false from fn stops iteration early.
func (a *AttributeSet) Each(fn func(AttributeId, Value) bool) {
	for i, id := range a.ids {
		if !fn(id, a.values[i]) {
			return
		}
	}
}

// cloneValue performs a shallow defensive copy of container-typed values.
func cloneValue(v Value) Value {
	switch x := v.Raw().(type) {
	case map[string]Value:
		cp := make(map[string]Value, len(x))
		for k, vv := range x {
			cp[k] = vv
		}
		return MapValue(cp)
	case []Value:
		cp := make([]Value, len(x))
		copy(cp, x)
		return ArrayValue(cp)
	case Vector:
		cp := make(Vector, len(x))
		copy(cp, x)
		return VectorValue(cp)
	default:
		return v
	}
}
