package ids

// Value is the tagged union carried by every attribute. It supplants the
// original's C scalar/array union: Go's empty interface plus a small closed
// set of constructors gives the same "one sum type, no virtual dispatch"
// contract described for attribute storage.
//
// The concrete dynamic type of a Value is always one of: nil, bool, int64,
// float64, string, map[string]Value, []Value, Vector. There is no node,
// edge or path form of Value.
// Callers should type-switch rather than add new Value-producing types.
type Value struct {
	v any
}

// Vector is a dense float32 embedding attached to a node or edge.
type Vector []float32

// NullValue constructs the NULL attribute value. Setting an attribute to
// NullValue removes it (see AttributeSet.Set).
func NullValue() Value { return Value{v: nil} }

// BoolValue constructs a boolean attribute value.
func BoolValue(b bool) Value { return Value{v: b} }

// IntValue constructs an integer attribute value.
func IntValue(i int64) Value { return Value{v: i} }

// FloatValue constructs a floating point attribute value.
func FloatValue(f float64) Value { return Value{v: f} }

// StringValue constructs a string attribute value.
func StringValue(s string) Value { return Value{v: s} }

// MapValue constructs a nested map attribute value.
func MapValue(m map[string]Value) Value { return Value{v: m} }

// ArrayValue constructs an array attribute value.
func ArrayValue(a []Value) Value { return Value{v: a} }

// VectorValue constructs a vector (embedding) attribute value.
func VectorValue(vec Vector) Value { return Value{v: vec} }

// IsNull reports whether v holds NULL.
func (v Value) IsNull() bool { return v.v == nil }

// Raw returns the underlying dynamic value for type-switching by callers.
func (v Value) Raw() any { return v.v }
