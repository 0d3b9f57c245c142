package value

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	// KindNull is the null value.
	KindNull Kind = iota

	// KindBool is a boolean.
	KindBool

	// KindInt is a 64-bit signed integer.
	KindInt

	// KindFloat is a 64-bit float.
	KindFloat

	// KindString is a UTF-8 string.
	KindString

	// KindArray is an ordered sequence of values.
	KindArray

	// KindObject is an insertion-ordered string to value mapping.
	KindObject
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Value is a neutral JSON-like value. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	a    []Value
	m    *Map
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Int returns an integer value.
func Int(i int64) Value {
	return Value{kind: KindInt, i: i}
}

// Float returns a float value.
func Float(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// Array returns an array value holding the given elements.
func Array(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: KindArray, a: elems}
}

// Object returns an object value backed by the given map. A nil map yields
// an empty object.
func Object(m *Map) Value {
	if m == nil {
		m = NewMap()
	}
	return Value{kind: KindObject, m: m}
}

// Kind returns the variant held by the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Bool returns the boolean payload, or false for non-bool values.
func (v Value) Bool() bool {
	return v.kind == KindBool && v.b
}

// Int returns the integer payload. Float values are truncated; other kinds
// return zero.
func (v Value) Int() int64 {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return int64(v.f)
	default:
		return 0
	}
}

// Float returns the numeric payload as a float64, or zero for non-numeric
// values.
func (v Value) Float() float64 {
	switch v.kind {
	case KindInt:
		return float64(v.i)
	case KindFloat:
		return v.f
	default:
		return 0
	}
}

// Text returns the string payload, or "" for non-string values.
func (v Value) Text() string {
	return v.s
}

// Len returns the element count for arrays and objects, zero otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.a)
	case KindObject:
		return v.m.Len()
	default:
		return 0
	}
}

// Index returns the array element at position i, or null when out of range
// or not an array.
func (v Value) Index(i int) Value {
	if v.kind != KindArray || i < 0 || i >= len(v.a) {
		return Null()
	}
	return v.a[i]
}

// Elems returns the underlying array elements, or nil for non-arrays.
func (v Value) Elems() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.a
}

// Get returns the object entry for key.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Null(), false
	}
	return v.m.Get(key)
}

// Fields returns the object's backing map, or nil for non-objects.
func (v Value) Fields() *Map {
	if v.kind != KindObject {
		return nil
	}
	return v.m
}

// Equal reports structural equality. Objects compare by key set with
// pairwise-equal entries regardless of insertion order, arrays compare
// positionally and numbers compare by numeric value across the int/float
// kinds.
func (v Value) Equal(o Value) bool {
	if isNumeric(v.kind) && isNumeric(o.kind) {
		if v.kind == KindInt && o.kind == KindInt {
			return v.i == o.i
		}
		return v.Float() == o.Float()
	}

	if v.kind != o.kind {
		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindString:
		return v.s == o.s
	case KindArray:
		if len(v.a) != len(o.a) {
			return false
		}
		for i := range v.a {
			if !v.a[i].Equal(o.a[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if v.m.Len() != o.m.Len() {
			return false
		}
		for _, key := range v.m.Keys() {
			ours, _ := v.m.Get(key)
			theirs, ok := o.m.Get(key)
			if !ok || !ours.Equal(theirs) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String returns the compact JSON form, for logging and debugging.
func (v Value) String() string {
	s, err := v.JSON()
	if err != nil {
		return "<invalid value>"
	}
	return s
}

func isNumeric(k Kind) bool {
	return k == KindInt || k == KindFloat
}

// Map is an insertion-ordered string to Value mapping.
type Map struct {
	keys []string
	idx  map[string]int
	vals []Value
}

// NewMap creates an empty ordered map.
func NewMap() *Map {
	return &Map{idx: make(map[string]int)}
}

// Set inserts or replaces the entry for key. Insertion order is preserved;
// replacing keeps the key's original position.
func (m *Map) Set(key string, v Value) {
	if i, ok := m.idx[key]; ok {
		m.vals[i] = v
		return
	}
	m.idx[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.vals = append(m.vals, v)
}

// Get returns the entry for key.
func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return Null(), false
	}
	i, ok := m.idx[key]
	if !ok {
		return Null(), false
	}
	return m.vals[i], true
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order. The slice must not be mutated.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}

// At returns the entry at position i in insertion order.
func (m *Map) At(i int) (string, Value) {
	return m.keys[i], m.vals[i]
}
