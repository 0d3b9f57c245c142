package value

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// EncodingError reports an engine value that cannot be represented in the
// neutral value model.
type EncodingError struct {
	Reason string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("value encoding failed: %s", e.Reason)
}

// Encode converts an engine runtime value into a neutral Value.
//
// The common JSON-like shapes (nil, bool, integers, floats, strings,
// json.Number, []interface{}, map[string]interface{}) are converted directly.
// Map keys are emitted in sorted order so that encoding is deterministic.
// Anything else (structs, typed slices and maps) is converted through a JSON
// round-trip. Values with no JSON representation (NaN, infinities, channels,
// functions) fail with *EncodingError.
func Encode(v interface{}) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case *Map:
		return Object(t), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int(int64(t)), nil
	case int16:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint:
		return encodeUint(uint64(t))
	case uint8:
		return Int(int64(t)), nil
	case uint16:
		return Int(int64(t)), nil
	case uint32:
		return Int(int64(t)), nil
	case uint64:
		return encodeUint(t)
	case float32:
		return encodeFloat(float64(t))
	case float64:
		return encodeFloat(t)
	case json.Number:
		return encodeNumber(t)
	case []interface{}:
		elems := make([]Value, 0, len(t))
		for i, e := range t {
			ev, err := Encode(e)
			if err != nil {
				return Null(), fmt.Errorf("element %d: %w", i, err)
			}
			elems = append(elems, ev)
		}
		return Array(elems...), nil
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		m := NewMap()
		for _, k := range keys {
			ev, err := Encode(t[k])
			if err != nil {
				return Null(), fmt.Errorf("key %q: %w", k, err)
			}
			m.Set(k, ev)
		}
		return Object(m), nil
	default:
		return encodeReflect(v)
	}
}

// encodeReflect handles values outside the JSON-like core by marshaling and
// reparsing them. Struct fields keep their declaration order.
func encodeReflect(v interface{}) (Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Null(), &EncodingError{Reason: fmt.Sprintf("%T is not representable: %v", v, err)}
	}

	parsed, err := Parse(data)
	if err != nil {
		return Null(), &EncodingError{Reason: fmt.Sprintf("%T produced invalid JSON: %v", v, err)}
	}
	return parsed, nil
}

func encodeUint(u uint64) (Value, error) {
	if u > math.MaxInt64 {
		return Null(), &EncodingError{Reason: fmt.Sprintf("uint64 %d overflows int64", u)}
	}
	return Int(int64(u)), nil
}

func encodeFloat(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null(), &EncodingError{Reason: fmt.Sprintf("float %v has no JSON representation", f)}
	}
	return Float(f), nil
}

func encodeNumber(n json.Number) (Value, error) {
	if i, err := n.Int64(); err == nil {
		return Int(i), nil
	}
	if f, err := n.Float64(); err == nil {
		return encodeFloat(f)
	}
	return Null(), &EncodingError{Reason: fmt.Sprintf("number %q is not representable", n.String())}
}

// Decode converts a neutral Value back into the engine's JSON-like runtime
// representation: nil, bool, int64, float64, string, []interface{} and
// map[string]interface{}. Object insertion order is not observable in the
// engine model.
func Decode(v Value) interface{} {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindArray:
		out := make([]interface{}, len(v.a))
		for i, e := range v.a {
			out[i] = Decode(e)
		}
		return out
	case KindObject:
		out := make(map[string]interface{}, v.m.Len())
		for i := 0; i < v.m.Len(); i++ {
			k, e := v.m.At(i)
			out[k] = Decode(e)
		}
		return out
	default:
		return nil
	}
}
