package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// JSON returns the compact JSON form of the value. Object keys keep their
// insertion order.
func (v Value) JSON() (string, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v, "", ""); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// JSONIndent returns the pretty-printed JSON form using the given number of
// spaces per nesting level. Widths below one fall back to two spaces.
func (v Value) JSONIndent(width int) (string, error) {
	if width < 1 {
		width = 2
	}
	var buf bytes.Buffer
	if err := writeJSON(&buf, v, strings.Repeat(" ", width), ""); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// MarshalJSON implements json.Marshaler, producing the compact form.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v, "", ""); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeJSON serializes v into buf. A non-empty indent selects pretty
// printing; prefix is the accumulated indentation of the enclosing level.
func writeJSON(buf *bytes.Buffer, v Value, indent, prefix string) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindInt:
		buf.WriteString(strconv.FormatInt(v.i, 10))
	case KindFloat:
		data, err := json.Marshal(v.f)
		if err != nil {
			return &EncodingError{Reason: fmt.Sprintf("float %v has no JSON representation", v.f)}
		}
		buf.Write(data)
	case KindString:
		writeJSONString(buf, v.s)
	case KindArray:
		return writeJSONArray(buf, v.a, indent, prefix)
	case KindObject:
		return writeJSONObject(buf, v.m, indent, prefix)
	default:
		return &EncodingError{Reason: fmt.Sprintf("invalid value kind %d", v.kind)}
	}
	return nil
}

func writeJSONArray(buf *bytes.Buffer, elems []Value, indent, prefix string) error {
	if len(elems) == 0 {
		buf.WriteString("[]")
		return nil
	}

	inner := prefix + indent
	buf.WriteByte('[')
	for i, e := range elems {
		if i > 0 {
			buf.WriteByte(',')
		}
		if indent != "" {
			buf.WriteByte('\n')
			buf.WriteString(inner)
		}
		if err := writeJSON(buf, e, indent, inner); err != nil {
			return err
		}
	}
	if indent != "" {
		buf.WriteByte('\n')
		buf.WriteString(prefix)
	}
	buf.WriteByte(']')
	return nil
}

func writeJSONObject(buf *bytes.Buffer, m *Map, indent, prefix string) error {
	if m.Len() == 0 {
		buf.WriteString("{}")
		return nil
	}

	inner := prefix + indent
	buf.WriteByte('{')
	for i := 0; i < m.Len(); i++ {
		key, val := m.At(i)
		if i > 0 {
			buf.WriteByte(',')
		}
		if indent != "" {
			buf.WriteByte('\n')
			buf.WriteString(inner)
		}
		writeJSONString(buf, key)
		buf.WriteByte(':')
		if indent != "" {
			buf.WriteByte(' ')
		}
		if err := writeJSON(buf, val, indent, inner); err != nil {
			return err
		}
	}
	if indent != "" {
		buf.WriteByte('\n')
		buf.WriteString(prefix)
	}
	buf.WriteByte('}')
	return nil
}

// writeJSONString emits a JSON string literal without HTML escaping.
func writeJSONString(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	// Encode on a string cannot fail; it appends a trailing newline that we
	// strip here.
	_ = enc.Encode(s)
	buf.Truncate(buf.Len() - 1)
}

// Parse decodes JSON text into a Value, preserving object key order and
// exact integer precision.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := parseNext(dec)
	if err != nil {
		return Null(), fmt.Errorf("invalid JSON: %w", err)
	}

	// Reject trailing content after the first value.
	if _, err := dec.Token(); err != io.EOF {
		return Null(), fmt.Errorf("invalid JSON: unexpected trailing content")
	}
	return v, nil
}

// ParseString decodes a JSON string into a Value.
func ParseString(data string) (Value, error) {
	return Parse([]byte(data))
}

func parseNext(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Null(), err
	}
	return parseToken(dec, tok)
}

func parseToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		return encodeNumber(t)
	case json.Delim:
		switch t {
		case '[':
			return parseArray(dec)
		case '{':
			return parseObject(dec)
		default:
			return Null(), fmt.Errorf("unexpected delimiter %q", t.String())
		}
	default:
		return Null(), fmt.Errorf("unexpected token %v", tok)
	}
}

func parseArray(dec *json.Decoder) (Value, error) {
	elems := []Value{}
	for dec.More() {
		e, err := parseNext(dec)
		if err != nil {
			return Null(), err
		}
		elems = append(elems, e)
	}
	// Consume the closing ']'.
	if _, err := dec.Token(); err != nil {
		return Null(), err
	}
	return Array(elems...), nil
}

func parseObject(dec *json.Decoder) (Value, error) {
	m := NewMap()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Null(), err
		}
		key, ok := keyTok.(string)
		if !ok {
			return Null(), fmt.Errorf("object key is not a string: %v", keyTok)
		}

		val, err := parseNext(dec)
		if err != nil {
			return Null(), err
		}
		m.Set(key, val)
	}
	// Consume the closing '}'.
	if _, err := dec.Token(); err != nil {
		return Null(), err
	}
	return Object(m), nil
}
