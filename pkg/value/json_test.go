package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONCompact(t *testing.T) {
	m := NewMap()
	m.Set("b", Int(2))
	m.Set("a", Int(1))

	got, err := Object(m).JSON()
	require.NoError(t, err)
	assert.Equal(t, `{"b":2,"a":1}`, got)
}

func TestJSONScalars(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Null(), "null"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Int(-42), "-42"},
		{Float(1.5), "1.5"},
		{String("hi"), `"hi"`},
		{String(""), `""`},
		{Array(), "[]"},
		{Object(nil), "{}"},
	}

	for _, tt := range tests {
		got, err := tt.v.JSON()
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestJSONArray(t *testing.T) {
	got, err := Array(Int(1), Int(2), Int(3)).JSON()
	require.NoError(t, err)
	assert.Equal(t, "[1,2,3]", got)
}

func TestJSONNoHTMLEscaping(t *testing.T) {
	got, err := String("<a href=\"x\">&</a>").JSON()
	require.NoError(t, err)
	assert.Equal(t, `"<a href=\"x\">&</a>"`, got)
}

func TestJSONIndent(t *testing.T) {
	m := NewMap()
	m.Set("name", String("ada"))
	m.Set("tags", Array(String("a"), String("b")))

	got, err := Object(m).JSONIndent(2)
	require.NoError(t, err)
	want := `{
  "name": "ada",
  "tags": [
    "a",
    "b"
  ]
}`
	assert.Equal(t, want, got)
}

func TestJSONIndentWidthFallback(t *testing.T) {
	m := NewMap()
	m.Set("a", Int(1))

	got, err := Object(m).JSONIndent(0)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", got)

	got, err = Object(m).JSONIndent(4)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"a\": 1\n}", got)
}

func TestJSONEmptyContainersStayCompactWhenPretty(t *testing.T) {
	m := NewMap()
	m.Set("list", Array())
	m.Set("obj", Object(nil))

	got, err := Object(m).JSONIndent(2)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"list\": [],\n  \"obj\": {}\n}", got)
}

func TestParsePreservesKeyOrder(t *testing.T) {
	v, err := ParseString(`{"z":1,"a":{"y":2,"b":3},"m":[1,2]}`)
	require.NoError(t, err)
	require.Equal(t, KindObject, v.Kind())
	assert.Equal(t, []string{"z", "a", "m"}, v.Fields().Keys())

	inner, ok := v.Get("a")
	require.True(t, ok)
	assert.Equal(t, []string{"y", "b"}, inner.Fields().Keys())
}

func TestParseNumbers(t *testing.T) {
	v, err := ParseString(`[1, 1.5, 9007199254740993]`)
	require.NoError(t, err)
	assert.Equal(t, KindInt, v.Index(0).Kind())
	assert.Equal(t, KindFloat, v.Index(1).Kind())
	// Integers beyond float64's 53-bit mantissa survive exactly.
	assert.Equal(t, int64(9007199254740993), v.Index(2).Int())
}

func TestParseScalars(t *testing.T) {
	v, err := ParseString("null")
	require.NoError(t, err)
	assert.True(t, v.IsNull())

	v, err = ParseString(`"text"`)
	require.NoError(t, err)
	assert.Equal(t, "text", v.Text())

	v, err = ParseString("true")
	require.NoError(t, err)
	assert.True(t, v.Bool())
}

func TestParseRejectsInvalidInput(t *testing.T) {
	for _, bad := range []string{"", "{", `{"a":}`, "[1,]", `{"a":1} extra`, "1 2"} {
		_, err := ParseString(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	src := `{"name":"ada","score":0.92,"tags":["x","y"],"meta":{"b":2,"a":1},"none":null}`
	v, err := ParseString(src)
	require.NoError(t, err)

	out, err := v.JSON()
	require.NoError(t, err)
	assert.Equal(t, src, out)
}

func TestMarshalJSON(t *testing.T) {
	m := NewMap()
	m.Set("a", Int(1))

	data, err := Object(m).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))
}
