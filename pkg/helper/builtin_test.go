package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aescanero/dago-template/pkg/value"
)

// invokeBlock runs a helper with canned main/inverse block output.
func invokeBlock(t *testing.T, h Helper, inv *Invocation) string {
	t.Helper()

	block := NewBlockHandle(inv,
		func() (string, error) { return "main", nil },
		func() (string, error) { return "else", nil },
	)
	defer block.Expire()

	out, err := h.Invoke(inv, block)
	require.NoError(t, err)
	return out
}

func TestBuiltinsNames(t *testing.T) {
	builtins := Builtins()
	assert.Contains(t, builtins, "ifEquals")
	assert.Contains(t, builtins, "unlessEquals")
	assert.Contains(t, builtins, "json")
}

func TestIfEquals(t *testing.T) {
	h := IfEquals()
	assert.Equal(t, 2, h.Arity())

	inv := NewInvocation("ifEquals", []value.Value{value.Int(1), value.Int(1)}, nil, value.Null())
	assert.Equal(t, "main", invokeBlock(t, h, inv))

	inv = NewInvocation("ifEquals", []value.Value{value.Int(1), value.Int(2)}, nil, value.Null())
	assert.Equal(t, "else", invokeBlock(t, h, inv))
}

func TestIfEqualsNumericUnification(t *testing.T) {
	inv := NewInvocation("ifEquals", []value.Value{value.Int(1), value.Float(1.0)}, nil, value.Null())
	assert.Equal(t, "main", invokeBlock(t, IfEquals(), inv))
}

func TestIfEqualsMixedKinds(t *testing.T) {
	inv := NewInvocation("ifEquals", []value.Value{value.String("1"), value.Int(1)}, nil, value.Null())
	assert.Equal(t, "else", invokeBlock(t, IfEquals(), inv))
}

func TestUnlessEquals(t *testing.T) {
	h := UnlessEquals()
	assert.Equal(t, 2, h.Arity())

	inv := NewInvocation("unlessEquals", []value.Value{value.String("a"), value.String("b")}, nil, value.Null())
	assert.Equal(t, "main", invokeBlock(t, h, inv))

	inv = NewInvocation("unlessEquals", []value.Value{value.String("a"), value.String("a")}, nil, value.Null())
	assert.Equal(t, "else", invokeBlock(t, h, inv))
}

func TestJSONHelperCompact(t *testing.T) {
	m := value.NewMap()
	m.Set("b", value.Int(2))
	m.Set("a", value.Int(1))

	inv := NewInvocation("json", []value.Value{value.Object(m)}, nil, value.Null())
	out, err := JSON().Invoke(inv, NewBlockHandle(inv, nil, nil))
	require.NoError(t, err)
	assert.Equal(t, `{"b":2,"a":1}`, out)
}

func TestJSONHelperPretty(t *testing.T) {
	m := value.NewMap()
	m.Set("a", value.Int(1))

	hash := value.NewMap()
	hash.Set("indent", value.Int(2))

	inv := NewInvocation("json", []value.Value{value.Object(m)}, hash, value.Null())
	out, err := JSON().Invoke(inv, NewBlockHandle(inv, nil, nil))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", out)
}

func TestJSONHelperIndentFallback(t *testing.T) {
	m := value.NewMap()
	m.Set("a", value.Int(1))

	// A non-numeric indent still selects pretty printing at two spaces.
	hash := value.NewMap()
	hash.Set("indent", value.String("yes"))

	inv := NewInvocation("json", []value.Value{value.Object(m)}, hash, value.Null())
	out, err := JSON().Invoke(inv, NewBlockHandle(inv, nil, nil))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", out)
}

func TestJSONHelperNoParameter(t *testing.T) {
	inv := NewInvocation("json", nil, nil, value.Null())
	out, err := JSON().Invoke(inv, NewBlockHandle(inv, nil, nil))
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestJSONHelperNull(t *testing.T) {
	inv := NewInvocation("json", []value.Value{value.Null()}, nil, value.Null())
	out, err := JSON().Invoke(inv, NewBlockHandle(inv, nil, nil))
	require.NoError(t, err)
	assert.Equal(t, "null", out)
}
