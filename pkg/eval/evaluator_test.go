package eval

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateComparison(t *testing.T) {
	e := NewEvaluator()

	out, err := e.Evaluate(context.Background(), "data.score > 0.5", map[string]interface{}{
		"data": map[string]interface{}{"score": 0.9},
	})
	require.NoError(t, err)
	assert.Equal(t, true, out)

	out, err = e.Evaluate(context.Background(), "data.score > 0.5", map[string]interface{}{
		"data": map[string]interface{}{"score": 0.1},
	})
	require.NoError(t, err)
	assert.Equal(t, false, out)
}

func TestEvaluateStringOps(t *testing.T) {
	e := NewEvaluator()

	out, err := e.Evaluate(context.Background(), `data.role == "admin"`, map[string]interface{}{
		"data": map[string]interface{}{"role": "admin"},
	})
	require.NoError(t, err)
	assert.Equal(t, true, out)
}

func TestEvaluateMissingField(t *testing.T) {
	e := NewEvaluator()

	_, err := e.Evaluate(context.Background(), "data.missing > 1", map[string]interface{}{
		"data": map[string]interface{}{},
	})
	assert.Error(t, err)
}

func TestEvaluateInvalidExpression(t *testing.T) {
	e := NewEvaluator()

	_, err := e.Evaluate(context.Background(), "data.score >", map[string]interface{}{
		"data": map[string]interface{}{},
	})
	assert.Error(t, err)
}

func TestValidateExpression(t *testing.T) {
	e := NewEvaluator()
	assert.NoError(t, e.ValidateExpression("data.a == data.b"))
	assert.Error(t, e.ValidateExpression("data.a =="))
}

func TestProgramCache(t *testing.T) {
	e := NewEvaluator()
	vars := map[string]interface{}{"data": map[string]interface{}{"n": int64(1)}}

	out, err := e.Evaluate(context.Background(), "data.n + 1", vars)
	require.NoError(t, err)
	assert.Equal(t, int64(2), out)

	// Cached program yields the same result.
	out, err = e.Evaluate(context.Background(), "data.n + 1", vars)
	require.NoError(t, err)
	assert.Equal(t, int64(2), out)

	e.ClearCache()
	out, err = e.Evaluate(context.Background(), "data.n + 1", vars)
	require.NoError(t, err)
	assert.Equal(t, int64(2), out)
}
