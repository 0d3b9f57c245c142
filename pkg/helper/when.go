package helper

import (
	"context"
	"fmt"

	"github.com/aescanero/dago-template/pkg/eval"
	"github.com/aescanero/dago-template/pkg/value"
)

// NewWhen returns a block helper that evaluates a CEL expression against the
// data context (bound as `data`) and renders the main block when the result
// is truthy, the inverse block otherwise.
//
//	{{#when "data.score > 0.8"}}premium{{else}}standard{{/when}}
func NewWhen(ev *eval.Evaluator) Helper {
	return Func(1, func(inv *Invocation, block *BlockHandle) (string, error) {
		expr, _ := inv.Param(0)
		if expr.Kind() != value.KindString {
			return "", fmt.Errorf("when: first parameter must be a string expression, got %s", expr.Kind())
		}

		vars := map[string]interface{}{
			"data": contextVars(inv.Context()),
		}
		out, err := ev.Evaluate(context.Background(), expr.Text(), vars)
		if err != nil {
			return "", fmt.Errorf("when: %w", err)
		}

		if truthy(out) {
			return block.RenderMain()
		}
		return block.RenderInverse()
	})
}

// contextVars coerces the data context into the map shape the evaluator
// declares for `data`. Non-object contexts are exposed under "this".
func contextVars(ctx value.Value) map[string]interface{} {
	decoded := value.Decode(ctx)
	if m, ok := decoded.(map[string]interface{}); ok {
		return m
	}
	return map[string]interface{}{"this": decoded}
}

func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int64:
		return t != 0
	case uint64:
		return t != 0
	case float64:
		return t != 0
	default:
		return true
	}
}
