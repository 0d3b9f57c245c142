// Package eval provides a CEL (Common Expression Language) evaluator for
// template-side conditions.
//
// The data context of the enclosing render is bound to the `data` variable.
//
// Example usage:
//
//	evaluator := eval.NewEvaluator()
//
//	vars := map[string]interface{}{
//	    "data": map[string]interface{}{
//	        "priority": "high",
//	        "score":    0.95,
//	    },
//	}
//
//	result, err := evaluator.Evaluate(ctx, "data.priority == 'high'", vars)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	matched := result.(bool) // true
package eval
