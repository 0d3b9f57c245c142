// Package engine provides a Handlebars template engine whose helpers are
// routed through the helper extension bridge.
//
// The engine owns named templates, partials and a per-instance helper
// registry. Every helper reference in a template dispatches through the
// bridge: the engine snapshots the call into a helper.Invocation, hands the
// helper a call-scoped helper.BlockHandle for the main and else blocks, and
// splices the returned text verbatim into the output.
//
// Example usage:
//
//	eng := engine.New(logger)
//	eng.RegisterExtraHelpers()
//
//	_ = eng.RegisterTemplate("greeting", "{{#ifEquals role \"admin\"}}Welcome back{{else}}Hello{{/ifEquals}}, {{name}}!")
//
//	out, err := eng.Render("greeting", map[string]interface{}{
//	    "role": "admin",
//	    "name": "Ada",
//	})
//	// out == "Welcome back, Ada!"
//
// External handlers join the same contract over a JSON boundary:
//
//	eng.RegisterExternalHelper("shout", func(paramsJSON, hashJSON, contextJSON string, block *helper.BlockHandle) (interface{}, error) {
//	    body, err := block.RenderMain()
//	    if err != nil {
//	        return nil, err
//	    }
//	    return strings.ToUpper(body), nil
//	})
//
// Built-in helpers registered by RegisterExtraHelpers:
//   - ifEquals     - render main block on structural equality
//   - unlessEquals - render main block on inequality
//   - json         - serialize a value to compact or indented JSON
//   - when         - render main block when a CEL expression holds
package engine
