// Package helper implements the helper extension bridge: the contract by
// which named handlers participate in template rendering.
//
// A Helper receives an immutable Invocation (positional parameters, named
// hash options and the data context at the call site, all resolved and
// encoded into the neutral value model) together with a call-scoped
// BlockHandle for rendering the invocation's main and inverse (else) blocks.
// It returns the text to splice into the output stream.
//
// Helpers come in two flavors: native helpers built with Func, and
// external-handler-backed helpers built with NewExternal, which exchange
// JSON text across the handler boundary and run under a HostGate.
//
// Example native block helper:
//
//	upperIf := helper.Func(1, func(inv *helper.Invocation, block *helper.BlockHandle) (string, error) {
//	    body, err := block.RenderMain()
//	    if err != nil {
//	        return "", err
//	    }
//	    if inv.Params()[0].Bool() {
//	        return strings.ToUpper(body), nil
//	    }
//	    return body, nil
//	})
//	registry.Register("upperIf", upperIf)
package helper
