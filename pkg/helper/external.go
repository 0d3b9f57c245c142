package helper

import (
	"fmt"
	"sync"
)

// HostGate serializes entry into an external handler runtime. A handler
// re-entering the engine through its BlockHandle has the gate released for
// the duration of the nested render and re-acquired afterwards, so nested
// external helper calls cannot deadlock.
type HostGate struct {
	mu sync.Mutex
}

// NewHostGate creates a gate.
func NewHostGate() *HostGate {
	return &HostGate{}
}

func (g *HostGate) enter() {
	g.mu.Lock()
}

func (g *HostGate) leave() {
	g.mu.Unlock()
}

// ExternalFunc is the boundary signature of an external handler. The
// invocation's parameters, hash options and data context arrive as JSON
// text (standard grammar, UTF-8, no framing); the block handle is passed by
// reference and is only valid until the handler returns. The result must be
// a string.
type ExternalFunc func(paramsJSON, hashJSON, contextJSON string, block *BlockHandle) (interface{}, error)

type externalHelper struct {
	name  string
	arity int
	fn    ExternalFunc
	gate  *HostGate
}

// NewExternal wraps an external handler as a Helper. The handler requires no
// positional parameters unless the engine layers its own check on top. A nil
// gate disables host-runtime serialization.
func NewExternal(name string, fn ExternalFunc, gate *HostGate) Helper {
	return &externalHelper{name: name, fn: fn, gate: gate}
}

func (h *externalHelper) Arity() int {
	return h.arity
}

// Invoke serializes the invocation across the boundary, calls the handler
// exactly once under the host gate and classifies its outcome. A handler
// panic or returned error becomes *HandlerExecutionError; a non-string
// result becomes *InvalidHandlerResultError. No fault escapes uncontrolled.
func (h *externalHelper) Invoke(inv *Invocation, block *BlockHandle) (string, error) {
	paramsJSON, err := inv.ParamsJSON()
	if err != nil {
		return "", err
	}
	hashJSON, err := inv.HashJSON()
	if err != nil {
		return "", err
	}
	contextJSON, err := inv.ContextJSON()
	if err != nil {
		return "", err
	}

	if h.gate != nil {
		h.gate.enter()
		defer h.gate.leave()
		block.bindGate(h.gate)
		defer block.bindGate(nil)
	}

	result, err := h.call(paramsJSON, hashJSON, contextJSON, block)
	if err != nil {
		return "", &HandlerExecutionError{Helper: h.name, Message: err.Error(), Err: err}
	}

	text, ok := result.(string)
	if !ok {
		return "", &InvalidHandlerResultError{Helper: h.name, Result: result}
	}
	return text, nil
}

// call invokes the handler, converting a panic into an ordinary error.
func (h *externalHelper) call(paramsJSON, hashJSON, contextJSON string, block *BlockHandle) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			if perr, ok := r.(error); ok {
				err = perr
				return
			}
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return h.fn(paramsJSON, hashJSON, contextJSON, block)
}
