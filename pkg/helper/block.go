package helper

import (
	"sync/atomic"

	"github.com/tidwall/gjson"
)

// RenderFunc renders one nested template region against the invocation's
// data context and returns the produced text.
type RenderFunc func() (string, error)

// BlockHandle is the call-scoped capability through which a helper renders
// the invocation's main and inverse (else) blocks. The dispatcher expires
// the handle when the invocation returns; any later use fails with
// ErrHandleExpired. A handle must not be shared across goroutines.
type BlockHandle struct {
	inv     *Invocation
	main    RenderFunc
	inverse RenderFunc
	gate    *HostGate
	expired atomic.Bool
}

// NewBlockHandle builds a handle over the main and inverse render functions.
// A nil function marks the corresponding block as absent; rendering an
// absent block yields the empty string.
func NewBlockHandle(inv *Invocation, main, inverse RenderFunc) *BlockHandle {
	return &BlockHandle{inv: inv, main: main, inverse: inverse}
}

// RenderMain renders the main block. It may be called any number of times
// while the owning invocation is live.
func (h *BlockHandle) RenderMain() (string, error) {
	return h.render(h.main)
}

// RenderInverse renders the inverse (else) block.
func (h *BlockHandle) RenderInverse() (string, error) {
	return h.render(h.inverse)
}

func (h *BlockHandle) render(fn RenderFunc) (string, error) {
	if h.expired.Load() {
		return "", ErrHandleExpired
	}
	if fn == nil {
		return "", nil
	}

	// A handler re-entering the engine must not hold its host gate across
	// the nested render, or a nested external helper would deadlock.
	if h.gate != nil {
		h.gate.leave()
		defer h.gate.enter()
	}
	return fn()
}

// HashValueJSON returns the JSON text of a single named option without the
// handler having to parse the bulk hash blob.
func (h *BlockHandle) HashValueJSON(key string) (string, bool) {
	if h.expired.Load() {
		return "", false
	}
	v, ok := h.inv.HashValue(key)
	if !ok {
		return "", false
	}
	text, err := v.JSON()
	if err != nil {
		return "", false
	}
	return text, true
}

// ContextJSON returns the invocation's data context as JSON text.
func (h *BlockHandle) ContextJSON() (string, error) {
	if h.expired.Load() {
		return "", ErrHandleExpired
	}
	return h.inv.ContextJSON()
}

// ContextValueJSON extracts one path from the data context JSON (gjson path
// syntax, e.g. "user.roles.0") and returns its raw JSON text.
func (h *BlockHandle) ContextValueJSON(path string) (string, bool) {
	if h.expired.Load() {
		return "", false
	}
	blob, err := h.inv.ContextJSON()
	if err != nil {
		return "", false
	}
	res := gjson.Get(blob, path)
	if !res.Exists() {
		return "", false
	}
	return res.Raw, true
}

// Expire invalidates the handle. The dispatcher calls this when the owning
// invocation returns; helpers never need to.
func (h *BlockHandle) Expire() {
	h.expired.Store(true)
}

// bindGate attaches the host gate released around nested renders issued
// from an external handler.
func (h *BlockHandle) bindGate(g *HostGate) {
	h.gate = g
}
