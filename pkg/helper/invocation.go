package helper

import (
	"github.com/aescanero/dago-template/pkg/value"
)

// Invocation is the immutable snapshot of a single helper call: resolved
// positional parameters, named hash options and the data context visible at
// the call site. Path lookups have already been performed; a helper never
// sees unresolved expressions.
type Invocation struct {
	helper string
	params []value.Value
	hash   *value.Map
	ctx    value.Value
}

// NewInvocation builds an invocation snapshot. A nil hash yields an empty
// one.
func NewInvocation(helperName string, params []value.Value, hash *value.Map, ctx value.Value) *Invocation {
	if hash == nil {
		hash = value.NewMap()
	}
	return &Invocation{
		helper: helperName,
		params: params,
		hash:   hash,
		ctx:    ctx,
	}
}

// Helper returns the name the helper was invoked under.
func (inv *Invocation) Helper() string {
	return inv.helper
}

// Params returns the positional parameters in invocation order. The slice
// must not be mutated.
func (inv *Invocation) Params() []value.Value {
	return inv.params
}

// Param returns the positional parameter at index i.
func (inv *Invocation) Param(i int) (value.Value, bool) {
	if i < 0 || i >= len(inv.params) {
		return value.Null(), false
	}
	return inv.params[i], true
}

// Hash returns the named options. Key order carries no meaning.
func (inv *Invocation) Hash() *value.Map {
	return inv.hash
}

// HashValue returns the named option for key.
func (inv *Invocation) HashValue(key string) (value.Value, bool) {
	return inv.hash.Get(key)
}

// Context returns the data context active at the call site.
func (inv *Invocation) Context() value.Value {
	return inv.ctx
}

// ParamsJSON returns the positional parameters as a JSON array.
func (inv *Invocation) ParamsJSON() (string, error) {
	return value.Array(inv.params...).JSON()
}

// HashJSON returns the named options as a JSON object.
func (inv *Invocation) HashJSON() (string, error) {
	return value.Object(inv.hash).JSON()
}

// ContextJSON returns the data context as JSON text.
func (inv *Invocation) ContextJSON() (string, error) {
	return inv.ctx.JSON()
}
