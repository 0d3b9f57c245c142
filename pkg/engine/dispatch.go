package engine

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/aymerick/raymond"

	"github.com/aescanero/dago-template/pkg/helper"
	"github.com/aescanero/dago-template/pkg/value"
)

var (
	optionsType    = reflect.TypeOf((*raymond.Options)(nil))
	safeStringType = reflect.TypeOf(raymond.SafeString(""))
	paramArgType   = reflect.TypeOf((*interface{})(nil)).Elem()
)

// trampoline builds the raymond-side helper function bound to a template for
// the given name. raymond rejects a helper whose parameter count differs
// from the call site's, so the reflected signature takes exactly paramCount
// untyped positional arguments (as scanned from the template) plus the
// trailing options. The positional arguments are ignored; dispatch reads
// them from the options so the bridge sees every call uniformly.
//
// The helper is resolved through the registry at call time, so
// re-registration takes effect without rebinding, and dispatch errors are
// reported by panicking with the error value, which raymond recovers into
// the render call's error result.
func (e *Engine) trampoline(name string, paramCount int) interface{} {
	in := make([]reflect.Type, paramCount+1)
	for i := 0; i < paramCount; i++ {
		in[i] = paramArgType
	}
	in[paramCount] = optionsType
	fnType := reflect.FuncOf(in, []reflect.Type{safeStringType}, false)

	fn := reflect.MakeFunc(fnType, func(args []reflect.Value) []reflect.Value {
		options := args[len(args)-1].Interface().(*raymond.Options)

		text, err := e.dispatch(name, options)
		if err != nil {
			panic(err)
		}
		// The helper's text is spliced verbatim; the bridge performs no
		// escaping of its own.
		return []reflect.Value{reflect.ValueOf(raymond.SafeString(text))}
	})
	return fn.Interface()
}

// dispatch routes one helper invocation through the bridge: it snapshots
// the call, checks the helper's required parameters, scopes a block handle
// to the call and invokes the helper.
func (e *Engine) dispatch(name string, options *raymond.Options) (string, error) {
	h, registered := e.helpers.Lookup(name)
	if !registered {
		if e.StrictMode() {
			return "", &helper.UnknownHelperError{Name: name}
		}
		return "", nil
	}

	inv, err := e.newInvocation(name, options)
	if err != nil {
		return "", err
	}

	if need := h.Arity(); len(inv.Params()) < need {
		return "", &helper.MissingParameterError{Helper: name, Index: len(inv.Params())}
	}

	block := helper.NewBlockHandle(inv, blockRenderer(options.Fn), blockRenderer(options.Inverse))
	defer block.Expire()

	text, err := h.Invoke(inv, block)
	if err != nil {
		return "", fmt.Errorf("helper %q failed: %w", name, err)
	}
	return text, nil
}

// newInvocation encodes the resolved parameters, hash options and data
// context of a call into the neutral value model. Hash keys are encoded in
// sorted order so that the JSON projection is deterministic.
func (e *Engine) newInvocation(name string, options *raymond.Options) (*helper.Invocation, error) {
	raw := options.Params()
	params := make([]value.Value, 0, len(raw))
	for i, p := range raw {
		v, err := value.Encode(p)
		if err != nil {
			return nil, fmt.Errorf("helper %q: parameter %d: %w", name, i, err)
		}
		params = append(params, v)
	}

	rawHash := options.Hash()
	keys := make([]string, 0, len(rawHash))
	for k := range rawHash {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	hash := value.NewMap()
	for _, k := range keys {
		v, err := value.Encode(rawHash[k])
		if err != nil {
			return nil, fmt.Errorf("helper %q: hash option %q: %w", name, k, err)
		}
		hash.Set(k, v)
	}

	ctx, err := value.Encode(options.Ctx())
	if err != nil {
		return nil, fmt.Errorf("helper %q: data context: %w", name, err)
	}

	return helper.NewInvocation(name, params, hash, ctx), nil
}

// blockRenderer adapts a raymond block function to the bridge's RenderFunc,
// recovering panics raised by the nested render into *helper.RenderError so
// the helper can catch, wrap or return them.
func blockRenderer(fn func() string) helper.RenderFunc {
	return func() (out string, err error) {
		defer func() {
			if r := recover(); r != nil {
				if rerr, ok := r.(error); ok {
					err = &helper.RenderError{Err: rerr}
					return
				}
				err = &helper.RenderError{Err: fmt.Errorf("%v", r)}
			}
		}()
		return fn(), nil
	}
}
