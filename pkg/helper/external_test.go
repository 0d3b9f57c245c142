package helper

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aescanero/dago-template/pkg/value"
)

func externalInvocation() *Invocation {
	hash := value.NewMap()
	hash.Set("mode", value.String("fast"))

	ctx := value.NewMap()
	ctx.Set("user", value.String("ada"))

	return NewInvocation("ext", []value.Value{value.Int(1), value.String("x")}, hash, value.Object(ctx))
}

func TestExternalHelperReceivesJSON(t *testing.T) {
	var gotParams, gotHash, gotCtx string
	h := NewExternal("ext", func(params, hash, ctx string, block *BlockHandle) (interface{}, error) {
		gotParams, gotHash, gotCtx = params, hash, ctx
		return "ok", nil
	}, NewHostGate())

	inv := externalInvocation()
	out, err := h.Invoke(inv, NewBlockHandle(inv, nil, nil))
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, `[1,"x"]`, gotParams)
	assert.Equal(t, `{"mode":"fast"}`, gotHash)
	assert.Equal(t, `{"user":"ada"}`, gotCtx)
}

func TestExternalHelperNilGate(t *testing.T) {
	h := NewExternal("ext", func(params, hash, ctx string, block *BlockHandle) (interface{}, error) {
		return "ok", nil
	}, nil)

	inv := externalInvocation()
	out, err := h.Invoke(inv, NewBlockHandle(inv, nil, nil))
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
}

func TestExternalHelperNonStringResult(t *testing.T) {
	h := NewExternal("ext", func(params, hash, ctx string, block *BlockHandle) (interface{}, error) {
		return 42, nil
	}, NewHostGate())

	inv := externalInvocation()
	_, err := h.Invoke(inv, NewBlockHandle(inv, nil, nil))
	require.Error(t, err)

	var invalidErr *InvalidHandlerResultError
	require.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, "ext", invalidErr.Helper)
	assert.Contains(t, invalidErr.Error(), "int")
}

func TestExternalHelperReturnedError(t *testing.T) {
	cause := errors.New("backend unavailable")
	h := NewExternal("ext", func(params, hash, ctx string, block *BlockHandle) (interface{}, error) {
		return nil, cause
	}, NewHostGate())

	inv := externalInvocation()
	_, err := h.Invoke(inv, NewBlockHandle(inv, nil, nil))
	require.Error(t, err)

	var execErr *HandlerExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, "ext", execErr.Helper)
	assert.ErrorIs(t, err, cause)
}

func TestExternalHelperPanic(t *testing.T) {
	h := NewExternal("ext", func(params, hash, ctx string, block *BlockHandle) (interface{}, error) {
		panic("something broke")
	}, NewHostGate())

	inv := externalInvocation()
	_, err := h.Invoke(inv, NewBlockHandle(inv, nil, nil))
	require.Error(t, err)

	var execErr *HandlerExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Contains(t, execErr.Message, "something broke")
}

func TestExternalHelperPanicWithError(t *testing.T) {
	cause := errors.New("typed failure")
	h := NewExternal("ext", func(params, hash, ctx string, block *BlockHandle) (interface{}, error) {
		panic(cause)
	}, NewHostGate())

	inv := externalInvocation()
	_, err := h.Invoke(inv, NewBlockHandle(inv, nil, nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
}

func TestExternalHelperBlockAccess(t *testing.T) {
	h := NewExternal("ext", func(params, hash, ctx string, block *BlockHandle) (interface{}, error) {
		main, err := block.RenderMain()
		if err != nil {
			return nil, err
		}
		inverse, err := block.RenderInverse()
		if err != nil {
			return nil, err
		}
		return main + "|" + inverse, nil
	}, NewHostGate())

	inv := externalInvocation()
	block := NewBlockHandle(inv,
		func() (string, error) { return "yes", nil },
		func() (string, error) { return "no", nil },
	)

	out, err := h.Invoke(inv, block)
	require.NoError(t, err)
	assert.Equal(t, "yes|no", out)
}

func TestExternalHelperHandleExpiresAfterInvocation(t *testing.T) {
	var leaked *BlockHandle
	h := NewExternal("ext", func(params, hash, ctx string, block *BlockHandle) (interface{}, error) {
		leaked = block
		return "ok", nil
	}, NewHostGate())

	inv := externalInvocation()
	block := NewBlockHandle(inv, func() (string, error) { return "main", nil }, nil)

	_, err := h.Invoke(inv, block)
	require.NoError(t, err)

	// Dispatch expires the handle once the invocation returns.
	block.Expire()
	_, err = leaked.RenderMain()
	assert.ErrorIs(t, err, ErrHandleExpired)
}

func TestExternalHelperNestedCallDoesNotDeadlock(t *testing.T) {
	gate := NewHostGate()

	inner := NewExternal("inner", func(params, hash, ctx string, block *BlockHandle) (interface{}, error) {
		return "inner", nil
	}, gate)

	outer := NewExternal("outer", func(params, hash, ctx string, block *BlockHandle) (interface{}, error) {
		return block.RenderMain()
	}, gate)

	inv := externalInvocation()
	// The main block of the outer call dispatches another external helper
	// under the same gate, as a nested render would.
	block := NewBlockHandle(inv, func() (string, error) {
		nested := NewBlockHandle(inv, nil, nil)
		return inner.Invoke(inv, nested)
	}, nil)

	out, err := outer.Invoke(inv, block)
	require.NoError(t, err)
	assert.Equal(t, "inner", out)
}
