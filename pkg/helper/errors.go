package helper

import (
	"errors"
	"fmt"
)

// ErrHandleExpired is returned by a BlockHandle used after its owning
// invocation has returned.
var ErrHandleExpired = errors.New("block render handle used after its invocation returned")

// MissingParameterError reports a helper invoked with fewer positional
// parameters than it requires. It is raised before the helper runs.
type MissingParameterError struct {
	Helper string
	Index  int
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("helper %q: missing required parameter at index %d", e.Helper, e.Index)
}

// UnknownHelperError reports a helper reference that no registered helper
// matches. Whether it aborts the render is the engine's strict-mode policy.
type UnknownHelperError struct {
	Name string
}

func (e *UnknownHelperError) Error() string {
	return fmt.Sprintf("unknown helper %q", e.Name)
}

// InvalidHandlerResultError reports an external handler that returned
// something other than a string.
type InvalidHandlerResultError struct {
	Helper string
	Result interface{}
}

func (e *InvalidHandlerResultError) Error() string {
	return fmt.Sprintf("helper %q: external handler returned %T, want string", e.Helper, e.Result)
}

// HandlerExecutionError reports an error or panic raised inside an external
// handler. The underlying cause, when available, is wrapped.
type HandlerExecutionError struct {
	Helper  string
	Message string
	Err     error
}

func (e *HandlerExecutionError) Error() string {
	return fmt.Sprintf("helper %q: handler execution failed: %s", e.Helper, e.Message)
}

func (e *HandlerExecutionError) Unwrap() error {
	return e.Err
}

// RenderError wraps an engine error raised while rendering a nested block.
// Handlers may inspect, wrap or return it.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("nested block render failed: %v", e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
