package engine

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/aymerick/raymond"
	"go.uber.org/zap"

	"github.com/aescanero/dago-template/pkg/eval"
	"github.com/aescanero/dago-template/pkg/helper"
)

// Engine renders Handlebars templates and dispatches helper references
// through the helper extension bridge.
//
// Registering helpers or templates while a render referencing the same name
// is in flight must be synchronized by the caller; once registration has
// settled, concurrent renders are safe.
type Engine struct {
	mu           sync.RWMutex
	templates    map[string]*boundTemplate
	sources      map[string]string
	cache        map[string]*boundTemplate
	partials     map[string]string
	partialUsage map[string]*helperUsage
	helpers      *helper.Registry
	gate         *helper.HostGate
	evaluator    *eval.Evaluator
	logger       *zap.Logger
	strict       bool
	dev          bool
}

// boundTemplate pairs a compiled template with its scanned helper call
// sites and the names already bound to it, since raymond rejects double
// registration and requires each bound function's parameter count to match
// the call site.
type boundTemplate struct {
	tpl      *raymond.Template
	usage    *helperUsage
	bound    map[string]int
	partials map[string]struct{}
}

// New creates a template engine. A nil logger disables logging.
func New(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		templates:    make(map[string]*boundTemplate),
		sources:      make(map[string]string),
		cache:        make(map[string]*boundTemplate),
		partials:     make(map[string]string),
		partialUsage: make(map[string]*helperUsage),
		helpers:      helper.NewRegistry(),
		gate:         helper.NewHostGate(),
		evaluator:    eval.NewEvaluator(),
		logger:       logger,
	}
}

// SetStrictMode controls whether a reference to an unknown helper aborts the
// render instead of producing empty output.
func (e *Engine) SetStrictMode(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.strict = enabled
}

// StrictMode reports whether strict mode is enabled.
func (e *Engine) StrictMode() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.strict
}

// SetDevMode controls development mode, in which templates are recompiled
// from their stored source on every render.
func (e *Engine) SetDevMode(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dev = enabled
}

// DevMode reports whether development mode is enabled.
func (e *Engine) DevMode() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.dev
}

// RegisterTemplate compiles and registers a template under the given name,
// replacing any previous registration.
func (e *Engine) RegisterTemplate(name, source string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	bt, err := e.compileLocked(source)
	if err != nil {
		return fmt.Errorf("failed to compile template %q: %w", name, err)
	}

	e.templates[name] = bt
	e.sources[name] = source
	e.logger.Debug("template registered", zap.String("name", name))
	return nil
}

// RegisterTemplateFile reads a template from disk and registers it under the
// given name.
func (e *Engine) RegisterTemplateFile(name, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read template file %q: %w", path, err)
	}
	return e.RegisterTemplate(name, string(data))
}

// RegisterTemplatesDirectory walks dir and registers every file with the
// given extension. Template names are slash-separated paths relative to dir
// with the extension removed. An empty extension defaults to ".hbs".
func (e *Engine) RegisterTemplatesDirectory(dir, ext string) error {
	if ext == "" {
		ext = ".hbs"
	}

	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ext) {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(strings.TrimSuffix(rel, ext))
		return e.RegisterTemplateFile(name, path)
	})
}

// RegisterPartial registers a partial available to all templates of this
// engine. Partials cannot be replaced once registered.
func (e *Engine) RegisterPartial(name, source string) error {
	if _, err := raymond.Parse(source); err != nil {
		return fmt.Errorf("failed to compile partial %q: %w", name, err)
	}

	// Helper calls inside a partial resolve against the including
	// template's bindings, so its call sites count towards them.
	usage, err := scanHelperUsage(source)
	if err != nil {
		return fmt.Errorf("failed to compile partial %q: %w", name, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.partials[name]; exists {
		return fmt.Errorf("partial %q is already registered", name)
	}
	e.partials[name] = source
	e.partialUsage[name] = usage
	e.rebindLocked()
	e.logger.Debug("partial registered", zap.String("name", name))
	return nil
}

// UnregisterTemplate removes the template registered under name, if any.
func (e *Engine) UnregisterTemplate(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.templates, name)
	delete(e.sources, name)
	e.logger.Debug("template unregistered", zap.String("name", name))
}

// HasTemplate reports whether a template is registered under name.
func (e *Engine) HasTemplate(name string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.templates[name]
	return ok
}

// Templates returns the registered template names in sorted order.
func (e *Engine) Templates() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.templates))
	for name := range e.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterHelper registers a helper under name, replacing any previous
// registration. The replacement takes effect on the next dispatch.
func (e *Engine) RegisterHelper(name string, h helper.Helper) {
	e.helpers.Register(name, h)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.rebindLocked()
	e.logger.Debug("helper registered", zap.String("name", name))
}

// RegisterExternalHelper registers an external handler as a helper. The
// handler runs under the engine's host gate.
func (e *Engine) RegisterExternalHelper(name string, fn helper.ExternalFunc) {
	e.RegisterHelper(name, helper.NewExternal(name, fn, e.gate))
}

// UnregisterHelper removes the helper registered under name. Templates that
// still reference it fail in strict mode and render empty output otherwise.
func (e *Engine) UnregisterHelper(name string) {
	e.helpers.Unregister(name)
	e.logger.Debug("helper unregistered", zap.String("name", name))
}

// RegisterExtraHelpers registers the built-in helpers (ifEquals,
// unlessEquals, json) plus the CEL-backed when helper.
func (e *Engine) RegisterExtraHelpers() {
	for name, h := range helper.Builtins() {
		e.RegisterHelper(name, h)
	}
	e.RegisterHelper("when", helper.NewWhen(e.evaluator))
}

// Render renders the template registered under name with the given data.
func (e *Engine) Render(name string, data interface{}) (string, error) {
	bt, err := e.namedTemplate(name)
	if err != nil {
		return "", err
	}

	result, err := bt.tpl.Exec(normalizeData(data))
	if err != nil {
		return "", fmt.Errorf("failed to render template %q: %w", name, err)
	}
	return result, nil
}

// RenderJSON renders the template registered under name with data supplied
// as JSON text. Numbers keep their exact representation.
func (e *Engine) RenderJSON(name, dataJSON string) (string, error) {
	var data interface{}
	dec := json.NewDecoder(strings.NewReader(dataJSON))
	dec.UseNumber()
	if err := dec.Decode(&data); err != nil {
		return "", fmt.Errorf("invalid JSON data: %w", err)
	}
	return e.Render(name, data)
}

// RenderTemplate renders a one-off template source without registering it.
// Compiled sources are cached unless development mode is enabled.
func (e *Engine) RenderTemplate(source string, data interface{}) (string, error) {
	bt, err := e.sourceTemplate(source)
	if err != nil {
		return "", fmt.Errorf("failed to compile template: %w", err)
	}

	result, err := bt.tpl.Exec(normalizeData(data))
	if err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}
	return result, nil
}

// normalizeData substitutes an empty map for nil data, which raymond cannot
// evaluate a context against.
func normalizeData(data interface{}) interface{} {
	if data == nil {
		return map[string]interface{}{}
	}
	return data
}

// ValidateTemplate validates a template source without rendering it.
func (e *Engine) ValidateTemplate(source string) error {
	_, err := raymond.Parse(source)
	return err
}

// ClearCache clears the one-off template cache.
func (e *Engine) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = make(map[string]*boundTemplate)
}

// namedTemplate returns the compiled template for name, recompiling from
// the stored source in development mode.
func (e *Engine) namedTemplate(name string) (*boundTemplate, error) {
	e.mu.RLock()
	bt, ok := e.templates[name]
	dev := e.dev
	e.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("template %q is not registered", name)
	}
	if !dev {
		return bt, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	source, ok := e.sources[name]
	if !ok {
		return nil, fmt.Errorf("template %q is not registered", name)
	}
	fresh, err := e.compileLocked(source)
	if err != nil {
		return nil, fmt.Errorf("failed to compile template %q: %w", name, err)
	}
	e.templates[name] = fresh
	return fresh, nil
}

// sourceTemplate gets a compiled one-off template from cache or compiles it.
func (e *Engine) sourceTemplate(source string) (*boundTemplate, error) {
	e.mu.RLock()
	if bt, ok := e.cache[source]; ok && !e.dev {
		e.mu.RUnlock()
		return bt, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if bt, ok := e.cache[source]; ok && !e.dev {
		return bt, nil
	}

	bt, err := e.compileLocked(source)
	if err != nil {
		return nil, err
	}

	if !e.dev {
		e.cache[source] = bt
	}
	return bt, nil
}

// compileLocked parses a source and binds the current helpers and partials
// to it. Callers must hold the write lock.
func (e *Engine) compileLocked(source string) (*boundTemplate, error) {
	tpl, err := raymond.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	usage, err := scanHelperUsage(source)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	bt := &boundTemplate{
		tpl:      tpl,
		usage:    usage,
		bound:    make(map[string]int),
		partials: make(map[string]struct{}),
	}
	if err := e.bindLocked(bt); err != nil {
		return nil, err
	}
	return bt, nil
}

// bindLocked attaches dispatch trampolines for the registered helper names
// the template's call sites reference and registers pending partials on it.
// Each trampoline's parameter count comes from the scanned call sites,
// merged with those of the engine's partials since partial bodies resolve
// helpers against the including template.
func (e *Engine) bindLocked(bt *boundTemplate) error {
	usage := bt.usage.clone()
	for _, partial := range e.partialUsage {
		usage.merge(partial)
	}

	for name, count := range usage.counts {
		if _, registered := e.helpers.Lookup(name); !registered {
			continue
		}
		if _, alreadyBound := bt.bound[name]; alreadyBound {
			continue
		}
		if usage.conflicted(name) {
			return fmt.Errorf("helper %q is called with differing parameter counts", name)
		}
		bt.tpl.RegisterHelper(name, e.trampoline(name, count))
		bt.bound[name] = count
	}

	for name, source := range e.partials {
		if _, bound := bt.partials[name]; bound {
			continue
		}
		bt.tpl.RegisterPartial(name, source)
		bt.partials[name] = struct{}{}
	}
	return nil
}

// rebindLocked refreshes the bindings of every compiled template. A binding
// that can no longer be satisfied leaves the template as compiled and is
// surfaced in the log.
func (e *Engine) rebindLocked() {
	for name, bt := range e.templates {
		if err := e.bindLocked(bt); err != nil {
			e.logger.Error("helper binding failed",
				zap.String("template", name),
				zap.Error(err),
			)
		}
	}
	for _, bt := range e.cache {
		if err := e.bindLocked(bt); err != nil {
			e.logger.Error("helper binding failed", zap.Error(err))
		}
	}
}
