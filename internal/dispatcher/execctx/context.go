// Package execctx provides the execution context passed to command handlers.
package execctx

import (
	"github.com/dshills/pyselect/internal/block"
	"github.com/dshills/pyselect/internal/engine"
	"github.com/dshills/pyselect/internal/engine/buffer"
	"github.com/dshills/pyselect/internal/logging"
)

// EngineInterface is the document state handlers operate on.
// *engine.Engine satisfies it.
type EngineInterface interface {
	// State returns a consistent buffer snapshot and selection pair.
	State() (*buffer.Snapshot, engine.Selection)

	// LineCount returns the number of lines in the document.
	LineCount() int

	// LineLen returns the length of a line in bytes.
	LineLen(line int) int

	// Selection returns the current selection.
	Selection() engine.Selection

	// SetSelection replaces the selection without recording history.
	SetSelection(sel engine.Selection)

	// ExpandSelection replaces the selection and records the previous one.
	ExpandSelection(sel engine.Selection)

	// ShrinkSelection restores the selection before the last expansion.
	ShrinkSelection() error

	// RegrowSelection re-applies the last shrunk expansion.
	RegrowSelection() error

	// Path returns the document path, if any.
	Path() string

	// LanguageID returns the document language identifier.
	LanguageID() string
}

var _ EngineInterface = (*engine.Engine)(nil)

// RendererInterface is the view a handler can move.
type RendererInterface interface {
	// ScrollTo scrolls so that the given position is visible.
	ScrollTo(line, col int)

	// CenterOnLine centers the view on a line.
	CenterOnLine(line int)

	// IsLineVisible reports whether a line is currently on screen.
	IsLineVisible(line int) bool

	// VisibleLineRange returns the first and last visible lines.
	VisibleLineRange() (start, end int)
}

// LanguageGuard decides whether a document is eligible for block commands.
type LanguageGuard interface {
	Matches(path, languageID string) bool
}

// ExecutionContext provides context for command execution.
type ExecutionContext struct {
	// Engine provides access to the document and its selection.
	Engine EngineInterface

	// Renderer provides view operations. It is nil for headless hosts.
	Renderer RendererInterface

	// Resolver computes block ranges.
	Resolver *block.Resolver

	// Languages filters documents by language. Nil admits everything.
	Languages LanguageGuard

	// Logger receives handler diagnostics.
	Logger *logging.Logger

	// Count is the repeat count (1 if not specified).
	Count int

	// Data holds handler-specific context data.
	Data map[string]any
}

// New creates a new execution context.
func New() *ExecutionContext {
	return &ExecutionContext{
		Count:  1,
		Logger: logging.NullLogger,
		Data:   make(map[string]any),
	}
}

// WithEngine returns the context with the engine set.
func (ctx *ExecutionContext) WithEngine(e EngineInterface) *ExecutionContext {
	ctx.Engine = e
	return ctx
}

// WithRenderer returns the context with renderer set.
func (ctx *ExecutionContext) WithRenderer(renderer RendererInterface) *ExecutionContext {
	ctx.Renderer = renderer
	return ctx
}

// WithResolver returns the context with the resolver set.
func (ctx *ExecutionContext) WithResolver(r *block.Resolver) *ExecutionContext {
	ctx.Resolver = r
	return ctx
}

// WithLanguages returns the context with the language guard set.
func (ctx *ExecutionContext) WithLanguages(g LanguageGuard) *ExecutionContext {
	ctx.Languages = g
	return ctx
}

// WithLogger returns the context with the logger set.
func (ctx *ExecutionContext) WithLogger(l *logging.Logger) *ExecutionContext {
	if l != nil {
		ctx.Logger = l
	}
	return ctx
}

// WithCount returns the context with repeat count set.
func (ctx *ExecutionContext) WithCount(count int) *ExecutionContext {
	if count > 0 {
		ctx.Count = count
	}
	return ctx
}

// GetCount returns the repeat count, defaulting to 1.
func (ctx *ExecutionContext) GetCount() int {
	if ctx.Count <= 0 {
		return 1
	}
	return ctx.Count
}

// HasSelection returns true if the engine holds a non-empty selection.
func (ctx *ExecutionContext) HasSelection() bool {
	if ctx.Engine == nil {
		return false
	}
	return !ctx.Engine.Selection().IsEmpty()
}

// LanguageAllowed reports whether the engine's document passes the
// language guard.
func (ctx *ExecutionContext) LanguageAllowed() bool {
	if ctx.Languages == nil || ctx.Engine == nil {
		return true
	}
	return ctx.Languages.Matches(ctx.Engine.Path(), ctx.Engine.LanguageID())
}

// SetData sets a context data value.
func (ctx *ExecutionContext) SetData(key string, value any) {
	if ctx.Data == nil {
		ctx.Data = make(map[string]any)
	}
	ctx.Data[key] = value
}

// GetData retrieves a context data value.
func (ctx *ExecutionContext) GetData(key string) (any, bool) {
	if ctx.Data == nil {
		return nil, false
	}
	v, ok := ctx.Data[key]
	return v, ok
}

// GetDataString retrieves a string value from context data.
func (ctx *ExecutionContext) GetDataString(key string) string {
	if v, ok := ctx.GetData(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Validate checks that the context has all required components.
func (ctx *ExecutionContext) Validate() error {
	if ctx.Engine == nil {
		return ErrMissingEngine
	}
	return nil
}

// ValidateForResolve checks that the context can run block resolution.
func (ctx *ExecutionContext) ValidateForResolve() error {
	if err := ctx.Validate(); err != nil {
		return err
	}
	if ctx.Resolver == nil {
		return ErrMissingResolver
	}
	return nil
}
