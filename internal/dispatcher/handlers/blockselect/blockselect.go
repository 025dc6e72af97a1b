// Package blockselect provides the commands that select Python blocks.
//
// pylineselect.select resolves the block at or after the current selection
// and selects it as whole lines, from column 0 of the first line to the end
// of the last. Dispatching it again extends the selection to the following
// block. The shrink and regrow commands walk back and forth through the
// selections replaced this way.
package blockselect

import (
	"github.com/dshills/pyselect/internal/block"
	"github.com/dshills/pyselect/internal/dispatcher/execctx"
	"github.com/dshills/pyselect/internal/dispatcher/handler"
	"github.com/dshills/pyselect/internal/engine/cursor"
)

// Command names.
const (
	ActionSelect   = "pylineselect.select"
	ActionShrink   = "pylineselect.shrink"
	ActionRegrow   = "pylineselect.regrow"
	ActionCollapse = "pylineselect.collapse"
)

// Commands lists every command the handler accepts.
var Commands = []string{ActionSelect, ActionShrink, ActionRegrow, ActionCollapse}

// Registrar is where the handler's commands get registered.
// *dispatcher.Dispatcher satisfies it.
type Registrar interface {
	RegisterHandler(h handler.Handler)
}

// Handler implements the block selection commands.
type Handler struct{}

// NewHandler creates a new block selection handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Register registers a new handler for all of its commands.
func Register(r Registrar) *Handler {
	h := NewHandler()
	r.RegisterHandler(h)
	return h
}

// Commands implements handler.Handler.
func (h *Handler) Commands() []string {
	return Commands
}

// Handle processes a block selection command.
func (h *Handler) Handle(action handler.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}

	switch action.Name {
	case ActionSelect:
		return h.selectBlock(ctx)
	case ActionShrink:
		return h.shrink(ctx)
	case ActionRegrow:
		return h.regrow(ctx)
	case ActionCollapse:
		return h.collapse(ctx)
	default:
		return handler.Errorf("unknown block selection action: %s", action.Name)
	}
}

// selectBlock resolves and applies up to count consecutive blocks.
// It is a no-op when the first resolution finds nothing.
func (h *Handler) selectBlock(ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.ValidateForResolve(); err != nil {
		return handler.Error(err)
	}
	if !ctx.LanguageAllowed() {
		return handler.NoOpWithMessage(execctx.ErrUnsupportedLanguage.Error())
	}

	var (
		last     block.Range
		selected int
	)
	for i := 0; i < ctx.GetCount(); i++ {
		snap, sel := ctx.Engine.State()

		r, err := ctx.Resolver.Resolve(snap, sel.ToBlock())
		if err != nil {
			if !block.IsNoSelection(err) {
				return handler.Error(err)
			}
			if selected == 0 {
				return handler.NoOpWithMessage(err.Error())
			}
			break
		}

		ctx.Engine.ExpandSelection(cursor.LineSelection(r, snap.LineLen(r.EndLine)))
		last = r
		selected++
	}

	end := ctx.Engine.Selection().Head
	return handler.Selected(last).
		WithScrollTo(end.Line, end.Column, false).
		WithSteps(selected)
}

func (h *Handler) shrink(ctx *execctx.ExecutionContext) handler.Result {
	for i := 0; i < ctx.GetCount(); i++ {
		if err := ctx.Engine.ShrinkSelection(); err != nil {
			if i == 0 {
				return handler.NoOpWithMessage(err.Error())
			}
			break
		}
	}
	return h.revealHead(ctx)
}

func (h *Handler) regrow(ctx *execctx.ExecutionContext) handler.Result {
	for i := 0; i < ctx.GetCount(); i++ {
		if err := ctx.Engine.RegrowSelection(); err != nil {
			if i == 0 {
				return handler.NoOpWithMessage(err.Error())
			}
			break
		}
	}
	return h.revealHead(ctx)
}

// collapse drops the selection to a cursor at its head.
func (h *Handler) collapse(ctx *execctx.ExecutionContext) handler.Result {
	sel := ctx.Engine.Selection()
	if sel.IsEmpty() {
		return handler.NoOp()
	}
	ctx.Engine.SetSelection(sel.Collapse())
	return h.revealHead(ctx)
}

func (h *Handler) revealHead(ctx *execctx.ExecutionContext) handler.Result {
	head := ctx.Engine.Selection().Head
	return handler.Success().WithScrollTo(head.Line, head.Column, false)
}
