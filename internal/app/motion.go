package app

import (
	"github.com/dshills/pyselect/internal/dispatcher/execctx"
	"github.com/dshills/pyselect/internal/dispatcher/handler"
	"github.com/dshills/pyselect/internal/engine/cursor"
)

// Viewer command names.
const (
	ActionCursorDown = "view.cursorDown"
	ActionCursorUp   = "view.cursorUp"
	ActionPageDown   = "view.pageDown"
	ActionPageUp     = "view.pageUp"
	ActionTop        = "view.top"
	ActionBottom     = "view.bottom"
	ActionCenter     = "view.center"
	ActionQuit       = "view.quit"
)

var motionCommands = []string{
	ActionCursorDown, ActionCursorUp,
	ActionPageDown, ActionPageUp,
	ActionTop, ActionBottom,
	ActionCenter,
}

// motionHandler moves the cursor. Motions drop any selection and keep the
// cursor column where the target line is long enough.
type motionHandler struct{}

func (motionHandler) Commands() []string { return motionCommands }

func (h motionHandler) Handle(action handler.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}

	head := ctx.Engine.Selection().Head
	last := ctx.Engine.LineCount() - 1
	page := pageSize(ctx)

	line := head.Line
	switch action.Name {
	case ActionCursorDown:
		line += ctx.GetCount()
	case ActionCursorUp:
		line -= ctx.GetCount()
	case ActionPageDown:
		line += page * ctx.GetCount()
	case ActionPageUp:
		line -= page * ctx.GetCount()
	case ActionTop:
		line = 0
		if action.Count > 0 {
			line = action.Count - 1
		}
	case ActionBottom:
		line = last
		if action.Count > 0 {
			line = action.Count - 1
		}
	case ActionCenter:
		return handler.Success().WithScrollTo(head.Line, head.Column, true)
	default:
		return handler.Errorf("unknown motion: %s", action.Name)
	}
	line = max(0, min(line, last))

	col := min(head.Column, ctx.Engine.LineLen(line))
	ctx.Engine.SetSelection(cursor.NewCursorSelection(cursor.Point{Line: line, Column: col}))
	return handler.Success().WithScrollTo(line, col, false)
}

// pageSize is the number of lines a page motion moves.
func pageSize(ctx *execctx.ExecutionContext) int {
	if ctx.Renderer == nil {
		return 1
	}
	start, end := ctx.Renderer.VisibleLineRange()
	return max(end-start, 1)
}
