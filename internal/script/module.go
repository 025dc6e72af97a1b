package script

import (
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/pyselect/internal/block"
	"github.com/dshills/pyselect/internal/dispatcher"
	"github.com/dshills/pyselect/internal/dispatcher/handler"
	"github.com/dshills/pyselect/internal/dispatcher/handlers/blockselect"
	"github.com/dshills/pyselect/internal/engine"
	"github.com/dshills/pyselect/internal/logging"
	"github.com/dshills/pyselect/internal/project"
)

// ModuleName is the name scripts require the host module by. It is also
// installed as a global.
const ModuleName = "blocksel"

// Host exposes one document and its selection commands to scripts.
type Host struct {
	engine     *engine.Engine
	dispatcher *dispatcher.Dispatcher
	logger     *logging.Logger
}

// NewHost creates a host for eng. A nil resolver uses the block-aware
// default.
func NewHost(eng *engine.Engine, r *block.Resolver, logger *logging.Logger) *Host {
	if logger == nil {
		logger = logging.NullLogger
	}
	d := dispatcher.New(dispatcher.DefaultConfig())
	d.SetEngine(eng)
	d.SetResolver(r)
	d.SetLogger(logger)
	blockselect.Register(d)

	return &Host{
		engine:     eng,
		dispatcher: d,
		logger:     logger.WithComponent("script"),
	}
}

// Engine returns the host's document.
func (h *Host) Engine() *engine.Engine {
	return h.engine
}

// Dispatcher returns the dispatcher scripts run commands through.
func (h *Host) Dispatcher() *dispatcher.Dispatcher {
	return h.dispatcher
}

// Install registers the blocksel module in s.
func (h *Host) Install(s *State) {
	s.Register(ModuleName, map[string]lua.LGFunction{
		"line_count": h.lineCount,
		"line":       h.line,
		"classify":   h.classify,
		"resolve":    h.resolve,
		"selection":  h.selection,
		"select":     h.command(blockselect.ActionSelect),
		"shrink":     h.command(blockselect.ActionShrink),
		"regrow":     h.command(blockselect.ActionRegrow),
		"collapse":   h.command(blockselect.ActionCollapse),
		"outline":    h.outline,
		"mode":       h.mode,
		"log":        h.log,
	})
}

func (h *Host) lineCount(L *lua.LState) int {
	L.Push(lua.LNumber(h.engine.LineCount()))
	return 1
}

// line(n) returns the text of line n, or nil past the end.
func (h *Host) line(L *lua.LState) int {
	n := L.CheckInt(1)
	if n < 0 || n >= h.engine.LineCount() {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(h.engine.LineText(n)))
	return 1
}

// classify(text) returns kind, indent, blank.
func (h *Host) classify(L *lua.LState) int {
	text := L.CheckString(1)
	kind := h.dispatcher.Resolver().Classifier().Classify(text)
	indent, blank := block.MeasureIndent(text)
	L.Push(lua.LString(kind.String()))
	L.Push(lua.LNumber(indent))
	L.Push(lua.LBool(blank))
	return 3
}

// resolve(start [, end [, active]]) resolves without changing the
// selection. It returns start, end or nil and the reason.
func (h *Host) resolve(L *lua.LState) int {
	count := h.engine.LineCount()
	start := L.CheckInt(1)
	if start < 0 || start >= count {
		L.ArgError(1, fmt.Sprintf("line %d outside 0-%d", start, count-1))
		return 0
	}
	sel := block.Cursor(start)
	if L.Get(2) != lua.LNil {
		end := L.CheckInt(2)
		if end < start || end >= count {
			L.ArgError(2, fmt.Sprintf("end %d outside %d-%d", end, start, count-1))
			return 0
		}
		active := L.OptInt(3, end)
		if active < start || active > end {
			L.ArgError(3, fmt.Sprintf("active line %d outside %d-%d", active, start, end))
			return 0
		}
		sel = block.Lines(start, end)
		sel.ActiveLine = active
	}

	r, err := h.dispatcher.Resolver().Resolve(h.engine.Snapshot(), sel)
	if err != nil {
		if !block.IsNoSelection(err) {
			L.RaiseError("%s", err.Error())
			return 0
		}
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LNumber(r.StartLine))
	L.Push(lua.LNumber(r.EndLine))
	return 2
}

// selection() returns the selected line span and whether it is a cursor.
func (h *Host) selection(L *lua.LState) int {
	sel := h.engine.Selection().ToBlock()
	L.Push(lua.LNumber(sel.StartLine))
	L.Push(lua.LNumber(sel.EndLine))
	L.Push(lua.LBool(sel.Empty))
	return 3
}

// command returns a function dispatching name with an optional count.
// Selecting returns the new line span; the others return true. A command
// with no effect returns nil or false and the reason.
func (h *Host) command(name string) lua.LGFunction {
	return func(L *lua.LState) int {
		result := h.dispatcher.Dispatch(handler.Action{Name: name, Count: L.OptInt(1, 0), Source: handler.SourceScript})
		switch result.Status {
		case handler.StatusError:
			L.RaiseError("%s: %v", name, result.Error)
			return 0
		case handler.StatusNoOp:
			if name == blockselect.ActionSelect {
				L.Push(lua.LNil)
			} else {
				L.Push(lua.LFalse)
			}
			L.Push(lua.LString(result.Message))
			return 2
		}
		if result.Range != nil {
			L.Push(lua.LNumber(result.Range.StartLine))
			L.Push(lua.LNumber(result.Range.EndLine))
			return 2
		}
		L.Push(lua.LTrue)
		return 1
	}
}

// outline([maxDepth]) returns the document's blocks as a list of tables.
func (h *Host) outline(L *lua.LState) int {
	blocks := project.Outline(h.engine.Snapshot(), h.dispatcher.Resolver(), L.OptInt(1, 1))
	L.Push(outlineTable(L, blocks))
	return 1
}

func outlineTable(L *lua.LState, blocks []project.Block) *lua.LTable {
	t := L.CreateTable(len(blocks), 0)
	for i, b := range blocks {
		item := L.CreateTable(0, 6)
		item.RawSetString("start_line", lua.LNumber(b.Range.StartLine))
		item.RawSetString("end_line", lua.LNumber(b.Range.EndLine))
		item.RawSetString("kind", lua.LString(b.Kind.String()))
		item.RawSetString("header", lua.LString(b.Header))
		item.RawSetString("depth", lua.LNumber(b.Depth))
		if len(b.Children) > 0 {
			item.RawSetString("children", outlineTable(L, b.Children))
		}
		t.RawSetInt(i+1, item)
	}
	return t
}

func (h *Host) mode(L *lua.LState) int {
	L.Push(lua.LString(h.dispatcher.Resolver().Mode().String()))
	return 1
}

func (h *Host) log(L *lua.LState) int {
	parts := make([]string, L.GetTop())
	for i := range parts {
		parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
	}
	h.logger.Info("%s", strings.Join(parts, " "))
	return 0
}
