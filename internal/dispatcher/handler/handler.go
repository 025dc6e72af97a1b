// Package handler defines commands, the handlers that run them and their
// results.
package handler

import (
	"github.com/dshills/pyselect/internal/dispatcher/execctx"
)

// Action sources, recorded in dispatch logs.
const (
	SourceKey    = "key"
	SourceCLI    = "cli"
	SourceScript = "lua"
)

// Action is one command invocation.
type Action struct {
	// Name is the command name, e.g. "pylineselect.select".
	Name string

	// Count repeats the command. Zero means once.
	Count int

	// Source says where the invocation came from. Empty is allowed.
	Source string
}

// Handler runs a fixed set of commands.
type Handler interface {
	// Handle runs the action. It is only called for names in Commands.
	Handle(action Action, ctx *execctx.ExecutionContext) Result

	// Commands lists the command names the handler runs.
	Commands() []string
}

// HandlerFunc runs one command with a plain function.
type HandlerFunc struct {
	name string
	fn   func(action Action, ctx *execctx.ExecutionContext) Result
}

// NewHandlerFunc returns a handler running fn for the command name.
func NewHandlerFunc(name string, fn func(action Action, ctx *execctx.ExecutionContext) Result) *HandlerFunc {
	return &HandlerFunc{name: name, fn: fn}
}

// Handle calls the function. A nil function is an error result.
func (f *HandlerFunc) Handle(action Action, ctx *execctx.ExecutionContext) Result {
	if f.fn == nil {
		return Errorf("no function for command %q", f.name)
	}
	return f.fn(action, ctx)
}

// Commands returns the single command name.
func (f *HandlerFunc) Commands() []string {
	return []string{f.name}
}
