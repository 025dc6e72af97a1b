// Package dispatcher routes named commands to handlers and coordinates
// their execution.
//
// Hosts (the CLI, the viewer and the Lua bindings) hold one Dispatcher. It
// owns the document engine, the block resolver, the language guard and an
// optional renderer, and builds an execctx.ExecutionContext from them for
// every command.
//
// When a command is dispatched:
//
//  1. The repeat count is taken from the action and clamped.
//  2. The registry finds the handler bound to the name.
//  3. The handler runs, with panic recovery unless disabled.
//  4. A requested scroll target is applied to the renderer under the
//     configured Reveal policy.
//  5. The outcome is logged and, if enabled, recorded in Metrics.
//
// Handlers report StatusNoOp when there is nothing to do. The block
// selection commands in handlers/blockselect use it for every resolution
// that finds no block, and leave the selection untouched.
//
// Basic setup:
//
//	d := dispatcher.NewWithDefaults()
//	d.SetEngine(engine.New(engine.WithContent(src)))
//	blockselect.Register(d)
//
//	result := d.Dispatch(handler.Action{Name: blockselect.ActionSelect})
package dispatcher
