// Package app runs the interactive terminal viewer.
//
// The viewer shows one document, maps key presses to commands through a
// KeyMap and executes them with a dispatcher that has the block selection
// and cursor motion commands registered. A numeric prefix typed before a
// key becomes the command's repeat count, so "3s" selects three blocks.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/pyselect/internal/block"
	"github.com/dshills/pyselect/internal/dispatcher"
	"github.com/dshills/pyselect/internal/dispatcher/execctx"
	"github.com/dshills/pyselect/internal/dispatcher/handler"
	"github.com/dshills/pyselect/internal/dispatcher/handlers/blockselect"
	"github.com/dshills/pyselect/internal/engine"
	"github.com/dshills/pyselect/internal/logging"
	"github.com/dshills/pyselect/internal/renderer"
)

// Options configures a Viewer.
type Options struct {
	// Resolver resolves blocks. Nil uses the default block-aware resolver.
	Resolver *block.Resolver

	// Languages restricts block commands to matching documents.
	Languages execctx.LanguageGuard

	// KeyMap overrides the default bindings.
	KeyMap *KeyMap

	// Renderer configures drawing.
	Renderer []renderer.Option

	// Reveal is how selection ends and motions are scrolled into view.
	Reveal dispatcher.Reveal

	// Logger receives diagnostics. Nil disables logging.
	Logger *logging.Logger
}

// Viewer is the interactive viewer for one document.
type Viewer struct {
	screen     tcell.Screen
	engine     *engine.Engine
	dispatcher *dispatcher.Dispatcher
	renderer   *renderer.Renderer
	keys       *KeyMap
	logger     *logging.Logger

	// count is the pending numeric prefix.
	count int

	running atomic.Bool
}

// New creates a viewer drawing on an initialized screen.
func New(screen tcell.Screen, eng *engine.Engine, opts Options) *Viewer {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NullLogger
	}
	keys := opts.KeyMap
	if keys == nil {
		keys = DefaultKeyMap()
	}

	r := renderer.New(screen, opts.Renderer...)
	r.SetDocument(eng)

	d := dispatcher.New(dispatcher.DefaultConfig().WithMetrics().WithReveal(opts.Reveal))
	d.SetEngine(eng)
	d.SetRenderer(r)
	d.SetResolver(opts.Resolver)
	d.SetLanguageGuard(opts.Languages)
	d.SetLogger(logger)
	blockselect.Register(d)
	d.RegisterHandler(motionHandler{})

	r.SetMode(d.Resolver().Mode().String())

	return &Viewer{
		screen:     screen,
		engine:     eng,
		dispatcher: d,
		renderer:   r,
		keys:       keys,
		logger:     logger.WithComponent("viewer"),
	}
}

// Dispatcher returns the viewer's command dispatcher.
func (v *Viewer) Dispatcher() *dispatcher.Dispatcher {
	return v.dispatcher
}

// Renderer returns the viewer's renderer.
func (v *Viewer) Renderer() *renderer.Renderer {
	return v.renderer
}

// Run draws the document and processes events until the user quits or ctx
// is canceled. Quitting returns nil.
func (v *Viewer) Run(ctx context.Context) error {
	if !v.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer v.running.Store(false)
	defer v.logStats()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go v.screen.ChannelEvents(events, quit)

	v.logger.Info("viewing %s (%d lines)", v.engine.Path(), v.engine.LineCount())
	v.renderer.Render()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := v.HandleEvent(ev); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}
		}
	}
}

// HandleEvent processes one terminal event and redraws. It returns ErrQuit
// when the event asks the viewer to exit.
func (v *Viewer) HandleEvent(ev tcell.Event) error {
	switch e := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
	case *tcell.EventKey:
		if err := v.handleKey(e); err != nil {
			return err
		}
	default:
		return nil
	}
	v.renderer.Render()
	return nil
}

func (v *Viewer) handleKey(ev *tcell.EventKey) error {
	if ev.Key() == tcell.KeyRune && ev.Modifiers()&tcell.ModCtrl == 0 {
		if r := ev.Rune(); r >= '0' && r <= '9' && (v.count > 0 || r != '0') {
			v.count = min(v.count*10+int(r-'0'), v.maxCount())
			v.renderer.SetStatus(fmt.Sprintf("%d", v.count))
			return nil
		}
	}

	count := v.count
	v.count = 0

	name, ok := v.keys.Lookup(ev)
	if !ok {
		v.renderer.SetStatus("")
		return nil
	}
	if name == ActionQuit {
		return ErrQuit
	}

	result := v.dispatcher.Dispatch(handler.Action{Name: name, Count: count, Source: handler.SourceKey})
	v.renderer.SetStatus(statusFor(result))
	return nil
}

// maxCount bounds the pending count prefix.
func (v *Viewer) maxCount() int {
	if n := v.dispatcher.Config().MaxCount; n > 0 {
		return n
	}
	return dispatcher.DefaultMaxCount
}

// logStats reports what the session dispatched.
func (v *Viewer) logStats() {
	m := v.dispatcher.Metrics()
	if m == nil {
		return
	}
	total := m.Snapshot()
	if total.TotalDispatches == 0 {
		return
	}
	v.logger.Info("dispatched %d commands (%d no-op, %d errors, %d panics, avg %s)",
		total.TotalDispatches, total.TotalNoOps, total.TotalErrors, total.TotalPanics, total.AverageDuration)
	for _, cs := range m.Commands() {
		v.logger.Debug("%s: %d dispatches, %d no-op, %d errors, avg %s, max %s",
			cs.Name, cs.DispatchCount, cs.NoOpCount, cs.ErrorCount, cs.AverageDuration(), cs.MaxDuration)
	}
}

// statusFor is the status line message for a command result.
func statusFor(result handler.Result) string {
	switch result.Status {
	case handler.StatusError:
		return "error: " + result.Error.Error()
	case handler.StatusNoOp:
		return result.Message
	}
	if result.Message != "" {
		return result.Message
	}
	if result.Range != nil {
		return fmt.Sprintf("selected lines %d-%d", result.Range.StartLine+1, result.Range.EndLine+1)
	}
	return ""
}
