package dispatcher

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/dshills/pyselect/internal/block"
	"github.com/dshills/pyselect/internal/dispatcher/execctx"
	"github.com/dshills/pyselect/internal/dispatcher/handler"
	"github.com/dshills/pyselect/internal/logging"
)

// Dispatcher routes commands to handlers and coordinates execution.
type Dispatcher struct {
	mu sync.RWMutex

	registry *Registry

	// Host state handed to every handler.
	engine    execctx.EngineInterface
	renderer  execctx.RendererInterface
	resolver  *block.Resolver
	languages execctx.LanguageGuard
	logger    *logging.Logger

	config  Config
	metrics *Metrics
}

// New creates a new dispatcher with the given configuration.
func New(config Config) *Dispatcher {
	d := &Dispatcher{
		registry: NewRegistry(),
		resolver: block.NewResolver(),
		logger:   logging.NullLogger,
		config:   config,
	}
	if config.Metrics {
		d.metrics = NewMetrics()
	}
	return d
}

// NewWithDefaults creates a new dispatcher with default configuration.
func NewWithDefaults() *Dispatcher {
	return New(DefaultConfig())
}

// SetEngine sets the document engine.
func (d *Dispatcher) SetEngine(e execctx.EngineInterface) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.engine = e
}

// SetRenderer sets the renderer.
func (d *Dispatcher) SetRenderer(renderer execctx.RendererInterface) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.renderer = renderer
}

// SetResolver sets the block resolver. A nil resolver is ignored.
func (d *Dispatcher) SetResolver(r *block.Resolver) {
	if r == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resolver = r
}

// SetLanguageGuard sets the language filter for block commands.
func (d *Dispatcher) SetLanguageGuard(g execctx.LanguageGuard) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.languages = g
}

// SetLogger sets the logger used for dispatch diagnostics.
func (d *Dispatcher) SetLogger(l *logging.Logger) {
	if l == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.logger = l.WithComponent("dispatcher")
}

// Engine returns the document engine.
func (d *Dispatcher) Engine() execctx.EngineInterface {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.engine
}

// Resolver returns the block resolver.
func (d *Dispatcher) Resolver() *block.Resolver {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.resolver
}

// Dispatch executes a command synchronously.
func (d *Dispatcher) Dispatch(action handler.Action) handler.Result {
	startTime := time.Now()

	if action.Name == "" {
		return handler.Error(ErrEmptyCommand)
	}

	ctx := d.buildContext()
	if action.Count > 0 {
		ctx.Count = action.Count
	}
	if limit := d.config.MaxCount; limit > 0 && ctx.Count > limit {
		ctx.Count = limit
	}

	h := d.registry.Get(action.Name)
	if h == nil {
		return handler.Error(fmt.Errorf("%w: %s", ErrUnknownCommand, action.Name))
	}

	var result handler.Result
	if d.config.RecoverPanics {
		result = d.executeWithRecovery(h, action, ctx)
	} else {
		result = h.Handle(action, ctx)
	}

	d.processResult(result, ctx)
	d.logResult(action, result, ctx)

	if d.metrics != nil {
		d.metrics.RecordDispatch(action.Name, time.Since(startTime), result.Status)
	}

	return result
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(h handler.Handler, action handler.Action, ctx *execctx.ExecutionContext) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)

			result = handler.Error(fmt.Errorf("%w for %s: %v\n%s", ErrHandlerPanic, action.Name, r, stack[:n]))

			if d.metrics != nil {
				d.metrics.RecordPanic(action.Name)
			}
		}
	}()

	return h.Handle(action, ctx)
}

// buildContext builds an execution context from current state.
func (d *Dispatcher) buildContext() *execctx.ExecutionContext {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return execctx.New().
		WithEngine(d.engine).
		WithRenderer(d.renderer).
		WithResolver(d.resolver).
		WithLanguages(d.languages).
		WithLogger(d.logger)
}

// processResult applies the view updates a handler requested.
func (d *Dispatcher) processResult(result handler.Result, ctx *execctx.ExecutionContext) {
	if ctx.Renderer == nil {
		return
	}
	st := result.Scroll
	if st == nil {
		return
	}
	if st.Center || d.config.Reveal == RevealCenter {
		ctx.Renderer.CenterOnLine(st.Line)
		return
	}
	if !ctx.Renderer.IsLineVisible(st.Line) {
		ctx.Renderer.ScrollTo(st.Line, st.Column)
	}
}

func (d *Dispatcher) logResult(action handler.Action, result handler.Result, ctx *execctx.ExecutionContext) {
	log := ctx.Logger.WithField("command", action.Name)
	if action.Source != "" {
		log = log.WithField("source", action.Source)
	}
	switch result.Status {
	case handler.StatusError:
		log.Error("command failed: %v", result.Error)
	case handler.StatusNoOp:
		log.Debug("command had no effect: %s", result.Message)
	default:
		if result.Range != nil {
			log.Debug("selected %s", result.Range)
		}
	}
}

// RegisterHandler binds every command h lists to h.
func (d *Dispatcher) RegisterHandler(h handler.Handler) {
	for _, name := range d.registry.Register(h) {
		d.logger.Debug("command %s rebound", name)
	}
}

// RegisterHandlerFunc binds one command name to fn.
func (d *Dispatcher) RegisterHandlerFunc(name string, fn func(handler.Action, *execctx.ExecutionContext) handler.Result) {
	d.RegisterHandler(handler.NewHandlerFunc(name, fn))
}

// UnregisterHandler removes the handlers for a command name.
func (d *Dispatcher) UnregisterHandler(name string) {
	d.registry.Unregister(name)
}

// Registry returns the handler registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Metrics returns the metrics collector (may be nil if disabled).
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}
