package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultExecutionTimeout bounds a single run.
const DefaultExecutionTimeout = 5 * time.Second

// State wraps a sandboxed gopher-lua state.
//
// gopher-lua's LState is not goroutine-safe; the mutex serializes every
// entry point so a State may be shared.
type State struct {
	L *lua.LState

	mu sync.Mutex

	timeout time.Duration
	output  io.Writer
	modules map[string]bool

	closed bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithExecutionTimeout sets the deadline applied to each run. Zero or
// negative disables it; the caller's context still applies.
func WithExecutionTimeout(d time.Duration) StateOption {
	return func(s *State) {
		s.timeout = d
	}
}

// WithOutput redirects print. The default discards output.
func WithOutput(w io.Writer) StateOption {
	return func(s *State) {
		if w != nil {
			s.output = w
		}
	}
}

// NewState creates a new sandboxed Lua state.
func NewState(opts ...StateOption) (*State, error) {
	state := &State{
		timeout: DefaultExecutionTimeout,
		output:  io.Discard,
		modules: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(state)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	state.L = L

	openSafeLibraries(L)
	state.installSandbox()

	return state, nil
}

// openSafeLibraries opens only the libraries that cannot reach the host.
// io, os and debug stay closed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenPackage(L)
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	lua.OpenCoroutine(L)
}

// Register installs a Go module under name, both as a global and for
// require.
func (s *State) Register(name string, funcs map[string]lua.LGFunction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	mod := s.L.SetFuncs(s.L.NewTable(), funcs)
	s.L.PreloadModule(name, func(L *lua.LState) int {
		L.Push(mod)
		return 1
	})
	s.modules[name] = true
	s.L.SetGlobal(name, mod)
}

// SetGlobal sets a global variable.
func (s *State) SetGlobal(name string, value lua.LValue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.L.SetGlobal(name, value)
}

// GetGlobal returns a global variable value.
func (s *State) GetGlobal(name string) lua.LValue {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return lua.LNil
	}
	return s.L.GetGlobal(name)
}

// Run compiles and executes a chunk and returns the values it returns,
// converted to Go values.
func (s *State) Run(ctx context.Context, name, code string) ([]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStateClosed
	}

	fn, err := s.L.Load(strings.NewReader(code), name)
	if err != nil {
		return nil, err
	}
	return s.call(ctx, fn)
}

// RunFile executes a script file.
func (s *State) RunFile(ctx context.Context, path string) ([]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return s.Run(ctx, "@"+path, string(data))
}

// Call calls a global Lua function with Go arguments.
func (s *State) Call(ctx context.Context, fn string, args ...any) ([]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStateClosed
	}

	f, ok := s.L.GetGlobal(fn).(*lua.LFunction)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFunction, fn)
	}
	b := NewBridge(s.L)
	largs := make([]lua.LValue, len(args))
	for i, a := range args {
		largs[i] = b.ToLuaValue(a)
	}
	return s.call(ctx, f, largs...)
}

// call runs fn under the run deadline. The caller holds mu.
func (s *State) call(ctx context.Context, fn *lua.LFunction, args ...lua.LValue) (results []any, err error) {
	runCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	s.L.SetContext(runCtx)
	defer s.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	top := s.L.GetTop()
	s.L.Push(fn)
	for _, a := range args {
		s.L.Push(a)
	}
	if err := s.L.PCall(len(args), lua.MultRet, nil); err != nil {
		s.L.SetTop(top)
		switch {
		case ctx.Err() != nil:
			return nil, ctx.Err()
		case errors.Is(runCtx.Err(), context.DeadlineExceeded):
			return nil, fmt.Errorf("%w after %s", ErrExecutionTimeout, s.timeout)
		}
		return nil, err
	}

	n := s.L.GetTop() - top
	b := NewBridge(s.L)
	results = make([]any, n)
	for i := 0; i < n; i++ {
		results[i] = b.ToGoValue(s.L.Get(top + i + 1))
	}
	s.L.SetTop(top)
	return results, nil
}

// LuaState returns the underlying gopher-lua state. Access through it
// bypasses the mutex.
func (s *State) LuaState() *lua.LState {
	return s.L
}

// IsClosed returns true if the state has been closed.
func (s *State) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close releases the Lua state. Later calls return ErrStateClosed.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.L.Close()
	s.closed = true
	return nil
}
