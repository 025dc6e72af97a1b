package script

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	lua "github.com/yuin/gopher-lua"
)

func newState(t *testing.T, opts ...StateOption) *State {
	t.Helper()
	state, err := NewState(opts...)
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	t.Cleanup(func() { state.Close() })
	return state
}

func TestRunReturnsValues(t *testing.T) {
	state := newState(t)

	got, err := state.Run(context.Background(), "values", `return 1, "a", 2.5, {1, 2}, {x = true}, nil`)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := []any{int64(1), "a", 2.5, []any{int64(1), int64(2)}, map[string]any{"x": true}, nil}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Run() = %#v, want %#v", got, want)
	}
	if top := state.LuaState().GetTop(); top != 0 {
		t.Errorf("stack top after Run = %d, want 0", top)
	}
}

func TestRunSyntaxError(t *testing.T) {
	state := newState(t)

	if _, err := state.Run(context.Background(), "bad", `return (`); err == nil {
		t.Error("expected a syntax error")
	}
}

func TestRunRuntimeError(t *testing.T) {
	state := newState(t)

	_, err := state.Run(context.Background(), "bad", `error("boom")`)
	if err == nil {
		t.Fatal("expected an error")
	}
	var apiErr *lua.ApiError
	if !errors.As(err, &apiErr) {
		t.Errorf("error = %T, want *lua.ApiError", err)
	}
}

func TestSandboxRemovesLoaders(t *testing.T) {
	state := newState(t)

	got, err := state.Run(context.Background(), "sandbox",
		`return dofile == nil, loadfile == nil, load == nil, io == nil, os == nil, debug == nil`)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for i, v := range got {
		if v != true {
			t.Errorf("value %d = %v, want true", i, v)
		}
	}
}

func TestSandboxRequire(t *testing.T) {
	state := newState(t)
	state.Register("greeting", map[string]lua.LGFunction{
		"hello": func(L *lua.LState) int {
			L.Push(lua.LString("hello " + L.CheckString(1)))
			return 1
		},
	})

	got, err := state.Run(context.Background(), "require", `
		local s = require("string")
		local g = require("greeting")
		return s.upper(g.hello("lua")), greeting == g`)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got[0] != "HELLO LUA" || got[1] != true {
		t.Errorf("Run() = %v", got)
	}

	for _, mod := range []string{"os", "io", "debug", "missing"} {
		if _, err := state.Run(context.Background(), "require", `require("`+mod+`")`); err == nil {
			t.Errorf("require(%q) should fail", mod)
		}
	}
}

func TestPrintRedirect(t *testing.T) {
	var out bytes.Buffer
	state := newState(t, WithOutput(&out))

	if _, err := state.Run(context.Background(), "print", `print("a", 1, true, nil)`); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := out.String(); got != "a\t1\ttrue\tnil\n" {
		t.Errorf("output = %q", got)
	}
}

func TestExecutionTimeout(t *testing.T) {
	state := newState(t, WithExecutionTimeout(50*time.Millisecond))

	_, err := state.Run(context.Background(), "loop", `while true do end`)
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Fatalf("Run() error = %v, want ErrExecutionTimeout", err)
	}

	got, err := state.Run(context.Background(), "after", `return 7`)
	if err != nil || len(got) != 1 || got[0] != int64(7) {
		t.Errorf("Run() after timeout = %v, %v", got, err)
	}
}

func TestRunCanceled(t *testing.T) {
	state := newState(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := state.Run(ctx, "loop", `while true do end`); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestCall(t *testing.T) {
	state := newState(t)

	if _, err := state.Run(context.Background(), "def", `function add(a, b) return a + b end; answer = 42`); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got, err := state.Call(context.Background(), "add", 1, 2)
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if len(got) != 1 || got[0] != int64(3) {
		t.Errorf("Call() = %v, want [3]", got)
	}

	if _, err := state.Call(context.Background(), "answer"); !errors.Is(err, ErrNotFunction) {
		t.Errorf("Call(answer) error = %v, want ErrNotFunction", err)
	}
	if _, err := state.Call(context.Background(), "missing"); !errors.Is(err, ErrNotFunction) {
		t.Errorf("Call(missing) error = %v, want ErrNotFunction", err)
	}
}

func TestClosedState(t *testing.T) {
	state, err := NewState()
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	if err := state.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !state.IsClosed() {
		t.Error("IsClosed() = false after Close")
	}
	if err := state.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if _, err := state.Run(context.Background(), "x", `return 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("Run() error = %v, want ErrStateClosed", err)
	}
	if v := state.GetGlobal("print"); v != lua.LNil {
		t.Errorf("GetGlobal() on closed state = %v", v)
	}
}
