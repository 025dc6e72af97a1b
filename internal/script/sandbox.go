package script

import (
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// stdModules may always be required.
var stdModules = map[string]bool{
	"string":    true,
	"table":     true,
	"math":      true,
	"coroutine": true,
}

// installSandbox removes the loaders that reach the file system, redirects
// print and restricts require to standard and preloaded modules.
func (s *State) installSandbox() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		s.L.SetGlobal(name, lua.LNil)
	}

	s.L.SetGlobal("print", s.L.NewFunction(s.print))

	if pkg, ok := s.L.GetGlobal("package").(*lua.LTable); ok {
		s.L.SetField(pkg, "path", lua.LString(""))
		s.L.SetField(pkg, "cpath", lua.LString(""))
	}

	require := s.L.GetGlobal("require")
	s.L.SetGlobal("require", s.L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		if !stdModules[name] && !s.modules[name] {
			L.RaiseError("module %q is not available", name)
			return 0
		}
		L.Push(require)
		L.Push(lua.LString(name))
		L.Call(1, 1)
		return 1
	}))
}

// print writes its arguments, tab separated, to the state's output.
func (s *State) print(L *lua.LState) int {
	var b strings.Builder
	for i := 1; i <= L.GetTop(); i++ {
		if i > 1 {
			b.WriteByte('\t')
		}
		b.WriteString(L.ToStringMeta(L.Get(i)).String())
	}
	b.WriteByte('\n')
	_, _ = s.output.Write([]byte(b.String()))
	return 0
}
