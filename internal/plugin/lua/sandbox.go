package lua

import (
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// ModuleName is the global table scripts use to talk to the host.
const ModuleName = "tasktable"

// openSafeLibraries opens only safe Lua standard libraries.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// io, os, debug and package stay closed.
}

// installSandbox removes loaders and routes output through print.
func installSandbox(L *lua.LState, print func(string)) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}

	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		print(joinArgs(L))
		return 0
	}))

	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"log": func(L *lua.LState) int {
			print(joinArgs(L))
			return 0
		},
	})
	L.SetGlobal(ModuleName, mod)
}

// joinArgs formats the arguments on the stack like Lua's print.
func joinArgs(L *lua.LState) string {
	n := L.GetTop()
	parts := make([]string, n)
	for i := 1; i <= n; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	return strings.Join(parts, "\t")
}
