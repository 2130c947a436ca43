// Package lua runs user Lua scripts that react to table changes.
//
// This package wraps the gopher-lua library to provide:
//   - Sandboxed Lua state management
//   - Go-Lua value conversion
//   - Change hooks called after selection and sort changes
//
// # State
//
// The State type manages a Lua runtime with sandboxing:
//
//	state, err := lua.NewState(
//	    lua.WithExecutionTimeout(time.Second),
//	    lua.WithPrinter(func(msg string) { logger.Info(msg) }),
//	)
//	if err != nil {
//	    return err
//	}
//	defer state.Close()
//
// # Hooks
//
// A hook script defines global functions the table calls after each change:
//
//	function on_select_change(action, state)
//	    tasktable.log(action.kind .. " " .. #state.ids)
//	end
//
//	function on_sort_change(action, state)
//	    print(state.key, state.reverse)
//	end
//
// action carries kind, id, trigger and event (a unique event id); state
// carries ids, all and none for selection, key and reverse for sorting.
// Hooks observe changes only. Return values are ignored.
//
// # Sandbox
//
// The sandbox opens only the base, table, string and math libraries,
// removes dofile, loadfile, load, loadstring and require, and routes print
// through the configured printer instead of stdout.
package lua
