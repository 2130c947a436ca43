package lua

import (
	"fmt"

	"github.com/dshills/tasktable/internal/selection"
	"github.com/dshills/tasktable/internal/sorting"
)

// Hook function names looked up in the script.
const (
	HookSelectChange = "on_select_change"
	HookSortChange   = "on_sort_change"
)

// SelectEvent is a committed selection change.
type SelectEvent struct {
	EventID string
	Action  selection.Action
	State   selection.State
}

// SortEvent is a committed sort change.
type SortEvent struct {
	EventID string
	Action  sorting.Action
	State   sorting.State
}

// Hooks calls the change hooks a script defines. Hooks the script does not
// define are skipped.
type Hooks struct {
	state *State
}

// LoadHooks runs the script at path in a new sandboxed state.
func LoadHooks(path string, opts ...StateOption) (*Hooks, error) {
	state, err := NewState(opts...)
	if err != nil {
		return nil, err
	}
	if err := state.DoFile(path); err != nil {
		state.Close()
		return nil, fmt.Errorf("loading hook script %s: %w", path, err)
	}
	return NewHooks(state), nil
}

// NewHooks wraps a state whose script has already run.
func NewHooks(state *State) *Hooks {
	return &Hooks{state: state}
}

// Defined returns the hook names the script defines.
func (h *Hooks) Defined() []string {
	var names []string
	for _, name := range []string{HookSelectChange, HookSortChange} {
		if h.state.HasFunction(name) {
			names = append(names, name)
		}
	}
	return names
}

// SelectChanged calls on_select_change(action, state).
func (h *Hooks) SelectChanged(ev SelectEvent) error {
	if !h.state.HasFunction(HookSelectChange) {
		return nil
	}

	L := h.state.L
	action := ToLuaValue(L, map[string]any{
		"kind":    string(ev.Action.Kind),
		"id":      ev.Action.ID,
		"trigger": ev.Action.Trigger.String(),
		"event":   ev.EventID,
	})
	state := ToLuaValue(L, map[string]any{
		"ids":  append([]string{}, ev.State.IDs...),
		"all":  ev.State.All,
		"none": ev.State.None,
	})

	if _, err := h.state.Call(HookSelectChange, action, state); err != nil {
		return fmt.Errorf("%s: %w", HookSelectChange, err)
	}
	return nil
}

// SortChanged calls on_sort_change(action, state).
func (h *Hooks) SortChanged(ev SortEvent) error {
	if !h.state.HasFunction(HookSortChange) {
		return nil
	}

	L := h.state.L
	action := ToLuaValue(L, map[string]any{
		"kind":  ev.Action.Kind,
		"key":   ev.Action.Key,
		"event": ev.EventID,
	})
	state := ToLuaValue(L, map[string]any{
		"key":     ev.State.Key,
		"reverse": ev.State.Reverse,
	})

	if _, err := h.state.Call(HookSortChange, action, state); err != nil {
		return fmt.Errorf("%s: %w", HookSortChange, err)
	}
	return nil
}

// Close releases the script's state.
func (h *Hooks) Close() error {
	return h.state.Close()
}
