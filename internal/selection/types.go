package selection

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownID is returned when an id is not part of the controller's data set.
var ErrUnknownID = errors.New("unknown task id")

// SelectType is the single/multi policy of a trigger class.
type SelectType uint8

const (
	// SingleSelect replaces the selection with the clicked id.
	SingleSelect SelectType = iota
	// MultiSelect flips the clicked id's membership.
	MultiSelect
)

// String returns the configuration name of the select type.
func (s SelectType) String() string {
	switch s {
	case SingleSelect:
		return "single"
	case MultiSelect:
		return "multi"
	default:
		return "unknown"
	}
}

// ParseSelectType parses "single" or "multi".
func ParseSelectType(s string) (SelectType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "singleselect":
		return SingleSelect, nil
	case "multi", "multiselect":
		return MultiSelect, nil
	default:
		return SingleSelect, fmt.Errorf("invalid select type %q (must be single or multi)", s)
	}
}

// ClickType selects which trigger classes may change the selection.
type ClickType uint8

const (
	// RowClick lets both row clicks and button clicks select.
	RowClick ClickType = iota
	// ButtonClick ignores row clicks; only the checkbox selects.
	ButtonClick
)

// String returns the configuration name of the click type.
func (c ClickType) String() string {
	switch c {
	case RowClick:
		return "row"
	case ButtonClick:
		return "button"
	default:
		return "unknown"
	}
}

// ParseClickType parses "row" or "button".
func ParseClickType(s string) (ClickType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "row", "rowclick":
		return RowClick, nil
	case "button", "buttonclick":
		return ButtonClick, nil
	default:
		return RowClick, fmt.Errorf("invalid click type %q (must be row or button)", s)
	}
}

// Trigger identifies the UI input class that produced a mutation.
type Trigger uint8

const (
	// TriggerNone marks mutations not tied to a trigger class (select-all).
	TriggerNone Trigger = iota
	// TriggerRow is a click on the row body.
	TriggerRow
	// TriggerButton is a click on the row checkbox.
	TriggerButton
)

// String returns the trigger name.
func (t Trigger) String() string {
	switch t {
	case TriggerRow:
		return "row"
	case TriggerButton:
		return "button"
	default:
		return "none"
	}
}

// Options configures selection policy. Options are fixed for the
// controller's lifetime.
type Options struct {
	RowSelect    SelectType
	ButtonSelect SelectType
	CarryForward bool
	ClickType    ClickType
}

// DefaultOptions returns single-select rows, multi-select checkboxes,
// carry-forward on and row clicks enabled.
func DefaultOptions() Options {
	return Options{
		RowSelect:    SingleSelect,
		ButtonSelect: MultiSelect,
		CarryForward: true,
		ClickType:    RowClick,
	}
}

// modeFor returns the select type configured for a trigger class.
func (o Options) modeFor(t Trigger) SelectType {
	if t == TriggerRow {
		return o.RowSelect
	}
	return o.ButtonSelect
}

// Initial is an optional default selection applied when the controller is
// created. ID selects a single task; IDs selects several. When both are set
// they are combined.
type Initial struct {
	ID  string
	IDs []string
}

// ActionKind identifies which operation changed the selection.
type ActionKind string

const (
	// ActionAll is emitted by ToggleAll.
	ActionAll ActionKind = "ALL"
	// ActionID is emitted by the per-id toggles.
	ActionID ActionKind = "ID"
)

// Action describes the mutation that produced a new State.
type Action struct {
	Kind    ActionKind
	ID      string  // empty for ActionAll
	Trigger Trigger // TriggerNone for ActionAll
}

// State is a snapshot of the selection.
type State struct {
	// IDs are the selected ids in data order.
	IDs []string
	// All is true when every id in the data set is selected.
	All bool
	// None is true when nothing is selected.
	None bool
}

// Contains reports whether id is in the snapshot.
func (s State) Contains(id string) bool {
	for _, v := range s.IDs {
		if v == id {
			return true
		}
	}
	return false
}

// Notifier receives every selection change.
type Notifier func(action Action, state State)
