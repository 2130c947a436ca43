// Package sorting orders table rows by a column sort key.
//
// A Controller keeps the active sort key and direction. Header clicks call
// Toggle; rendering calls Apply to get the rows in display order. The
// comparator for each key is supplied by the caller, so the set of sortable
// columns is whatever the comparator map names.
package sorting

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dshills/tasktable/internal/task"
)

// ErrUnknownKey is returned when toggling a key with no comparator.
var ErrUnknownKey = errors.New("unknown sort key")

// Column sort keys used by the default comparators.
const (
	KeyTask     = "TASK"
	KeyDeadline = "DEADLINE"
	KeyType     = "TYPE"
	KeyComplete = "COMPLETE"
)

// ToggleType controls what a repeated click on the active column does.
type ToggleType uint8

const (
	// Alternate flips between ascending and descending.
	Alternate ToggleType = iota
	// AlternateWithReset cycles ascending, descending, then unsorted.
	AlternateWithReset
)

// String returns the configuration name of the toggle type.
func (t ToggleType) String() string {
	if t == AlternateWithReset {
		return "reset"
	}
	return "alternate"
}

// ParseToggleType parses "alternate" or "reset".
func ParseToggleType(s string) (ToggleType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "alternate":
		return Alternate, nil
	case "reset", "alternatewithreset":
		return AlternateWithReset, nil
	default:
		return Alternate, fmt.Errorf("invalid sort toggle type %q (must be alternate or reset)", s)
	}
}

// Fn compares two tasks and returns a negative number when a sorts first.
type Fn func(a, b task.Task) int

// State is the active sort. An empty Key means data order.
type State struct {
	Key     string
	Reverse bool
}

// Active reports whether a sort key is set.
func (s State) Active() bool {
	return s.Key != ""
}

// ActionSort is the kind reported for every sort change.
const ActionSort = "SORT"

// Action describes a sort change.
type Action struct {
	Kind string
	Key  string
}

// Notifier receives every sort change.
type Notifier func(action Action, state State)

// Options configures a Controller.
type Options struct {
	ToggleType ToggleType
	Initial    State
}

// Controller holds the sort state of one table.
type Controller struct {
	fns      map[string]Fn
	state    State
	toggle   ToggleType
	onChange Notifier
}

// New creates a controller. The initial key, if any, must have a comparator.
func New(fns map[string]Fn, opts Options, onChange Notifier) (*Controller, error) {
	if opts.Initial.Key != "" {
		if _, ok := fns[opts.Initial.Key]; !ok {
			return nil, fmt.Errorf("initial sort: %w: %q", ErrUnknownKey, opts.Initial.Key)
		}
	}
	return &Controller{
		fns:      fns,
		state:    opts.Initial,
		toggle:   opts.ToggleType,
		onChange: onChange,
	}, nil
}

// State returns the active sort.
func (c *Controller) State() State {
	return c.state
}

// Sortable reports whether key has a comparator.
func (c *Controller) Sortable(key string) bool {
	_, ok := c.fns[key]
	return ok
}

// Toggle applies a header click on key. A new key sorts ascending; the
// active key reverses, or resets after descending with AlternateWithReset.
func (c *Controller) Toggle(key string) error {
	if !c.Sortable(key) {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}

	switch {
	case c.state.Key != key:
		c.state = State{Key: key}
	case c.toggle == AlternateWithReset && c.state.Reverse:
		c.state = State{}
	default:
		c.state.Reverse = !c.state.Reverse
	}

	if c.onChange != nil {
		c.onChange(Action{Kind: ActionSort, Key: key}, c.state)
	}
	return nil
}

// Apply returns tasks in display order. The input slice is not modified and
// equal elements keep their data order.
func (c *Controller) Apply(tasks []task.Task) []task.Task {
	out := slices.Clone(tasks)
	fn, ok := c.fns[c.state.Key]
	if !ok {
		return out
	}

	slices.SortStableFunc(out, func(a, b task.Task) int {
		if c.state.Reverse {
			return fn(b, a)
		}
		return fn(a, b)
	})
	return out
}
