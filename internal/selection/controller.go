package selection

import "fmt"

// Controller holds the selected ids for one table instance.
type Controller struct {
	order    []string        // data ids in display-independent data order
	known    map[string]bool // membership test for order
	selected map[string]bool

	// owner is the trigger class that last wrote the selection.
	// TriggerNone means the selection came from Initial or ToggleAll.
	owner Trigger

	opts     Options
	onChange Notifier
}

// New creates a controller over the given data ids.
// Initial ids must belong to ids. onChange may be nil.
func New(ids []string, opts Options, initial Initial, onChange Notifier) (*Controller, error) {
	c := &Controller{
		order:    make([]string, len(ids)),
		known:    make(map[string]bool, len(ids)),
		selected: make(map[string]bool),
		opts:     opts,
		onChange: onChange,
	}
	copy(c.order, ids)
	for _, id := range ids {
		c.known[id] = true
	}

	defaults := initial.IDs
	if initial.ID != "" {
		defaults = append([]string{initial.ID}, defaults...)
	}
	for _, id := range defaults {
		if !c.known[id] {
			return nil, fmt.Errorf("initial selection: %w: %q", ErrUnknownID, id)
		}
		c.selected[id] = true
	}

	return c, nil
}

// Options returns the controller's selection policy.
func (c *Controller) Options() Options {
	return c.opts
}

// ToggleAll clears the selection when every id is selected and selects
// every id otherwise.
func (c *Controller) ToggleAll() {
	if c.All() {
		clear(c.selected)
	} else {
		for _, id := range c.order {
			c.selected[id] = true
		}
	}
	c.owner = TriggerNone

	c.notify(Action{Kind: ActionAll})
}

// ToggleRowByID applies a whole-row click on id.
// Row clicks are ignored when the click type is ButtonClick.
func (c *Controller) ToggleRowByID(id string) error {
	if c.opts.ClickType == ButtonClick {
		if !c.known[id] {
			return fmt.Errorf("%w: %q", ErrUnknownID, id)
		}
		return nil
	}
	return c.toggleByID(id, TriggerRow)
}

// ToggleButtonByID applies a checkbox click on id.
func (c *Controller) ToggleButtonByID(id string) error {
	return c.toggleByID(id, TriggerButton)
}

func (c *Controller) toggleByID(id string, trigger Trigger) error {
	if !c.known[id] {
		return fmt.Errorf("%w: %q", ErrUnknownID, id)
	}

	if !c.opts.CarryForward && c.owner != TriggerNone && c.owner != trigger {
		clear(c.selected)
	}

	switch c.opts.modeFor(trigger) {
	case SingleSelect:
		clear(c.selected)
		c.selected[id] = true
	case MultiSelect:
		if c.selected[id] {
			delete(c.selected, id)
		} else {
			c.selected[id] = true
		}
	}
	c.owner = trigger

	c.notify(Action{Kind: ActionID, ID: id, Trigger: trigger})
	return nil
}

// IsSelected reports whether id is selected.
func (c *Controller) IsSelected(id string) bool {
	return c.selected[id]
}

// All reports whether every id in the data set is selected.
// It is true for an empty data set.
func (c *Controller) All() bool {
	return len(c.selected) == len(c.order)
}

// None reports whether nothing is selected.
func (c *Controller) None() bool {
	return len(c.selected) == 0
}

// Len returns the number of selected ids.
func (c *Controller) Len() int {
	return len(c.selected)
}

// State returns a snapshot of the selection.
func (c *Controller) State() State {
	ids := make([]string, 0, len(c.selected))
	for _, id := range c.order {
		if c.selected[id] {
			ids = append(ids, id)
		}
	}
	return State{
		IDs:  ids,
		All:  c.All(),
		None: c.None(),
	}
}

// notify runs after the state is committed. A panicking notifier is not
// recovered here; the selection stays as committed.
func (c *Controller) notify(action Action) {
	if c.onChange == nil {
		return
	}
	c.onChange(action, c.State())
}
