package app

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/tasktable/internal/plugin/lua"
	"github.com/dshills/tasktable/internal/selection"
	"github.com/dshills/tasktable/internal/sorting"
)

// toggleAll handles the header checkbox.
func (app *Application) toggleAll() {
	app.lastError = nil
	app.selection.ToggleAll()
}

// rowClick handles a click on a row body.
func (app *Application) rowClick(id string) {
	app.lastError = app.checkOp("row click", id, app.selection.ToggleRowByID)
}

// buttonClick handles a click on a row checkbox.
func (app *Application) buttonClick(id string) {
	app.lastError = app.checkOp("checkbox click", id, app.selection.ToggleButtonByID)
}

// sortBy handles a click on a sortable header.
func (app *Application) sortBy(key string) {
	app.lastError = app.checkOp("sort", key, app.sorter.Toggle)
	if app.lastError == nil {
		app.refreshRows()
	}
}

// checkOp runs a controller operation and logs a refusal. A refused
// operation changes nothing.
func (app *Application) checkOp(op, target string, fn func(string) error) error {
	if target == "" {
		return NewOperationError(op, target, ErrNoFocus)
	}
	if err := fn(target); err != nil {
		opErr := NewOperationError(op, target, err)
		app.metrics.RecordRejected()
		app.logger.WithComponent("table").Warn("%v", opErr)
		return opErr
	}
	return nil
}

// refreshRows reapplies the sort order to the view.
func (app *Application) refreshRows() {
	app.view.SetRows(app.sorter.Apply(app.store.All()))
}

// selectionNotifier fans a committed selection change out to the log, the
// metrics and the Lua hook.
func (app *Application) selectionNotifier() selection.Notifier {
	return func(action selection.Action, state selection.State) {
		eventID := uuid.NewString()
		app.metrics.RecordSelection(action.Kind)

		app.logger.WithComponent("selection").WithFields(map[string]any{
			"event":   eventID,
			"action":  string(action.Kind),
			"id":      action.ID,
			"trigger": action.Trigger.String(),
			"ids":     state.IDs,
			"all":     state.All,
			"none":    state.None,
		}).Info("select change")

		if app.hooks == nil {
			return
		}
		err := app.hooks.SelectChanged(lua.SelectEvent{EventID: eventID, Action: action, State: state})
		if err != nil {
			app.metrics.RecordHookError()
			app.logComponentError("hooks", err)
		}
	}
}

// sortNotifier fans a committed sort change out like selectionNotifier.
func (app *Application) sortNotifier() sorting.Notifier {
	return func(action sorting.Action, state sorting.State) {
		eventID := uuid.NewString()
		app.metrics.RecordSort()

		app.logger.WithComponent("sort").WithFields(map[string]any{
			"event":   eventID,
			"key":     state.Key,
			"reverse": state.Reverse,
		}).Info("sort change")

		if app.hooks == nil {
			return
		}
		err := app.hooks.SortChanged(lua.SortEvent{EventID: eventID, Action: action, State: state})
		if err != nil {
			app.metrics.RecordHookError()
			app.logComponentError("hooks", err)
		}
	}
}

// statusText summarizes selection and sort for the status line.
func (app *Application) statusText() string {
	s := fmt.Sprintf("%d of %d selected", app.selection.Len(), app.store.Len())

	if st := app.sorter.State(); st.Active() {
		dir := "asc"
		if st.Reverse {
			dir = "desc"
		}
		s += fmt.Sprintf("  sort %s %s", st.Key, dir)
	}

	if app.lastError != nil {
		s += "  " + app.lastError.Error()
	}
	return s + "  (space check, enter row, a all, 1-4 sort, q quit)"
}
