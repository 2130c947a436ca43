package app

import (
	"errors"

	"github.com/dshills/tasktable/internal/renderer/backend"
	"github.com/dshills/tasktable/internal/table"
)

// eventLoop reads backend events until quit or shutdown. Every controller
// call happens on this goroutine.
func (app *Application) eventLoop() error {
	b := app.Backend()

	for {
		select {
		case <-app.done:
			return nil
		default:
		}

		ev := b.PollEvent()

		timer := StartTimer()
		err := app.handleBackendEvent(ev)
		app.metrics.RecordEvent(timer.Stop())

		if err != nil {
			if errors.Is(err, ErrQuit) {
				app.logger.Info("quit requested")
				return nil
			}
			return err
		}

		app.render()
	}
}

// handleBackendEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return app.handleKeyEvent(ev)
	case backend.EventMouse:
		return app.handleMouseEvent(ev)
	default:
		// Resize and interrupt only need a redraw.
		return nil
	}
}

// handleKeyEvent maps keys to table actions.
func (app *Application) handleKeyEvent(ev backend.Event) error {
	view := app.view

	switch ev.Key {
	case backend.KeyEscape, backend.KeyCtrlC:
		return ErrQuit
	case backend.KeyUp:
		view.MoveFocus(-1)
	case backend.KeyDown:
		view.MoveFocus(1)
	case backend.KeyHome:
		view.SetFocus(0)
	case backend.KeyEnd:
		view.SetFocus(len(view.Rows()) - 1)
	case backend.KeyPageUp:
		view.MoveFocus(-view.PageSize())
	case backend.KeyPageDown:
		view.MoveFocus(view.PageSize())
	case backend.KeyEnter:
		app.rowClick(view.FocusedID())
	case backend.KeyCtrlA:
		app.toggleAll()
	case backend.KeyRune:
		return app.handleRune(ev.Rune)
	}
	return nil
}

func (app *Application) handleRune(r rune) error {
	view := app.view

	switch r {
	case 'q':
		return ErrQuit
	case 'k':
		view.MoveFocus(-1)
	case 'j':
		view.MoveFocus(1)
	case ' ':
		app.buttonClick(view.FocusedID())
	case 'a':
		app.toggleAll()
	default:
		if r >= '1' && r <= '9' {
			cols := view.Columns()
			if i := int(r - '1'); i < len(cols) && cols[i].SortKey != "" {
				app.sortBy(cols[i].SortKey)
			}
		}
	}
	return nil
}

// handleMouseEvent acts on left button presses. Terminals repeat the
// button state while dragging, so only the transition counts.
func (app *Application) handleMouseEvent(ev backend.Event) error {
	pressed := ev.MouseButton == backend.MouseLeft && app.lastButton != backend.MouseLeft
	app.lastButton = ev.MouseButton

	switch ev.MouseButton {
	case backend.MouseWheelUp:
		app.view.MoveFocus(-1)
		return nil
	case backend.MouseWheelDown:
		app.view.MoveFocus(1)
		return nil
	}
	if !pressed {
		return nil
	}

	target := app.view.HitTest(ev.MouseX, ev.MouseY)
	switch target.Kind {
	case table.TargetHeaderCheckbox:
		app.toggleAll()
	case table.TargetHeaderCell:
		app.sortBy(target.SortKey)
	case table.TargetRowCheckbox:
		app.view.SetFocus(target.Index)
		app.buttonClick(target.ID)
	case table.TargetRow:
		app.view.SetFocus(target.Index)
		app.rowClick(target.ID)
	}
	return nil
}

// render draws the table and the status line.
func (app *Application) render() {
	b := app.Backend()
	if b == nil {
		return
	}

	timer := StartTimer()
	app.view.SetStatus(app.statusText())
	app.view.Draw(b, app.selection, app.sorter.State())
	app.metrics.RecordRender(timer.Stop())
}
