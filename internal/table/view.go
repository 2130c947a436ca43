// Package table draws the task table and maps screen positions back to
// table targets.
//
// The view is a thin presentation layer. It owns no selection or sort state:
// each Draw reads the current flags from a Selection and a sorting.State, and
// HitTest tells the caller which control was clicked so the caller can invoke
// the matching controller operation.
package table

import (
	"github.com/dshills/tasktable/internal/renderer/backend"
	"github.com/dshills/tasktable/internal/renderer/core"
	"github.com/dshills/tasktable/internal/sorting"
	"github.com/dshills/tasktable/internal/task"
)

// Checkbox glyphs.
const (
	BoxChecked       = "[x]"
	BoxUnchecked     = "[ ]"
	BoxIndeterminate = "[-]"
)

// checkboxWidth is the stiff first column: focus marker, box, padding.
const checkboxWidth = 5

// Selection is the read side of the selection controller.
type Selection interface {
	IsSelected(id string) bool
	All() bool
	None() bool
}

// Column is a text column of the table.
type Column struct {
	Title   string
	SortKey string // empty when the column is not sortable
	Width   int
	Value   func(task.Task) string
}

// DefaultColumns returns the Task, Deadline, Type and Complete columns.
func DefaultColumns() []Column {
	return []Column{
		{Title: "Task", SortKey: sorting.KeyTask, Width: 16, Value: func(t task.Task) string { return t.Name }},
		{Title: "Deadline", SortKey: sorting.KeyDeadline, Width: 12, Value: task.Task.DeadlineText},
		{Title: "Type", SortKey: sorting.KeyType, Width: 10, Value: func(t task.Task) string { return t.Type }},
		{Title: "Complete", SortKey: sorting.KeyComplete, Width: 10, Value: task.Task.CompleteText},
	}
}

// HeaderCheckbox returns the select-all glyph for the given flags.
func HeaderCheckbox(all, none bool) string {
	switch {
	case all && !none:
		return BoxChecked
	case !all && !none:
		return BoxIndeterminate
	default:
		return BoxUnchecked
	}
}

// RowCheckbox returns the per-row glyph.
func RowCheckbox(selected bool) string {
	if selected {
		return BoxChecked
	}
	return BoxUnchecked
}

// View renders rows in display order into a backend.
type View struct {
	columns []Column
	theme   Theme
	rows    []task.Task
	focus   int
	offset  int
	height  int // rows available for the body on the last draw
	status  string
}

// NewView creates a view with the given columns and theme.
func NewView(columns []Column, theme Theme) *View {
	return &View{
		columns: columns,
		theme:   theme,
	}
}

// Columns returns the view's columns.
func (v *View) Columns() []Column {
	return v.columns
}

// SetRows replaces the displayed rows. Focus follows the previously focused
// task when it is still present.
func (v *View) SetRows(rows []task.Task) {
	focused := v.FocusedID()
	v.rows = rows
	v.focus = 0
	for i, t := range rows {
		if t.ID == focused {
			v.focus = i
			break
		}
	}
	v.clampFocus()
}

// Rows returns the rows in display order.
func (v *View) Rows() []task.Task {
	return v.rows
}

// SetStatus sets the text of the status line.
func (v *View) SetStatus(s string) {
	v.status = s
}

// Focus returns the focused display row index.
func (v *View) Focus() int {
	return v.focus
}

// FocusedID returns the id of the focused row, or "" when there are no rows.
func (v *View) FocusedID() string {
	if v.focus < 0 || v.focus >= len(v.rows) {
		return ""
	}
	return v.rows[v.focus].ID
}

// MoveFocus moves the focus by delta rows, clamped to the table.
func (v *View) MoveFocus(delta int) {
	v.focus += delta
	v.clampFocus()
}

// SetFocus focuses display row i, clamped to the table.
func (v *View) SetFocus(i int) {
	v.focus = i
	v.clampFocus()
}

// PageSize returns the number of body rows shown on the last draw.
func (v *View) PageSize() int {
	return max(v.height, 1)
}

func (v *View) clampFocus() {
	if v.focus >= len(v.rows) {
		v.focus = len(v.rows) - 1
	}
	if v.focus < 0 {
		v.focus = 0
	}
}

// scroll keeps the focused row inside the visible body.
func (v *View) scroll() {
	if v.height <= 0 {
		v.offset = 0
		return
	}
	if v.focus < v.offset {
		v.offset = v.focus
	}
	if v.focus >= v.offset+v.height {
		v.offset = v.focus - v.height + 1
	}
	if maxOffset := max(len(v.rows)-v.height, 0); v.offset > maxOffset {
		v.offset = maxOffset
	}
}

// Draw renders the header, body and status line, then shows the frame.
func (v *View) Draw(b backend.Backend, sel Selection, sort sorting.State) {
	width, height := b.Size()
	b.Clear()
	b.HideCursor()

	// header + body + status line
	v.height = max(height-2, 0)
	v.scroll()

	if height > 0 {
		v.drawHeader(b, width, sel, sort)
	}
	for i := 0; i < v.height && v.offset+i < len(v.rows); i++ {
		idx := v.offset + i
		t := v.rows[idx]
		v.drawRow(b, 1+i, width, idx, t, sel.IsSelected(t.ID))
	}
	if height > 1 {
		v.drawText(b, 0, height-1, width, core.Truncate(v.status, width), core.DefaultStyle())
	}

	b.Show()
}

func (v *View) drawHeader(b backend.Backend, width int, sel Selection, sort sorting.State) {
	style := v.theme.headerStyle()
	b.Fill(core.RectFromSize(0, 0, 1, width), core.NewStyledCell(' ', style))

	v.drawText(b, 1, 0, width, HeaderCheckbox(sel.All(), sel.None()), style)

	x := checkboxWidth
	for _, col := range v.columns {
		title := col.Title
		if col.SortKey != "" && col.SortKey == sort.Key {
			if sort.Reverse {
				title += " ▼"
			} else {
				title += " ▲"
			}
		}
		v.drawText(b, x, 0, min(x+col.Width, width), core.Truncate(title, col.Width), style)
		x += col.Width + 1
	}
}

func (v *View) drawRow(b backend.Backend, y, width, idx int, t task.Task, selected bool) {
	style := v.theme.rowStyle(idx, selected)
	b.Fill(core.RectFromSize(y, 0, 1, width), core.NewStyledCell(' ', style))

	if idx == v.focus {
		v.drawText(b, 0, y, width, "›", style.Bold())
	}
	v.drawText(b, 1, y, width, RowCheckbox(selected), style)

	x := checkboxWidth
	for _, col := range v.columns {
		v.drawText(b, x, y, min(x+col.Width, width), core.Truncate(col.Value(t), col.Width), style)
		x += col.Width + 1
	}
}

// drawText writes s starting at x and stops before column limit.
func (v *View) drawText(b backend.Backend, x, y, limit int, s string, style core.Style) {
	for _, r := range s {
		w := core.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > limit {
			return
		}
		b.SetCell(x, y, core.NewStyledCell(r, style))
		if w == 2 {
			b.SetCell(x+1, y, core.Cell{Style: style})
		}
		x += w
	}
}
