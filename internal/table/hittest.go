package table

// TargetKind identifies what a screen position hits.
type TargetKind uint8

const (
	TargetNone TargetKind = iota
	TargetHeaderCheckbox
	TargetHeaderCell
	TargetRowCheckbox
	TargetRow
)

// String returns the target kind name.
func (k TargetKind) String() string {
	switch k {
	case TargetHeaderCheckbox:
		return "header-checkbox"
	case TargetHeaderCell:
		return "header-cell"
	case TargetRowCheckbox:
		return "row-checkbox"
	case TargetRow:
		return "row"
	default:
		return "none"
	}
}

// Target is the result of a hit test.
type Target struct {
	Kind    TargetKind
	ID      string // task id for row targets
	Index   int    // display row index for row targets
	SortKey string // sort key for header cells
}

// HitTest maps a screen position from the last Draw to a table target.
func (v *View) HitTest(x, y int) Target {
	if x < 0 || y < 0 {
		return Target{}
	}

	if y == 0 {
		if x < checkboxWidth {
			return Target{Kind: TargetHeaderCheckbox}
		}
		if col, ok := v.columnAt(x); ok && col.SortKey != "" {
			return Target{Kind: TargetHeaderCell, SortKey: col.SortKey}
		}
		return Target{}
	}

	line := y - 1
	if line >= v.height {
		return Target{}
	}
	idx := v.offset + line
	if idx >= len(v.rows) {
		return Target{}
	}

	kind := TargetRow
	if x < checkboxWidth {
		kind = TargetRowCheckbox
	}
	return Target{Kind: kind, ID: v.rows[idx].ID, Index: idx}
}

// columnAt returns the text column under screen column x.
func (v *View) columnAt(x int) (Column, bool) {
	start := checkboxWidth
	for _, col := range v.columns {
		if x >= start && x < start+col.Width {
			return col, true
		}
		start += col.Width + 1
	}
	return Column{}, false
}
