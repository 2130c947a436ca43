// Package task provides the task record and the read-only store that backs
// the task table.
package task

import (
	"errors"
	"strconv"
	"time"
)

// DateLayout is the on-disk deadline format used by data files.
const DateLayout = "2006-01-02"

// displayLayout matches the en-US numeric date with 2-digit month and day.
const displayLayout = "01/02/2006"

// Task errors.
var (
	// ErrEmptyID is returned when a task has no id.
	ErrEmptyID = errors.New("task id is empty")

	// ErrDuplicateID is returned when two tasks share an id.
	ErrDuplicateID = errors.New("duplicate task id")

	// ErrUnsupportedFormat is returned for data files with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported data file format")
)

// Task is one row of the table.
type Task struct {
	ID         string
	Name       string
	Deadline   time.Time
	Type       string
	IsComplete bool
}

// DeadlineText formats the deadline as MM/DD/YYYY.
func (t Task) DeadlineText() string {
	if t.Deadline.IsZero() {
		return ""
	}
	return t.Deadline.Format(displayLayout)
}

// CompleteText returns "true" or "false".
func (t Task) CompleteText() string {
	return strconv.FormatBool(t.IsComplete)
}

// date builds a local calendar date.
func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

// Demo returns the built-in task list.
func Demo() []Task {
	return []Task{
		{ID: "1", Name: "VSCode", Deadline: date(2020, time.February, 17), Type: "SETUP", IsComplete: true},
		{ID: "2", Name: "JavaScript", Deadline: date(2020, time.March, 28), Type: "LEARN", IsComplete: true},
		{ID: "3", Name: "React", Deadline: date(2020, time.April, 8), Type: "LEARN", IsComplete: false},
	}
}
