package sorting

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/dshills/tasktable/internal/task"
)

// DefaultFns returns comparators for the task columns. Text columns use
// en-US collation so that case and accents order the way a reader expects.
// The returned comparators share a collator and must be used from one
// goroutine.
func DefaultFns() map[string]Fn {
	col := collate.New(language.AmericanEnglish, collate.IgnoreCase)

	return map[string]Fn{
		KeyTask: func(a, b task.Task) int {
			return col.CompareString(a.Name, b.Name)
		},
		KeyDeadline: func(a, b task.Task) int {
			return a.Deadline.Compare(b.Deadline)
		},
		KeyType: func(a, b task.Task) int {
			return col.CompareString(a.Type, b.Type)
		},
		KeyComplete: func(a, b task.Task) int {
			switch {
			case a.IsComplete == b.IsComplete:
				return 0
			case !a.IsComplete:
				return -1
			default:
				return 1
			}
		},
	}
}
