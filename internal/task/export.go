package task

import (
	"github.com/tidwall/sjson"
)

// ExportSelection renders the selected tasks as a JSON document:
//
//	{"count":2,"ids":["1","2"],"tasks":[{"id":"1",...},...]}
//
// Tasks appear in data order. Ids unknown to the store are skipped.
func ExportSelection(s *Store, ids []string) ([]byte, error) {
	selected := make(map[string]bool, len(ids))
	for _, id := range ids {
		selected[id] = true
	}

	out := []byte(`{"count":0,"ids":[],"tasks":[]}`)
	n := 0
	for _, t := range s.tasks {
		if !selected[t.ID] {
			continue
		}

		obj, err := taskJSON(t)
		if err != nil {
			return nil, err
		}
		if out, err = sjson.SetBytes(out, "ids.-1", t.ID); err != nil {
			return nil, err
		}
		if out, err = sjson.SetRawBytes(out, "tasks.-1", obj); err != nil {
			return nil, err
		}
		n++
	}

	return sjson.SetBytes(out, "count", n)
}

func taskJSON(t Task) ([]byte, error) {
	obj := []byte(`{}`)
	fields := []struct {
		path  string
		value any
	}{
		{"id", t.ID},
		{"name", t.Name},
		{"deadline", deadlineValue(t)},
		{"type", t.Type},
		{"isComplete", t.IsComplete},
	}

	var err error
	for _, f := range fields {
		if obj, err = sjson.SetBytes(obj, f.path, f.value); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

func deadlineValue(t Task) string {
	if t.Deadline.IsZero() {
		return ""
	}
	return t.Deadline.Format(DateLayout)
}
