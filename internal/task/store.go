package task

import "fmt"

// Store is an ordered, immutable list of tasks indexed by id.
// A Store is safe for concurrent reads.
type Store struct {
	tasks []Task
	index map[string]int
}

// NewStore creates a store from tasks, preserving their order.
// Every task must have a non-empty id that is unique within the list.
func NewStore(tasks []Task) (*Store, error) {
	s := &Store{
		tasks: make([]Task, len(tasks)),
		index: make(map[string]int, len(tasks)),
	}
	copy(s.tasks, tasks)

	for i, t := range s.tasks {
		if t.ID == "" {
			return nil, fmt.Errorf("task at position %d: %w", i, ErrEmptyID)
		}
		if _, dup := s.index[t.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, t.ID)
		}
		s.index[t.ID] = i
	}

	return s, nil
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// All returns a copy of the tasks in data order.
func (s *Store) All() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// IDs returns the task ids in data order.
func (s *Store) IDs() []string {
	ids := make([]string, len(s.tasks))
	for i, t := range s.tasks {
		ids[i] = t.ID
	}
	return ids
}

// Get returns the task with the given id.
func (s *Store) Get(id string) (Task, bool) {
	i, ok := s.index[id]
	if !ok {
		return Task{}, false
	}
	return s.tasks[i], true
}

// Contains reports whether id belongs to the store.
func (s *Store) Contains(id string) bool {
	_, ok := s.index[id]
	return ok
}
