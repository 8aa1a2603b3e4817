package storage

import "context"

// MemoryStore keeps both collections in process memory. It matches the
// single-actor model of the engine: no locking, every call runs to
// completion before the next one starts.
type MemoryStore struct {
	tasks      map[string]*Task
	taskOrder  []string
	entries    map[string]*ProgressEntry
	entryOrder []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tasks:   map[string]*Task{},
		entries: map[string]*ProgressEntry{},
	}
}

func (s *MemoryStore) GetTask(_ context.Context, id string) (*Task, error) {
	t, ok := s.tasks[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (s *MemoryStore) PutTask(_ context.Context, t *Task) error {
	if _, ok := s.tasks[t.ID]; !ok {
		s.taskOrder = append(s.taskOrder, t.ID)
	}
	cp := *t
	s.tasks[t.ID] = &cp
	return nil
}

func (s *MemoryStore) DeleteTask(_ context.Context, id string) (bool, error) {
	if _, ok := s.tasks[id]; !ok {
		return false, nil
	}
	delete(s.tasks, id)
	s.taskOrder = removeID(s.taskOrder, id)
	return true, nil
}

func (s *MemoryStore) ListTasks(_ context.Context) ([]Task, error) {
	out := make([]Task, 0, len(s.taskOrder))
	for _, id := range s.taskOrder {
		out = append(out, *s.tasks[id])
	}
	return out, nil
}

func (s *MemoryStore) GetEntry(_ context.Context, id string) (*ProgressEntry, error) {
	e, ok := s.entries[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (s *MemoryStore) PutEntry(_ context.Context, e *ProgressEntry) error {
	if _, ok := s.entries[e.ID]; !ok {
		s.entryOrder = append(s.entryOrder, e.ID)
	}
	cp := *e
	s.entries[e.ID] = &cp
	return nil
}

func (s *MemoryStore) DeleteEntry(_ context.Context, id string) (bool, error) {
	if _, ok := s.entries[id]; !ok {
		return false, nil
	}
	delete(s.entries, id)
	s.entryOrder = removeID(s.entryOrder, id)
	return true, nil
}

func (s *MemoryStore) ListEntries(_ context.Context) ([]ProgressEntry, error) {
	out := make([]ProgressEntry, 0, len(s.entryOrder))
	for _, id := range s.entryOrder {
		out = append(out, *s.entries[id])
	}
	return out, nil
}

func (s *MemoryStore) DeleteBatch(ctx context.Context, taskIDs, entryIDs []string) error {
	for _, id := range entryIDs {
		if _, err := s.DeleteEntry(ctx, id); err != nil {
			return err
		}
	}
	for _, id := range taskIDs {
		if _, err := s.DeleteTask(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *MemoryStore) Close() error { return nil }

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
