package engine

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/vova2plova/Progressivity/internal/storage"
)

type AddProgressInput struct {
	Value float64
	Note  *string
	// RecordedAt is the semantic event time; defaults to now.
	RecordedAt *time.Time
}

// AddProgress records a progress entry against an existing leaf task.
// Containers never own entries (ErrContainerProgress); unknown tasks
// return ErrNotFound. Entries are immutable once created.
func (s *Service) AddProgress(ctx context.Context, taskID string, in AddProgressInput) (*storage.ProgressEntry, error) {
	t, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrNotFound
	}
	if Kind(t.Kind) == KindContainer {
		return nil, ErrContainerProgress
	}
	if in.Value < 0 {
		return nil, ValidationError{Field: "value", Reason: "must not be negative"}
	}

	now := time.Now().UTC()
	recordedAt := now
	if in.RecordedAt != nil {
		recordedAt = *in.RecordedAt
	}

	e := &storage.ProgressEntry{
		ID:         uuid.NewString(),
		TaskID:     taskID,
		Value:      in.Value,
		Note:       in.Note,
		RecordedAt: recordedAt,
		CreatedAt:  now,
	}
	if err := s.store.PutEntry(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// DeleteProgress removes a single entry. Returns false for an unknown id;
// no cascade is involved.
func (s *Service) DeleteProgress(ctx context.Context, id string) (bool, error) {
	return s.store.DeleteEntry(ctx, id)
}

// ListProgress returns a task's entries ordered ascending by recorded
// time (not creation order); ties keep their insertion order.
func (s *Service) ListProgress(ctx context.Context, taskID string) ([]storage.ProgressEntry, error) {
	all, err := s.store.ListEntries(ctx)
	if err != nil {
		return nil, err
	}

	var out []storage.ProgressEntry
	for _, e := range all {
		if e.TaskID == taskID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RecordedAt.Before(out[j].RecordedAt) })
	return out, nil
}
