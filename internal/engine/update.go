package engine

import (
	"context"
	"time"

	"github.com/vova2plova/Progressivity/internal/storage"
)

// UpdateTaskInput carries a partial update. Unsupplied fields are left
// unchanged; supplying null clears a nullable field. Parent and kind are
// immutable through this path (reorder moves tasks between parents).
type UpdateTaskInput struct {
	Title       Field[string]
	Description Field[string]
	Status      Field[Status]
	Unit        Field[string]
	TargetValue Field[float64]
	Deadline    Field[time.Time]
}

// UpdateTask applies a partial update and refreshes the updated timestamp.
// Returns ErrNotFound for an unknown id.
func (s *Service) UpdateTask(ctx context.Context, id string, in UpdateTaskInput) (*storage.Task, error) {
	t, err := s.store.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrNotFound
	}

	if in.Title.Valid {
		if in.Title.Ptr == nil {
			return nil, ValidationError{Field: "title", Reason: "must not be null"}
		}
		title, err := normalizeTitle(*in.Title.Ptr)
		if err != nil {
			return nil, err
		}
		t.Title = title
	}
	if in.Description.Valid {
		t.Description = in.Description.Ptr
	}
	if in.Status.Valid {
		if in.Status.Ptr == nil || !in.Status.Ptr.IsValid() {
			return nil, ValidationError{Field: "status", Reason: "must be pending, in_progress, completed or cancelled"}
		}
		t.Status = string(*in.Status.Ptr)
	}
	if in.Unit.Valid {
		t.Unit = in.Unit.Ptr
	}
	if in.TargetValue.Valid {
		if in.TargetValue.Ptr != nil && *in.TargetValue.Ptr <= 0 {
			return nil, ValidationError{Field: "target_value", Reason: "must be positive"}
		}
		t.TargetValue = in.TargetValue.Ptr
	}
	if in.Deadline.Valid {
		t.Deadline = in.Deadline.Ptr
	}

	t.UpdatedAt = time.Now().UTC()
	if err := s.store.PutTask(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}
