package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vova2plova/Progressivity/internal/storage"
)

type CreateTaskInput struct {
	Title       string
	Description *string
	ParentID    *string
	// Kind is the explicit task kind. When empty, the kind is inferred
	// from parent presence: children default to leaf, roots to container.
	Kind        Kind
	Unit        *string
	TargetValue *float64
	Deadline    *time.Time
}

// CreateTask creates a task for the owner. The new task starts pending and
// is appended after its current siblings (max sibling position + 1, or 0).
// A supplied parent must exist; orphan subtrees are rejected with
// ErrNotFound.
func (s *Service) CreateTask(ctx context.Context, in CreateTaskInput, ownerID string) (*storage.Task, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	if in.TargetValue != nil && *in.TargetValue <= 0 {
		return nil, ValidationError{Field: "target_value", Reason: "must be positive"}
	}

	if in.ParentID != nil {
		parent, err := s.store.GetTask(ctx, *in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, ErrNotFound
		}
	}

	kind := in.Kind
	if kind == "" {
		if in.ParentID != nil {
			kind = KindLeaf
		} else {
			kind = KindContainer
		}
	}
	if !kind.IsValid() {
		return nil, ValidationError{Field: "kind", Reason: "must be container or leaf"}
	}

	position, err := s.nextPosition(ctx, in.ParentID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	t := &storage.Task{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		ParentID:    in.ParentID,
		Title:       title,
		Description: in.Description,
		Status:      string(StatusPending),
		Kind:        string(kind),
		Unit:        in.Unit,
		TargetValue: in.TargetValue,
		Position:    position,
		Deadline:    in.Deadline,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.PutTask(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) nextPosition(ctx context.Context, parentID *string) (int, error) {
	siblings, err := s.ChildrenOf(ctx, parentID)
	if err != nil {
		return 0, err
	}
	if len(siblings) == 0 {
		return 0, nil
	}
	max := siblings[0].Position
	for _, t := range siblings[1:] {
		if t.Position > max {
			max = t.Position
		}
	}
	return max + 1, nil
}
