package engine

import (
	"context"
	"time"
)

// ReorderTaskInput moves a task to a new position among its siblings,
// optionally under a new parent. NewParentID's zero value keeps the
// current parent; Set with a nil pointer (Clear) moves the task to the
// root level.
type ReorderTaskInput struct {
	NewPosition int
	NewParentID Field[string]
}

// ReorderTask honors the requested position literally: siblings under the
// target parent are renumbered 0,1,2,... in their existing order, leaving
// a gap at NewPosition for the moved task to occupy exactly. Positions
// beyond the sibling count are not clamped. Returns false for an unknown
// task id, an unknown target parent, or a move that would place the task
// under itself or one of its own descendants.
func (s *Service) ReorderTask(ctx context.Context, taskID string, in ReorderTaskInput) (bool, error) {
	t, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return false, err
	}
	if t == nil {
		return false, nil
	}

	targetParent := t.ParentID
	if in.NewParentID.Valid {
		targetParent = in.NewParentID.Ptr
	}
	if targetParent != nil {
		parent, err := s.store.GetTask(ctx, *targetParent)
		if err != nil {
			return false, err
		}
		if parent == nil {
			return false, nil
		}
		// Re-parenting under the task itself or any of its descendants
		// would write a parent cycle into the store. Walk up from the
		// target parent; hitting the moved task means the target sits
		// inside its subtree.
		for cur := parent; ; {
			if cur.ID == taskID {
				return false, nil
			}
			if cur.ParentID == nil {
				break
			}
			next, err := s.store.GetTask(ctx, *cur.ParentID)
			if err != nil {
				return false, err
			}
			if next == nil {
				break
			}
			cur = next
		}
	}

	all, err := s.ChildrenOf(ctx, targetParent)
	if err != nil {
		return false, err
	}
	siblings := all[:0:0]
	for _, sib := range all {
		if sib.ID != taskID {
			siblings = append(siblings, sib)
		}
	}

	now := time.Now().UTC()

	// Renumber siblings sequentially, skipping the slot the moved task
	// will take. Only siblings whose position actually changed are
	// written back.
	pos := 0
	for i := range siblings {
		if pos == in.NewPosition {
			pos++
		}
		if siblings[i].Position != pos {
			siblings[i].Position = pos
			siblings[i].UpdatedAt = now
			if err := s.store.PutTask(ctx, &siblings[i]); err != nil {
				return false, err
			}
		}
		pos++
	}

	t.Position = in.NewPosition
	t.ParentID = targetParent
	t.UpdatedAt = now
	if err := s.store.PutTask(ctx, t); err != nil {
		return false, err
	}
	return true, nil
}
