package engine

import (
	"context"
	"sort"

	"github.com/vova2plova/Progressivity/internal/storage"
)

// ChildrenOf returns the tasks under the given parent (nil for roots of
// every owner), sorted ascending by position. Equal positions keep their
// insertion order, which makes sibling order deterministic.
//
// This is a full scan over the task collection on every call. Fine for a
// personal tracker; a larger deployment would maintain a parent index.
func (s *Service) ChildrenOf(ctx context.Context, parentID *string) ([]storage.Task, error) {
	all, err := s.store.ListTasks(ctx)
	if err != nil {
		return nil, err
	}

	var out []storage.Task
	for _, t := range all {
		if sameParent(t.ParentID, parentID) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

// RootsOf returns the owner's root tasks (nil parent), ordered like
// ChildrenOf.
func (s *Service) RootsOf(ctx context.Context, ownerID string) ([]storage.Task, error) {
	all, err := s.store.ListTasks(ctx)
	if err != nil {
		return nil, err
	}

	var out []storage.Task
	for _, t := range all {
		if t.ParentID == nil && t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

// GetTask returns a task by id, or ErrNotFound.
func (s *Service) GetTask(ctx context.Context, id string) (*storage.Task, error) {
	t, err := s.store.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrNotFound
	}
	return t, nil
}

// TaskView is a task enriched with its computed progress and materialized
// children, ready for tree rendering. Progress is a 0-100 percentage,
// unrounded.
type TaskView struct {
	storage.Task
	Progress          float64
	CompletedChildren int
	TotalChildren     int
	Children          []TaskView
}

// GetTaskView builds the enriched view for a task, recursively
// materializing its subtree. Nothing is cached; progress is recomputed on
// every call.
func (s *Service) GetTaskView(ctx context.Context, id string) (*TaskView, error) {
	t, err := s.store.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrNotFound
	}

	ratio, err := s.CompletionRatio(ctx, id)
	if err != nil {
		return nil, err
	}
	children, err := s.ChildrenOf(ctx, &t.ID)
	if err != nil {
		return nil, err
	}

	view := &TaskView{
		Task:          *t,
		Progress:      ratio * 100,
		TotalChildren: len(children),
	}
	for _, child := range children {
		if Status(child.Status) == StatusCompleted {
			view.CompletedChildren++
		}
		cv, err := s.GetTaskView(ctx, child.ID)
		if err != nil {
			return nil, err
		}
		view.Children = append(view.Children, *cv)
	}
	return view, nil
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
