package engine

import "context"

// DeleteTask removes a task, every descendant task, and every progress
// entry owned by any task in that subtree. Returns false for an unknown
// id. The full descendant and entry id sets are collected before anything
// is deleted, then removed in a single store batch, so the cascade is
// all-or-nothing from the caller's point of view.
func (s *Service) DeleteTask(ctx context.Context, id string) (bool, error) {
	t, err := s.store.GetTask(ctx, id)
	if err != nil {
		return false, err
	}
	if t == nil {
		return false, nil
	}

	taskIDs, err := s.collectSubtree(ctx, id)
	if err != nil {
		return false, err
	}

	doomed := make(map[string]bool, len(taskIDs))
	for _, tid := range taskIDs {
		doomed[tid] = true
	}
	entries, err := s.store.ListEntries(ctx)
	if err != nil {
		return false, err
	}
	var entryIDs []string
	for _, e := range entries {
		if doomed[e.TaskID] {
			entryIDs = append(entryIDs, e.ID)
		}
	}

	if err := s.store.DeleteBatch(ctx, taskIDs, entryIDs); err != nil {
		return false, err
	}
	return true, nil
}

// collectSubtree returns the ids of the subtree rooted at id, children
// before their parent (depth-first post-order).
func (s *Service) collectSubtree(ctx context.Context, id string) ([]string, error) {
	children, err := s.ChildrenOf(ctx, &id)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, child := range children {
		sub, err := s.collectSubtree(ctx, child.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, sub...)
	}
	return append(out, id), nil
}
