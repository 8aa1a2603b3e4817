package engine

import "context"

// CompletionRatio computes a task's completion in [0, 1].
//
//   - unknown id: 0 (this read path never signals not-found)
//   - leaf with a target: min(1, sum of entry values / target)
//   - leaf without a target: 1 when completed, else 0
//   - container: unweighted mean of its immediate children's ratios,
//     0 when it has no children
//
// The mean is over immediate children only, so deep subtrees do not weigh
// more than shallow ones. Recomputed from scratch on every call.
func (s *Service) CompletionRatio(ctx context.Context, id string) (float64, error) {
	return s.completionRatio(ctx, id, map[string]bool{})
}

func (s *Service) completionRatio(ctx context.Context, id string, visited map[string]bool) (float64, error) {
	// The lifecycle operations never create a parent cycle, but a guard
	// keeps a corrupted store from recursing forever.
	if visited[id] {
		return 0, nil
	}
	visited[id] = true

	t, err := s.store.GetTask(ctx, id)
	if err != nil {
		return 0, err
	}
	if t == nil {
		return 0, nil
	}

	if t.TargetValue != nil {
		if *t.TargetValue <= 0 {
			return 0, nil
		}
		entries, err := s.ListProgress(ctx, id)
		if err != nil {
			return 0, err
		}
		var sum float64
		for _, e := range entries {
			sum += e.Value
		}
		ratio := sum / *t.TargetValue
		if ratio > 1 {
			ratio = 1
		}
		return ratio, nil
	}

	if Kind(t.Kind) == KindLeaf {
		if Status(t.Status) == StatusCompleted {
			return 1, nil
		}
		return 0, nil
	}

	children, err := s.ChildrenOf(ctx, &t.ID)
	if err != nil {
		return 0, err
	}
	if len(children) == 0 {
		return 0, nil
	}
	var sum float64
	for _, child := range children {
		r, err := s.completionRatio(ctx, child.ID, visited)
		if err != nil {
			return 0, err
		}
		sum += r
	}
	return sum / float64(len(children)), nil
}
