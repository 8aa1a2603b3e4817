package engine

import "context"

// OwnerStats summarizes an owner's task set for dashboards.
type OwnerStats struct {
	TotalTasks      int
	Containers      int
	Leaves          int
	ByStatus        map[Status]int
	ProgressEntries int
	// OverallProgress is the unweighted mean of the owner's root-task
	// ratios, as a 0-100 percentage. 0 when the owner has no roots.
	OverallProgress float64
}

// Stats computes the owner's summary. Like every read path, it is a full
// recomputation over the store.
func (s *Service) Stats(ctx context.Context, ownerID string) (*OwnerStats, error) {
	all, err := s.store.ListTasks(ctx)
	if err != nil {
		return nil, err
	}

	out := &OwnerStats{ByStatus: map[Status]int{}}
	owned := map[string]bool{}
	for _, t := range all {
		if t.OwnerID != ownerID {
			continue
		}
		owned[t.ID] = true
		out.TotalTasks++
		out.ByStatus[Status(t.Status)]++
		if Kind(t.Kind) == KindContainer {
			out.Containers++
		} else {
			out.Leaves++
		}
	}

	entries, err := s.store.ListEntries(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if owned[e.TaskID] {
			out.ProgressEntries++
		}
	}

	roots, err := s.RootsOf(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(roots) > 0 {
		var sum float64
		for _, r := range roots {
			ratio, err := s.CompletionRatio(ctx, r.ID)
			if err != nil {
				return nil, err
			}
			sum += ratio
		}
		out.OverallProgress = sum / float64(len(roots)) * 100
	}
	return out, nil
}
