package engine

import (
	"context"
	"math"
	"testing"
)

func ratio(t *testing.T, svc *Service, id string) float64 {
	t.Helper()
	r, err := svc.CompletionRatio(context.Background(), id)
	if err != nil {
		t.Fatalf("CompletionRatio(%s): %v", id, err)
	}
	return r
}

func TestRatioUnknownTaskIsZero(t *testing.T) {
	svc := newTestService(t)
	if got := ratio(t, svc, "missing"); got != 0 {
		t.Fatalf("ratio=%f, want 0", got)
	}
}

func TestRatioEmptyContainerIsZero(t *testing.T) {
	svc := newTestService(t)
	c := mustCreate(t, svc, CreateTaskInput{Title: "Empty goal", Kind: KindContainer})
	if got := ratio(t, svc, c.ID); got != 0 {
		t.Fatalf("empty container ratio=%f, want 0 (not 100%%)", got)
	}
}

func TestRatioTargetLeaf(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	leaf := mustCreate(t, svc, CreateTaskInput{Title: "Read", Kind: KindLeaf, TargetValue: floatPtr(100)})
	if got := ratio(t, svc, leaf.ID); got != 0 {
		t.Fatalf("no entries: ratio=%f, want 0", got)
	}

	if _, err := svc.AddProgress(ctx, leaf.ID, AddProgressInput{Value: 40}); err != nil {
		t.Fatalf("AddProgress: %v", err)
	}
	if got := ratio(t, svc, leaf.ID); got != 0.4 {
		t.Fatalf("ratio=%f, want 0.4", got)
	}

	// Adding an entry never decreases the ratio.
	if _, err := svc.AddProgress(ctx, leaf.ID, AddProgressInput{Value: 35}); err != nil {
		t.Fatalf("AddProgress: %v", err)
	}
	if got := ratio(t, svc, leaf.ID); got != 0.75 {
		t.Fatalf("ratio=%f, want 0.75", got)
	}

	// Sum past the target clamps to exactly 1.
	if _, err := svc.AddProgress(ctx, leaf.ID, AddProgressInput{Value: 500}); err != nil {
		t.Fatalf("AddProgress: %v", err)
	}
	if got := ratio(t, svc, leaf.ID); got != 1 {
		t.Fatalf("ratio=%f, want exactly 1", got)
	}
}

func TestRatioBinaryLeafFollowsStatus(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	leaf := mustCreate(t, svc, CreateTaskInput{Title: "Update resume", Kind: KindLeaf})
	if got := ratio(t, svc, leaf.ID); got != 0 {
		t.Fatalf("pending binary leaf ratio=%f, want 0", got)
	}

	// A binary leaf may hold entries, but they never affect its ratio.
	if _, err := svc.AddProgress(ctx, leaf.ID, AddProgressInput{Value: 10}); err != nil {
		t.Fatalf("AddProgress on binary leaf: %v", err)
	}
	if got := ratio(t, svc, leaf.ID); got != 0 {
		t.Fatalf("binary leaf with entries ratio=%f, want 0", got)
	}

	if _, err := svc.UpdateTask(ctx, leaf.ID, UpdateTaskInput{Status: Set(StatusCompleted)}); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if got := ratio(t, svc, leaf.ID); got != 1 {
		t.Fatalf("completed binary leaf ratio=%f, want 1", got)
	}
}

func TestRatioContainerIsMeanOfChildren(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	root := mustCreate(t, svc, CreateTaskInput{Title: "Goals", Kind: KindContainer})
	half := mustCreate(t, svc, CreateTaskInput{Title: "Half", ParentID: &root.ID, TargetValue: floatPtr(10)})
	full := mustCreate(t, svc, CreateTaskInput{Title: "Full", ParentID: &root.ID, TargetValue: floatPtr(10)})

	if _, err := svc.AddProgress(ctx, half.ID, AddProgressInput{Value: 5}); err != nil {
		t.Fatalf("AddProgress: %v", err)
	}
	if _, err := svc.AddProgress(ctx, full.ID, AddProgressInput{Value: 10}); err != nil {
		t.Fatalf("AddProgress: %v", err)
	}

	if got := ratio(t, svc, root.ID); got != 0.75 {
		t.Fatalf("container ratio=%f, want 0.75", got)
	}

	// The mean is over immediate children, not descendant leaves: wrap
	// the two leaves one level deeper and add an empty sibling container.
	outer := mustCreate(t, svc, CreateTaskInput{Title: "Outer", Kind: KindContainer})
	ok, err := svc.ReorderTask(ctx, root.ID, ReorderTaskInput{NewPosition: 0, NewParentID: Set(outer.ID)})
	if err != nil || !ok {
		t.Fatalf("ReorderTask: ok=%v err=%v", ok, err)
	}
	mustCreate(t, svc, CreateTaskInput{Title: "Empty", ParentID: &outer.ID, Kind: KindContainer})

	// outer = mean(root 0.75, empty 0) = 0.375, not a leaf-count average.
	if got := ratio(t, svc, outer.ID); math.Abs(got-0.375) > 1e-12 {
		t.Fatalf("outer ratio=%f, want 0.375", got)
	}
}

func TestBooksScenario(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	books := mustCreate(t, svc, CreateTaskInput{Title: "Books", Kind: KindContainer})
	bookA := mustCreate(t, svc, CreateTaskInput{
		Title:       "Book A",
		ParentID:    &books.ID,
		Unit:        strPtr("pages"),
		TargetValue: floatPtr(100),
	})

	if _, err := svc.AddProgress(ctx, bookA.ID, AddProgressInput{Value: 40}); err != nil {
		t.Fatalf("AddProgress: %v", err)
	}
	if _, err := svc.AddProgress(ctx, bookA.ID, AddProgressInput{Value: 35}); err != nil {
		t.Fatalf("AddProgress: %v", err)
	}

	if got := ratio(t, svc, bookA.ID); got != 0.75 {
		t.Fatalf("Book A ratio=%f, want 0.75", got)
	}
	if got := ratio(t, svc, books.ID); got != 0.75 {
		t.Fatalf("Books ratio=%f, want 0.75 (single child)", got)
	}

	view, err := svc.GetTaskView(ctx, books.ID)
	if err != nil {
		t.Fatalf("GetTaskView: %v", err)
	}
	if view.Progress != 75 {
		t.Fatalf("view progress=%f, want 75", view.Progress)
	}
	if view.TotalChildren != 1 || view.CompletedChildren != 0 {
		t.Fatalf("children counts=%d/%d, want 0/1", view.CompletedChildren, view.TotalChildren)
	}
	if len(view.Children) != 1 || view.Children[0].ID != bookA.ID {
		t.Fatalf("children not materialized")
	}
	if view.Children[0].Progress != 75 {
		t.Fatalf("child view progress=%f, want 75", view.Children[0].Progress)
	}
}
