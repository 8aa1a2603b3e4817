package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vova2plova/Progressivity/internal/storage"
)

const testOwner = "user-1"

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(storage.NewMemoryStore())
}

func mustCreate(t *testing.T, svc *Service, in CreateTaskInput) *storage.Task {
	t.Helper()
	task, err := svc.CreateTask(context.Background(), in, testOwner)
	if err != nil {
		t.Fatalf("CreateTask(%q): %v", in.Title, err)
	}
	return task
}

func floatPtr(v float64) *float64 { return &v }

func TestCreateAssignsDefaultsAndPositions(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	root := mustCreate(t, svc, CreateTaskInput{Title: "Goals"})
	if root.Kind != string(KindContainer) {
		t.Fatalf("root kind=%q, want container", root.Kind)
	}
	if root.Status != string(StatusPending) {
		t.Fatalf("root status=%q, want pending", root.Status)
	}
	if root.Position != 0 {
		t.Fatalf("root position=%d, want 0", root.Position)
	}

	c1 := mustCreate(t, svc, CreateTaskInput{Title: "First", ParentID: &root.ID})
	c2 := mustCreate(t, svc, CreateTaskInput{Title: "Second", ParentID: &root.ID})
	if c1.Kind != string(KindLeaf) {
		t.Fatalf("child kind=%q, want leaf (inferred)", c1.Kind)
	}
	if c1.Position != 0 || c2.Position != 1 {
		t.Fatalf("child positions=%d,%d, want 0,1", c1.Position, c2.Position)
	}

	nested := mustCreate(t, svc, CreateTaskInput{Title: "Nested goal", ParentID: &root.ID, Kind: KindContainer})
	if nested.Kind != string(KindContainer) {
		t.Fatalf("explicit kind=%q, want container", nested.Kind)
	}

	children, err := svc.ChildrenOf(ctx, &root.ID)
	if err != nil {
		t.Fatalf("ChildrenOf: %v", err)
	}
	if len(children) != 3 {
		t.Fatalf("children=%d, want 3", len(children))
	}
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateTask(ctx, CreateTaskInput{Title: "   "}, testOwner); err == nil {
		t.Fatalf("expected error for empty title")
	}

	var vErr ValidationError
	_, err := svc.CreateTask(ctx, CreateTaskInput{Title: "Bad target", TargetValue: floatPtr(0)}, testOwner)
	if !errors.As(err, &vErr) {
		t.Fatalf("non-positive target: got %v, want ValidationError", err)
	}

	ghost := "no-such-task"
	if _, err := svc.CreateTask(ctx, CreateTaskInput{Title: "Orphan", ParentID: &ghost}, testOwner); !errors.Is(err, ErrNotFound) {
		t.Fatalf("orphan parent: got %v, want ErrNotFound", err)
	}
}

func TestUpdatePartialFields(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	task := mustCreate(t, svc, CreateTaskInput{
		Title:       "Read a book",
		Description: strPtr("any book"),
		Kind:        KindLeaf,
		TargetValue: floatPtr(100),
	})

	updated, err := svc.UpdateTask(ctx, task.ID, UpdateTaskInput{
		Title:       Set("Read two books"),
		Description: Clear[string](),
		Status:      Set(StatusInProgress),
	})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if updated.Title != "Read two books" {
		t.Fatalf("title=%q", updated.Title)
	}
	if updated.Description != nil {
		t.Fatalf("description not cleared: %v", *updated.Description)
	}
	if updated.Status != string(StatusInProgress) {
		t.Fatalf("status=%q, want in_progress", updated.Status)
	}
	if updated.TargetValue == nil || *updated.TargetValue != 100 {
		t.Fatalf("target changed unexpectedly: %v", updated.TargetValue)
	}

	if _, err := svc.UpdateTask(ctx, "missing", UpdateTaskInput{Title: Set("x")}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown id: got %v, want ErrNotFound", err)
	}

	if _, err := svc.UpdateTask(ctx, task.ID, UpdateTaskInput{Status: Set(Status("bogus"))}); err == nil {
		t.Fatalf("expected error for invalid status")
	}
}

func TestCascadeDeleteRemovesSubtreeAndEntries(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	root := mustCreate(t, svc, CreateTaskInput{Title: "Root", Kind: KindContainer})
	mid := mustCreate(t, svc, CreateTaskInput{Title: "Mid", ParentID: &root.ID, Kind: KindContainer})
	leaf1 := mustCreate(t, svc, CreateTaskInput{Title: "Leaf 1", ParentID: &mid.ID, TargetValue: floatPtr(10)})
	leaf2 := mustCreate(t, svc, CreateTaskInput{Title: "Leaf 2", ParentID: &mid.ID, TargetValue: floatPtr(10)})
	outside := mustCreate(t, svc, CreateTaskInput{Title: "Outside", TargetValue: floatPtr(5), Kind: KindLeaf})

	for _, id := range []string{leaf1.ID, leaf2.ID, outside.ID} {
		if _, err := svc.AddProgress(ctx, id, AddProgressInput{Value: 3}); err != nil {
			t.Fatalf("AddProgress: %v", err)
		}
	}

	ok, err := svc.DeleteTask(ctx, root.ID)
	if err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if !ok {
		t.Fatalf("DeleteTask returned false")
	}

	tasks, err := svc.Store().ListTasks(ctx)
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != outside.ID {
		t.Fatalf("surviving tasks=%d, want only the outside task", len(tasks))
	}
	entries, err := svc.Store().ListEntries(ctx)
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(entries) != 1 || entries[0].TaskID != outside.ID {
		t.Fatalf("surviving entries=%d, want only the outside entry", len(entries))
	}

	ok, err = svc.DeleteTask(ctx, root.ID)
	if err != nil {
		t.Fatalf("second DeleteTask: %v", err)
	}
	if ok {
		t.Fatalf("second delete of same id returned true")
	}
}

func TestReorderToFrontShiftsSiblings(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	parent := mustCreate(t, svc, CreateTaskInput{Title: "Parent", Kind: KindContainer})
	a := mustCreate(t, svc, CreateTaskInput{Title: "A", ParentID: &parent.ID})
	b := mustCreate(t, svc, CreateTaskInput{Title: "B", ParentID: &parent.ID})
	x := mustCreate(t, svc, CreateTaskInput{Title: "X", ParentID: &parent.ID})

	ok, err := svc.ReorderTask(ctx, x.ID, ReorderTaskInput{NewPosition: 0})
	if err != nil {
		t.Fatalf("ReorderTask: %v", err)
	}
	if !ok {
		t.Fatalf("ReorderTask returned false")
	}

	children, err := svc.ChildrenOf(ctx, &parent.ID)
	if err != nil {
		t.Fatalf("ChildrenOf: %v", err)
	}
	gotOrder := []string{children[0].ID, children[1].ID, children[2].ID}
	wantOrder := []string{x.ID, a.ID, b.ID}
	for i := range wantOrder {
		if gotOrder[i] != wantOrder[i] {
			t.Fatalf("order[%d]=%s, want %s", i, gotOrder[i], wantOrder[i])
		}
	}
	if children[0].Position != 0 || children[1].Position != 1 || children[2].Position != 2 {
		t.Fatalf("positions=%d,%d,%d, want 0,1,2", children[0].Position, children[1].Position, children[2].Position)
	}
}

func TestReorderSecondSiblingToFront(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	parent := mustCreate(t, svc, CreateTaskInput{Title: "Parent", Kind: KindContainer})
	first := mustCreate(t, svc, CreateTaskInput{Title: "First", ParentID: &parent.ID})
	second := mustCreate(t, svc, CreateTaskInput{Title: "Second", ParentID: &parent.ID})

	ok, err := svc.ReorderTask(ctx, second.ID, ReorderTaskInput{NewPosition: 0})
	if err != nil || !ok {
		t.Fatalf("ReorderTask: ok=%v err=%v", ok, err)
	}

	children, err := svc.ChildrenOf(ctx, &parent.ID)
	if err != nil {
		t.Fatalf("ChildrenOf: %v", err)
	}
	if children[0].ID != second.ID || children[1].ID != first.ID {
		t.Fatalf("order=[%s %s], want [second first]", children[0].Title, children[1].Title)
	}
}

func TestReorderAcrossParents(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	p1 := mustCreate(t, svc, CreateTaskInput{Title: "P1", Kind: KindContainer})
	p2 := mustCreate(t, svc, CreateTaskInput{Title: "P2", Kind: KindContainer})
	moved := mustCreate(t, svc, CreateTaskInput{Title: "Moved", ParentID: &p1.ID})
	stay := mustCreate(t, svc, CreateTaskInput{Title: "Stay", ParentID: &p2.ID})

	ok, err := svc.ReorderTask(ctx, moved.ID, ReorderTaskInput{NewPosition: 0, NewParentID: Set(p2.ID)})
	if err != nil || !ok {
		t.Fatalf("ReorderTask: ok=%v err=%v", ok, err)
	}

	c1, _ := svc.ChildrenOf(ctx, &p1.ID)
	if len(c1) != 0 {
		t.Fatalf("old parent still has %d children", len(c1))
	}
	c2, _ := svc.ChildrenOf(ctx, &p2.ID)
	if len(c2) != 2 || c2[0].ID != moved.ID || c2[1].ID != stay.ID {
		t.Fatalf("new parent children wrong: %+v", c2)
	}

	// Clear moves to root level.
	ok, err = svc.ReorderTask(ctx, moved.ID, ReorderTaskInput{NewPosition: 5, NewParentID: Clear[string]()})
	if err != nil || !ok {
		t.Fatalf("ReorderTask to root: ok=%v err=%v", ok, err)
	}
	got, err := svc.GetTask(ctx, moved.ID)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if got.ParentID != nil {
		t.Fatalf("parent not cleared")
	}
	if got.Position != 5 {
		t.Fatalf("position=%d, want the literal 5 (not clamped)", got.Position)
	}

	ok, err = svc.ReorderTask(ctx, "missing", ReorderTaskInput{NewPosition: 0})
	if err != nil {
		t.Fatalf("reorder unknown: %v", err)
	}
	if ok {
		t.Fatalf("reorder of unknown id returned true")
	}
}

func TestReorderRejectsCycles(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a := mustCreate(t, svc, CreateTaskInput{Title: "A", Kind: KindContainer})
	b := mustCreate(t, svc, CreateTaskInput{Title: "B", ParentID: &a.ID, Kind: KindContainer})
	c := mustCreate(t, svc, CreateTaskInput{Title: "C", ParentID: &b.ID})

	for name, parent := range map[string]string{
		"itself":     a.ID,
		"child":      b.ID,
		"grandchild": c.ID,
	} {
		ok, err := svc.ReorderTask(ctx, a.ID, ReorderTaskInput{NewPosition: 0, NewParentID: Set(parent)})
		if err != nil {
			t.Fatalf("reorder under %s: %v", name, err)
		}
		if ok {
			t.Fatalf("reorder under %s returned true", name)
		}
	}

	// The tree is untouched and still fully traversable.
	got, err := svc.GetTask(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if got.ParentID != nil {
		t.Fatalf("root gained a parent: %v", *got.ParentID)
	}
	view, err := svc.GetTaskView(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetTaskView: %v", err)
	}
	if len(view.Children) != 1 || view.Children[0].ID != b.ID {
		t.Fatalf("subtree changed: %+v", view.Children)
	}

	ok, err := svc.DeleteTask(ctx, a.ID)
	if err != nil || !ok {
		t.Fatalf("DeleteTask after rejected moves: ok=%v err=%v", ok, err)
	}
}

func TestProgressLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	container := mustCreate(t, svc, CreateTaskInput{Title: "Goal", Kind: KindContainer})
	leaf := mustCreate(t, svc, CreateTaskInput{Title: "Work", ParentID: &container.ID, TargetValue: floatPtr(100)})

	if _, err := svc.AddProgress(ctx, container.ID, AddProgressInput{Value: 10}); !errors.Is(err, ErrContainerProgress) {
		t.Fatalf("container progress: got %v, want ErrContainerProgress", err)
	}
	entries, _ := svc.Store().ListEntries(ctx)
	if len(entries) != 0 {
		t.Fatalf("rejected add mutated the entry collection")
	}

	if _, err := svc.AddProgress(ctx, "missing", AddProgressInput{Value: 10}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown task: got %v, want ErrNotFound", err)
	}
	if _, err := svc.AddProgress(ctx, leaf.ID, AddProgressInput{Value: -5}); err == nil {
		t.Fatalf("expected error for negative value")
	}

	past := time.Now().Add(-48 * time.Hour)
	late, err := svc.AddProgress(ctx, leaf.ID, AddProgressInput{Value: 30})
	if err != nil {
		t.Fatalf("AddProgress: %v", err)
	}
	early, err := svc.AddProgress(ctx, leaf.ID, AddProgressInput{Value: 20, RecordedAt: &past})
	if err != nil {
		t.Fatalf("AddProgress backdated: %v", err)
	}

	list, err := svc.ListProgress(ctx, leaf.ID)
	if err != nil {
		t.Fatalf("ListProgress: %v", err)
	}
	if len(list) != 2 || list[0].ID != early.ID || list[1].ID != late.ID {
		t.Fatalf("entries not ordered by recorded time")
	}

	ok, err := svc.DeleteProgress(ctx, late.ID)
	if err != nil || !ok {
		t.Fatalf("DeleteProgress: ok=%v err=%v", ok, err)
	}
	ok, err = svc.DeleteProgress(ctx, late.ID)
	if err != nil {
		t.Fatalf("DeleteProgress again: %v", err)
	}
	if ok {
		t.Fatalf("deleting same entry twice returned true")
	}
}

func TestSeedProducesWorkingTree(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.Seed(ctx, testOwner); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	roots, err := svc.RootsOf(ctx, testOwner)
	if err != nil {
		t.Fatalf("RootsOf: %v", err)
	}
	if len(roots) != 3 {
		t.Fatalf("roots=%d, want 3", len(roots))
	}

	stats, err := svc.Stats(ctx, testOwner)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalTasks != 12 {
		t.Fatalf("total tasks=%d, want 12", stats.TotalTasks)
	}
	if stats.Containers != 2 || stats.Leaves != 10 {
		t.Fatalf("containers=%d leaves=%d, want 2/10", stats.Containers, stats.Leaves)
	}
	if stats.ProgressEntries != 7 {
		t.Fatalf("entries=%d, want 7", stats.ProgressEntries)
	}
	if stats.OverallProgress <= 0 || stats.OverallProgress >= 100 {
		t.Fatalf("overall progress=%f, want something in (0,100)", stats.OverallProgress)
	}
}
