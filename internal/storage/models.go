package storage

import "time"

// Task is a node in the goal tree. A container derives its completion from
// its children; a leaf derives it from progress entries (numeric target) or
// from its own status (no target).
type Task struct {
	ID          string
	OwnerID     string
	ParentID    *string // nil marks a root
	Title       string
	Description *string
	Status      string
	Kind        string
	Unit        *string
	TargetValue *float64 // nil means binary pass/fail for leaves
	Position    int
	Deadline    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProgressEntry records a quantity of work done against a leaf task at a
// point in time. Entries are immutable; they are only ever created and
// deleted.
type ProgressEntry struct {
	ID         string
	TaskID     string
	Value      float64
	Note       *string
	RecordedAt time.Time // when the work happened, not when it was logged
	CreatedAt  time.Time
}
