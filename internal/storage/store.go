package storage

import "context"

// Store holds the two record collections. It knows nothing about tree
// structure or progress math; all domain rules live in the engine.
//
// Get methods return (nil, nil) for unknown ids. List methods return every
// record in insertion order, which the engine relies on as the stable
// tie-break when sorting siblings and entries.
type Store interface {
	GetTask(ctx context.Context, id string) (*Task, error)
	PutTask(ctx context.Context, t *Task) error
	DeleteTask(ctx context.Context, id string) (bool, error)
	ListTasks(ctx context.Context) ([]Task, error)

	GetEntry(ctx context.Context, id string) (*ProgressEntry, error)
	PutEntry(ctx context.Context, e *ProgressEntry) error
	DeleteEntry(ctx context.Context, id string) (bool, error)
	ListEntries(ctx context.Context) ([]ProgressEntry, error)

	// DeleteBatch removes the given tasks and entries as one unit. The
	// cascade delete computes its full id sets up front and hands them
	// here, so no intermediate state is observable.
	DeleteBatch(ctx context.Context, taskIDs, entryIDs []string) error

	Close() error
}
