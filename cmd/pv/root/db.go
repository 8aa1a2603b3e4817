package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/vova2plova/Progressivity/internal/engine"
	"github.com/vova2plova/Progressivity/internal/storage"
	"github.com/vova2plova/Progressivity/pkg/config"
)

// openService opens the SQLite-backed engine the CLI commands share.
// The CLI always persists; the memory store only makes sense for serve.
func openService(ctx context.Context) (*engine.Service, string, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, "", nil, err
	}

	path := cfg.Store.Path
	if path == "" {
		path, err = storage.ResolveDBPath()
		if err != nil {
			return nil, "", nil, err
		}
	}
	store, err := storage.OpenSQLite(ctx, path)
	if err != nil {
		return nil, "", nil, err
	}
	cleanup := func() {
		_ = store.Close()
	}
	return engine.NewService(store), cfg.OwnerID, cleanup, nil
}

// resolveTaskID accepts a full task id or a unique id prefix.
func resolveTaskID(ctx context.Context, svc *engine.Service, arg string) (string, error) {
	if t, err := svc.Store().GetTask(ctx, arg); err != nil {
		return "", err
	} else if t != nil {
		return t.ID, nil
	}

	all, err := svc.Store().ListTasks(ctx)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, t := range all {
		if strings.HasPrefix(t.ID, arg) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("no task matches %q", arg)
	default:
		return "", fmt.Errorf("%q is ambiguous (%d matches)", arg, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
