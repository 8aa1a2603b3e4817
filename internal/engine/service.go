package engine

import (
	"strings"

	"github.com/vova2plova/Progressivity/internal/storage"
)

// Service is the task/goal engine. It owns no state of its own; every
// operation reads and writes through the injected store. Operations are
// synchronous and run to completion; callers wanting concurrent access
// must add their own synchronization boundary around the store.
type Service struct {
	store storage.Store
}

func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

func (s *Service) Store() storage.Store { return s.store }

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", ValidationError{Field: "title", Reason: "must not be empty"}
	}
	return t, nil
}