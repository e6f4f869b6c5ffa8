package memory

import (
	"context"
	"sync"

	"github.com/mcoot/brainplay/internal/model"
	"github.com/mcoot/brainplay/internal/storage"
)

// Storage is an in-memory backend. Contents are lost when the process exits.
type Storage struct {
	mu          sync.RWMutex
	collections map[model.Collection][]byte
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		collections: make(map[model.Collection][]byte),
	}
}

// Ensure Storage implements the interface
var _ storage.Backend = (*Storage)(nil)

func (s *Storage) Read(ctx context.Context, c model.Collection) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.collections[c]
	if !ok {
		return nil, storage.ErrNotExist
	}
	result := make([]byte, len(data))
	copy(result, data)
	return result, nil
}

func (s *Storage) Write(ctx context.Context, c model.Collection, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	s.collections[c] = stored
	return nil
}

func (s *Storage) Close() error {
	return nil
}
