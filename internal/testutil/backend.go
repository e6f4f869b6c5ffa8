package testutil

import (
	"context"
	"sync"

	"github.com/mcoot/brainplay/internal/model"
	"github.com/mcoot/brainplay/internal/storage"
)

// FlakyBackend wraps a backend and fails reads or writes of chosen collections
type FlakyBackend struct {
	storage.Backend

	mu         sync.Mutex
	readFails  map[model.Collection]error
	writeFails map[model.Collection]error
}

var _ storage.Backend = (*FlakyBackend)(nil)

// NewFlakyBackend wraps inner; it behaves like inner until a failure is armed
func NewFlakyBackend(inner storage.Backend) *FlakyBackend {
	return &FlakyBackend{
		Backend:    inner,
		readFails:  make(map[model.Collection]error),
		writeFails: make(map[model.Collection]error),
	}
}

// FailReads makes every read of c return err
func (b *FlakyBackend) FailReads(c model.Collection, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.readFails[c] = err
}

// FailWrites makes every write of c return err
func (b *FlakyBackend) FailWrites(c model.Collection, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.writeFails[c] = err
}

// Heal clears all armed failures
func (b *FlakyBackend) Heal() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.readFails = make(map[model.Collection]error)
	b.writeFails = make(map[model.Collection]error)
}

func (b *FlakyBackend) Read(ctx context.Context, c model.Collection) ([]byte, error) {
	b.mu.Lock()
	err := b.readFails[c]
	b.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return b.Backend.Read(ctx, c)
}

func (b *FlakyBackend) Write(ctx context.Context, c model.Collection, data []byte) error {
	b.mu.Lock()
	err := b.writeFails[c]
	b.mu.Unlock()
	if err != nil {
		return err
	}
	return b.Backend.Write(ctx, c, data)
}
