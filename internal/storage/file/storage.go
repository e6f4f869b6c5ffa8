package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/mcoot/brainplay/internal/model"
	"github.com/mcoot/brainplay/internal/storage"
)

// Storage keeps each collection as a JSON document in a data directory.
// Writes go to a temporary file in the same directory which is then renamed
// over the target, so a crash never leaves a truncated collection.
//
// There is no locking: two processes saving at once is last-writer-wins.
type Storage struct {
	dir string
}

// New creates a file storage rooted at dir. The directory is created on first write.
func New(dir string) *Storage {
	return &Storage{dir: dir}
}

// Ensure Storage implements the interface
var _ storage.Backend = (*Storage)(nil)

// Dir returns the data directory
func (s *Storage) Dir() string {
	return s.dir
}

// Path returns the file backing a collection
func (s *Storage) Path(c model.Collection) string {
	return filepath.Join(s.dir, string(c)+".json")
}

func (s *Storage) Read(ctx context.Context, c model.Collection) ([]byte, error) {
	if err := checkCollection(c); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path(c))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, storage.ErrNotExist
		}
		return nil, err
	}
	return data, nil
}

func (s *Storage) Write(ctx context.Context, c model.Collection, data []byte) error {
	if err := checkCollection(c); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	return atomic.WriteFile(s.Path(c), bytes.NewReader(data))
}

func (s *Storage) Close() error {
	return nil
}

// checkCollection keeps arbitrary names from turning into paths
func checkCollection(c model.Collection) error {
	for _, known := range model.Collections {
		if c == known {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", model.ErrUnknownCollection, c)
}
