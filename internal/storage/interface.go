package storage

import (
	"context"
	"errors"

	"github.com/mcoot/brainplay/internal/model"
)

// ErrNotExist is returned by a Backend for a collection that was never written
var ErrNotExist = errors.New("collection does not exist")

// Backend persists encoded collections. Write must replace the whole
// collection atomically: a reader sees either the old or the new bytes.
type Backend interface {
	Read(ctx context.Context, c model.Collection) ([]byte, error)
	Write(ctx context.Context, c model.Collection, data []byte) error
	Close() error
}
