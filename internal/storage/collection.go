package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mcoot/brainplay/internal/model"
)

// Collection is a typed view over one named collection of a Backend.
// Records are kept as a JSON array in insertion order.
type Collection[T any] struct {
	backend Backend
	name    model.Collection
	limit   int            // 0 keeps everything
	idOf    func(T) string // used to label append failures
}

// NewCollection creates a typed collection. A positive limit keeps only the
// most recent records on Append.
func NewCollection[T any](backend Backend, name model.Collection, limit int, idOf func(T) string) *Collection[T] {
	return &Collection[T]{
		backend: backend,
		name:    name,
		limit:   limit,
		idOf:    idOf,
	}
}

// Name returns the collection name
func (c *Collection[T]) Name() model.Collection {
	return c.name
}

// Load returns every record in order. A collection that does not exist yet is empty.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	data, err := c.backend.Read(ctx, c.name)
	if err != nil {
		if errors.Is(err, ErrNotExist) {
			return []T{}, nil
		}
		return nil, c.fail("load", "", err)
	}
	if len(data) == 0 {
		return []T{}, nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, c.fail("load", "", fmt.Errorf("%w: %v", model.ErrCorruptCollection, err))
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// Save replaces the whole collection
func (c *Collection[T]) Save(ctx context.Context, records []T) error {
	return c.save(ctx, records, "")
}

// Append adds one record to the end of the collection
func (c *Collection[T]) Append(ctx context.Context, record T) error {
	id := ""
	if c.idOf != nil {
		id = c.idOf(record)
	}

	records, err := c.Load(ctx)
	if err != nil {
		var perr *model.PersistenceError
		if errors.As(err, &perr) {
			perr.RecordID = id
		}
		return err
	}

	records = append(records, record)
	if c.limit > 0 && len(records) > c.limit {
		records = records[len(records)-c.limit:]
	}
	return c.save(ctx, records, id)
}

func (c *Collection[T]) save(ctx context.Context, records []T, id string) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return c.fail("save", id, err)
	}
	if err := c.backend.Write(ctx, c.name, data); err != nil {
		return c.fail("save", id, err)
	}
	return nil
}

func (c *Collection[T]) fail(op, id string, err error) error {
	return &model.PersistenceError{
		Collection: c.name,
		Op:         op,
		RecordID:   id,
		Err:        err,
	}
}
