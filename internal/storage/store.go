package storage

import (
	"github.com/mcoot/brainplay/internal/model"
)

// Retention defaults, matching the history kept by earlier releases
const (
	DefaultMaxSessions  = 1000
	DefaultMaxHistories = 100
)

// Options controls collection retention. Zero disables a cap.
type Options struct {
	MaxSessions  int
	MaxHistories int
}

// DefaultOptions returns the default retention
func DefaultOptions() Options {
	return Options{
		MaxSessions:  DefaultMaxSessions,
		MaxHistories: DefaultMaxHistories,
	}
}

// Store exposes the three durable collections over a single backend
type Store struct {
	Profiles  *Collection[model.PlayerProfile]
	Sessions  *Collection[model.SessionRecord]
	Histories *Collection[model.RoundHistory]

	backend Backend
}

// New creates a Store on the given backend
func New(backend Backend, opts Options) *Store {
	return &Store{
		Profiles: NewCollection(backend, model.CollectionProfiles, 0, func(p model.PlayerProfile) string {
			return string(p.ID)
		}),
		Sessions: NewCollection(backend, model.CollectionSessions, opts.MaxSessions, func(r model.SessionRecord) string {
			return string(r.SessionID)
		}),
		Histories: NewCollection(backend, model.CollectionRoundHistories, opts.MaxHistories, func(h model.RoundHistory) string {
			return string(h.SessionID)
		}),
		backend: backend,
	}
}

// Backend returns the underlying backend
func (s *Store) Backend() Backend {
	return s.backend
}

// Close releases the backend
func (s *Store) Close() error {
	return s.backend.Close()
}
