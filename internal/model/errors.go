package model

import (
	"errors"
	"fmt"
)

// Common errors used across the application
var (
	// Input errors are recovered locally: the answer counts as wrong
	ErrInvalidAnswer = errors.New("answer is not a number")

	// Session errors
	ErrInvalidTransition = errors.New("operation not allowed in current session state")
	ErrSessionComplete   = errors.New("session is already complete")

	// Storage errors
	ErrPersistence       = errors.New("persistence failure")
	ErrCorruptCollection = errors.New("collection is corrupt")
	ErrUnknownCollection = errors.New("unknown collection")

	// Profile errors
	ErrProfile         = errors.New("profile registry failure")
	ErrProfileNotFound = errors.New("profile not found")

	// Configuration errors
	ErrConfiguration = errors.New("invalid configuration")
)

// Collection names one of the durable record sets
type Collection string

const (
	CollectionProfiles       Collection = "profiles"
	CollectionSessions       Collection = "sessions"
	CollectionRoundHistories Collection = "round_histories"
)

// Collections lists every durable collection
var Collections = []Collection{CollectionProfiles, CollectionSessions, CollectionRoundHistories}

// InputError reports a malformed answer
type InputError struct {
	Input string
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid answer %q: %v", e.Input, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

func (e *InputError) Is(target error) bool { return target == ErrInvalidAnswer }

// PersistenceError reports a failed read or write of a durable collection
type PersistenceError struct {
	Collection Collection
	Op         string // "load" or "save"
	RecordID   string // session or profile the write was for, if any
	Err        error
}

func (e *PersistenceError) Error() string {
	if e.RecordID != "" {
		return fmt.Sprintf("%s %s (record %s): %v", e.Op, e.Collection, e.RecordID, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// ProfileError reports an unreadable profile collection or a failed profile update
type ProfileError struct {
	PlayerID PlayerID
	Name     string
	Err      error
}

func (e *ProfileError) Error() string {
	return fmt.Sprintf("profile %s (%s): %v", e.Name, e.PlayerID, e.Err)
}

func (e *ProfileError) Unwrap() error { return e.Err }

func (e *ProfileError) Is(target error) bool { return target == ErrProfile }

// ConfigurationError reports invalid command-line or environment input
type ConfigurationError struct {
	Field string
	Value string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }
