package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/brainplay/internal/dependencies/clock"
	"github.com/mcoot/brainplay/internal/dependencies/random"
	"github.com/mcoot/brainplay/internal/services/achievement"
	"github.com/mcoot/brainplay/internal/services/journal"
	"github.com/mcoot/brainplay/internal/services/profile"
	"github.com/mcoot/brainplay/internal/services/question"
	"github.com/mcoot/brainplay/internal/services/session"
	"github.com/mcoot/brainplay/internal/services/stats"
	"github.com/mcoot/brainplay/internal/storage"
	"github.com/mcoot/brainplay/internal/storage/file"
	"github.com/mcoot/brainplay/internal/storage/memory"
	redisstorage "github.com/mcoot/brainplay/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeFile   = "file"
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// DefaultDataDir is where the file backend keeps its collections
const DefaultDataDir = "data"

// App contains all wired application components
type App struct {
	// Storage
	Store *storage.Store

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Profiles          *profile.Registry
	Questions         *question.Provider
	Achievements      *achievement.Engine
	Journal           *journal.Journal
	SessionController *session.Controller
	Stats             *stats.Service
}

// Config holds configuration for the application factory
type Config struct {
	// StorageType selects the storage backend ("file", "memory" or "redis")
	// If empty, defaults to "file"
	StorageType string
	// DataDir is the directory used by the file backend
	// If empty, defaults to DefaultDataDir
	DataDir string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// Retention caps the session and round-history collections
	// If nil, defaults to storage.DefaultOptions()
	Retention *storage.Options
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// JournalLogger receives session lifecycle events (optional)
	// If nil, Logger is used
	JournalLogger *slog.Logger
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	journalLogger := cfg.JournalLogger
	if journalLogger == nil {
		journalLogger = logger
	}

	// Create storage based on type
	var backend storage.Backend
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeFile
	}

	switch storageType {
	case StorageTypeFile:
		dir := cfg.DataDir
		if dir == "" {
			dir = DefaultDataDir
		}
		backend = file.New(dir)
	case StorageTypeMemory:
		backend = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		backend = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'file', 'memory' or 'redis'")
	}

	retention := storage.DefaultOptions()
	if cfg.Retention != nil {
		retention = *cfg.Retention
	}

	store := storage.New(backend, retention)

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, logger, journalLogger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store *storage.Store, clk clock.Clock, rnd random.Random, logger, journalLogger *slog.Logger) *App {
	// Create services
	profiles := profile.New(store, clk, logger)
	questions := question.New(rnd, logger)
	achievements := achievement.New()
	events := journal.New(journalLogger)
	controller := session.NewController(store, profiles, questions, achievements, events, clk, rnd, logger)
	statsService := stats.New(store, logger)

	return &App{
		Store:             store,
		Clock:             clk,
		Random:            rnd,
		Profiles:          profiles,
		Questions:         questions,
		Achievements:      achievements,
		Journal:           events,
		SessionController: controller,
		Stats:             statsService,
	}
}

// Close releases the storage backend
func (a *App) Close() error {
	return a.Store.Close()
}
