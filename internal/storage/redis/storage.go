package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/brainplay/internal/model"
	"github.com/mcoot/brainplay/internal/storage"
)

// Storage keeps each collection as one JSON string value. A SET replaces the
// value in a single command, which gives the whole-collection atomic save.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Ensure Storage implements the interface
var _ storage.Backend = (*Storage)(nil)

func (s *Storage) Read(ctx context.Context, c model.Collection) ([]byte, error) {
	data, err := s.client.Get(ctx, collectionKey(s.cfg.KeyPrefix, c)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, storage.ErrNotExist
		}
		return nil, err
	}
	return data, nil
}

func (s *Storage) Write(ctx context.Context, c model.Collection, data []byte) error {
	return s.client.Set(ctx, collectionKey(s.cfg.KeyPrefix, c), data, 0).Err()
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}
