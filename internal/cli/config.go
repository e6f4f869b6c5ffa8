package cli

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/caarlos0/env/v11"

	"github.com/mcoot/brainplay/internal/factory"
	"github.com/mcoot/brainplay/internal/model"
	"github.com/mcoot/brainplay/internal/storage"
	redisstorage "github.com/mcoot/brainplay/internal/storage/redis"
)

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config holds CLI configuration. Environment values are defaults that
// command-line flags override.
type Config struct {
	Mode           string `env:"BRAINPLAY_MODE"          envDefault:"normal"`
	Player         string `env:"BRAINPLAY_PLAYER"`
	DataDir        string `env:"BRAINPLAY_DATA_DIR"      envDefault:"data"`
	Storage        string `env:"BRAINPLAY_STORAGE"       envDefault:"file"`
	RedisURL       string `env:"BRAINPLAY_REDIS_URL"     envDefault:"redis://localhost:6379"`
	RedisKeyPrefix string `env:"BRAINPLAY_REDIS_PREFIX"  envDefault:"brainplay"`
	LogFile        string `env:"BRAINPLAY_LOG_FILE"`
	Output         string `env:"BRAINPLAY_OUTPUT"        envDefault:"text"`
	MaxSessions    int    `env:"BRAINPLAY_MAX_SESSIONS"  envDefault:"1000"`
	MaxHistories   int    `env:"BRAINPLAY_MAX_HISTORIES" envDefault:"100"`
	Hints          bool   `env:"BRAINPLAY_HINTS"`
	Verbose        bool   `env:"BRAINPLAY_VERBOSE"`

	// Flag-only switches
	History bool
	Stats   bool
}

// LoadConfig reads the environment into a Config
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks every user-supplied value before the game starts
func (c *Config) Validate() error {
	if _, err := model.ParseMode(c.Mode); err != nil {
		return err
	}
	switch c.Output {
	case OutputText, OutputJSON:
	default:
		return &model.ConfigurationError{Field: "output", Value: c.Output}
	}
	switch c.Storage {
	case factory.StorageTypeFile, factory.StorageTypeMemory, factory.StorageTypeRedis:
	default:
		return &model.ConfigurationError{Field: "storage", Value: c.Storage}
	}
	if c.MaxSessions < 0 {
		return &model.ConfigurationError{Field: "max-sessions", Value: strconv.Itoa(c.MaxSessions)}
	}
	if c.MaxHistories < 0 {
		return &model.ConfigurationError{Field: "max-histories", Value: strconv.Itoa(c.MaxHistories)}
	}
	if c.History && c.Stats {
		return &model.ConfigurationError{Field: "history/stats", Value: "both set"}
	}
	return nil
}

// GameMode returns the validated mode
func (c *Config) GameMode() model.Mode {
	mode, _ := model.ParseMode(c.Mode)
	return mode
}

// LogPath returns the log file, defaulting to game.log in the data directory
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, "game.log")
}

// FactoryConfig translates the CLI configuration for the application factory
func (c *Config) FactoryConfig() factory.Config {
	fc := factory.Config{
		StorageType: c.Storage,
		DataDir:     c.DataDir,
		Retention: &storage.Options{
			MaxSessions:  c.MaxSessions,
			MaxHistories: c.MaxHistories,
		},
	}
	if c.Storage == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = c.RedisURL
		redisCfg.KeyPrefix = c.RedisKeyPrefix
		fc.RedisConfig = &redisCfg
	}
	return fc
}
