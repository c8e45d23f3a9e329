package utils

import (
	"encoding/json"
	"os"
	"runtime"
	"time"

	"github.com/pkg/errors"
)

var ErrInvalidConfig = errors.New("invalid config")

// MinHistorySize is the fewest generations stagnation detection can compare against
const MinHistorySize = 3

// Config holds the configuration for the game
type Config struct {
	Rows                int           `json:"rows"`
	Cols                int           `json:"cols"`
	FrameRate           time.Duration `json:"frame_rate"`
	Workers             int           `json:"workers"`
	Seed                int64         `json:"seed"` // 0 seeds every new game from entropy
	AutoRestart         bool          `json:"auto_restart"`
	StagnationThreshold int           `json:"stagnation_threshold"`
	UseMemoryPool       bool          `json:"use_memory_pool"`
	MaxGenerations      int           `json:"max_generations"`
	HistorySize         int           `json:"history_size"`
	StatsWindow         int           `json:"stats_window"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Rows:                30,
		Cols:                60,
		FrameRate:           150 * time.Millisecond,
		Workers:             runtime.NumCPU(),
		AutoRestart:         true,
		StagnationThreshold: 5,
		UseMemoryPool:       true,
		MaxGenerations:      0,
		HistorySize:         5,
		StatsWindow:         50,
	}
}

// LoadConfig loads configuration from JSON file, filling unset fields with defaults
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	if err = config.Validate(); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] file: %+v", filename)
	}

	return config, nil
}

// Validate rejects configurations the game cannot run with
func (c Config) Validate() error {
	switch {
	case c.Rows <= 0 || c.Cols <= 0:
		return errors.Wrapf(ErrInvalidConfig, "grid must be at least 1x1, got %dx%d", c.Rows, c.Cols)
	case c.FrameRate <= 0:
		return errors.Wrapf(ErrInvalidConfig, "frame_rate must be positive, got %v", c.FrameRate)
	case c.Workers <= 0:
		return errors.Wrapf(ErrInvalidConfig, "workers must be positive, got %d", c.Workers)
	case c.StagnationThreshold < 0:
		return errors.Wrapf(ErrInvalidConfig, "stagnation_threshold must not be negative, got %d", c.StagnationThreshold)
	case c.HistorySize < MinHistorySize:
		return errors.Wrapf(ErrInvalidConfig, "history_size must be at least %d, got %d", MinHistorySize, c.HistorySize)
	case c.MaxGenerations < 0:
		return errors.Wrapf(ErrInvalidConfig, "max_generations must not be negative, got %d", c.MaxGenerations)
	}
	return nil
}
