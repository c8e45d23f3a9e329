package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestDefaultConfig_IsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `{"rows": 12, "cols": 40, "seed": 7, "workers": 2, "frame_rate": 50000000}`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 12, config.Rows)
	assert.Equal(t, 40, config.Cols)
	assert.Equal(t, int64(7), config.Seed)
	assert.Equal(t, 2, config.Workers)
	assert.Equal(t, 50*time.Millisecond, config.FrameRate)

	// untouched fields keep their defaults
	defaults := DefaultConfig()
	assert.Equal(t, defaults.StagnationThreshold, config.StagnationThreshold)
	assert.Equal(t, defaults.AutoRestart, config.AutoRestart)
}

func TestLoadConfig_SmallestHistory(t *testing.T) {
	config, err := LoadConfig(writeConfig(t, `{"history_size": 3}`))
	require.NoError(t, err)
	assert.Equal(t, MinHistorySize, config.HistorySize)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadConfig_BadJSON(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `{"rows": `))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[LoadConfig] failed to unmarshal")
}

func TestLoadConfig_Invalid(t *testing.T) {
	for _, contents := range []string{
		`{"rows": 0}`,
		`{"cols": -3}`,
		`{"workers": 0}`,
		`{"frame_rate": 0}`,
		`{"stagnation_threshold": -1}`,
		`{"max_generations": -5}`,
		`{"history_size": 0}`,
		`{"history_size": 2}`,
	} {
		_, err := LoadConfig(writeConfig(t, contents))
		assert.ErrorIs(t, err, ErrInvalidConfig, contents)
	}
}
