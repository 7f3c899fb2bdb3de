package gesture

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 500*time.Millisecond, cfg.LongPressDuration)
	assert.Equal(t, 500*time.Millisecond, cfg.DoubleTapWindow)
	assert.Equal(t, 100.0, cfg.DoubleTapRangeX)
	assert.Equal(t, 100.0, cfg.DoubleTapRangeY)
	assert.False(t, cfg.LongPressClearStale)
	assert.False(t, cfg.DoubleTapOpenOnFirstTap)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"zero long press":  func(c *Config) { c.LongPressDuration = 0 },
		"negative window":  func(c *Config) { c.DoubleTapWindow = -time.Millisecond },
		"negative range x": func(c *Config) { c.DoubleTapRangeX = -1 },
		"negative range y": func(c *Config) { c.DoubleTapRangeY = -0.5 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig(`
long_press_ms = 750
double_tap_range_x = 40.5
double_tap_open_on_first_tap = true
`)
	require.NoError(t, err)
	assert.Equal(t, 750*time.Millisecond, cfg.LongPressDuration)
	assert.Equal(t, 500*time.Millisecond, cfg.DoubleTapWindow, "missing keys keep defaults")
	assert.Equal(t, 40.5, cfg.DoubleTapRangeX)
	assert.Equal(t, 100.0, cfg.DoubleTapRangeY)
	assert.True(t, cfg.DoubleTapOpenOnFirstTap)

	_, err = ParseConfig(`long_press_ms = "soon"`)
	assert.Error(t, err)
	_, err = ParseConfig(`double_tap_window_ms = 0`)
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gestures.toml")
	require.NoError(t, os.WriteFile(path, []byte("long_press_clear_stale = true\ndebug = true\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.LongPressClearStale)
	assert.True(t, cfg.Debug)
	assert.Equal(t, DefaultLongPressDuration, cfg.LongPressDuration)

	_, err = LoadConfig(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestWriteConfig_RoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LongPressDuration = 650 * time.Millisecond
	cfg.DoubleTapRangeY = 25
	cfg.LongPressClearStale = true

	var buf bytes.Buffer
	require.NoError(t, WriteConfig(&buf, cfg))
	assert.Contains(t, buf.String(), "long_press_ms = 650")

	got, err := ParseConfig(buf.String())
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
