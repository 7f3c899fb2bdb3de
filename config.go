package gesture

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/BurntSushi/toml"
)

// Config tunes recognizer timing and distance thresholds.
type Config struct {
	// LongPressDuration is how long a press must be held before release
	// counts as a long press.
	LongPressDuration time.Duration
	// DoubleTapWindow is how long a double-tap window stays open.
	DoubleTapWindow time.Duration
	// DoubleTapRangeX and DoubleTapRangeY bound the per-axis distance between
	// the two taps of a double tap (inclusive).
	DoubleTapRangeX float64
	DoubleTapRangeY float64

	// LongPressClearStale cancels a still-pending long-press timer when a new
	// press arrives. Off by default: the stale timer keeps running and resets
	// the press state when it fires.
	LongPressClearStale bool
	// DoubleTapOpenOnFirstTap makes a tap with no open window start one.
	// Off by default: only a tap that misses an already open window opens a
	// new one, so an isolated first tap leaves no trace.
	DoubleTapOpenOnFirstTap bool

	// Debug enables debug logging and tree checks on the scene.
	Debug bool
}

// DefaultConfig returns the stock 500ms / 100px configuration.
func DefaultConfig() Config {
	return Config{
		LongPressDuration: DefaultLongPressDuration,
		DoubleTapWindow:   DefaultDoubleTapWindow,
		DoubleTapRangeX:   DefaultDoubleTapRange,
		DoubleTapRangeY:   DefaultDoubleTapRange,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.LongPressDuration <= 0:
		return errors.New("config: long press duration must be positive")
	case c.DoubleTapWindow <= 0:
		return errors.New("config: double tap window must be positive")
	case c.DoubleTapRangeX < 0 || c.DoubleTapRangeY < 0:
		return errors.New("config: double tap range must not be negative")
	}
	return nil
}

// fileConfig is the on-disk TOML layout. Durations are whole milliseconds.
type fileConfig struct {
	LongPressMS             int64   `toml:"long_press_ms"`
	DoubleTapWindowMS       int64   `toml:"double_tap_window_ms"`
	DoubleTapRangeX         float64 `toml:"double_tap_range_x"`
	DoubleTapRangeY         float64 `toml:"double_tap_range_y"`
	LongPressClearStale     bool    `toml:"long_press_clear_stale"`
	DoubleTapOpenOnFirstTap bool    `toml:"double_tap_open_on_first_tap"`
	Debug                   bool    `toml:"debug"`
}

func toFileConfig(c Config) fileConfig {
	return fileConfig{
		LongPressMS:             c.LongPressDuration.Milliseconds(),
		DoubleTapWindowMS:       c.DoubleTapWindow.Milliseconds(),
		DoubleTapRangeX:         c.DoubleTapRangeX,
		DoubleTapRangeY:         c.DoubleTapRangeY,
		LongPressClearStale:     c.LongPressClearStale,
		DoubleTapOpenOnFirstTap: c.DoubleTapOpenOnFirstTap,
		Debug:                   c.Debug,
	}
}

func (f fileConfig) config() Config {
	return Config{
		LongPressDuration:       time.Duration(f.LongPressMS) * time.Millisecond,
		DoubleTapWindow:         time.Duration(f.DoubleTapWindowMS) * time.Millisecond,
		DoubleTapRangeX:         f.DoubleTapRangeX,
		DoubleTapRangeY:         f.DoubleTapRangeY,
		LongPressClearStale:     f.LongPressClearStale,
		DoubleTapOpenOnFirstTap: f.DoubleTapOpenOnFirstTap,
		Debug:                   f.Debug,
	}
}

// LoadConfig reads a TOML config file. Keys missing from the file keep
// their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	fc := toFileConfig(DefaultConfig())
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	cfg := fc.config()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes TOML config data. Missing keys keep their defaults.
func ParseConfig(data string) (Config, error) {
	fc := toFileConfig(DefaultConfig())
	if _, err := toml.Decode(data, &fc); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg := fc.config()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// WriteConfig encodes cfg as TOML.
func WriteConfig(w io.Writer, cfg Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(toFileConfig(cfg)); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
