package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/phanxgames/gesture"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listReplay = `{
	"nodes": [
		{"name": "list", "tag": "ul", "x": 0, "y": 0, "width": 300, "height": 300},
		{"name": "item1", "tag": "li", "parent": "list", "classes": ["item"], "x": 0, "y": 0, "width": 300, "height": 100},
		{"name": "label1", "tag": "span", "parent": "item1", "x": 10, "y": 10, "width": 50, "height": 20},
		{"name": "header", "tag": "li", "parent": "list", "x": 0, "y": 200, "width": 300, "height": 100}
	],
	"bindings": [
		{"gesture": "longtap", "node": "list", "delegate": "li.item"},
		{"gesture": "dbtap", "node": "list"}
	],
	"steps": [
		{"action": "hold", "x": 20, "y": 15, "ms": 600},
		{"action": "wait", "ms": 1000},
		{"action": "tap", "x": 20, "y": 15},
		{"action": "wait", "ms": 1000},
		{"action": "hold", "x": 20, "y": 250, "ms": 600}
	]
}`

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(&bytes.Buffer{})
	return l
}

func TestRunReplay_LongPressAndShortTap(t *testing.T) {
	records, err := runReplay([]byte(listReplay), gesture.DefaultConfig(), quietLogger(), replayOptions{
		frame:  16 * time.Millisecond,
		settle: time.Second,
	})
	require.NoError(t, err)

	// The hold on the header is outside the delegate and yields nothing.
	require.Len(t, records, 2)
	assert.Equal(t, "longpress", records[0].Gesture)
	assert.Equal(t, 0, records[0].Binding)
	assert.Equal(t, "list", records[0].Node)
	assert.Equal(t, "label1", records[0].Target)
	assert.Equal(t, "shorttap", records[1].Gesture)
	assert.Greater(t, records[1].TimeMS, records[0].TimeMS)
}

func TestRunReplay_DoubleTapNeedsMissFirst(t *testing.T) {
	data := `{
		"nodes": [{"name": "pad", "x": 0, "y": 0, "width": 500, "height": 500}],
		"bindings": [{"gesture": "dbtap", "node": "pad"}],
		"steps": [
			{"action": "tap", "x": 10, "y": 10},
			{"action": "tap", "x": 20, "y": 20}
		]
	}`
	opts := replayOptions{frame: 16 * time.Millisecond, settle: time.Second}

	records, err := runReplay([]byte(data), gesture.DefaultConfig(), quietLogger(), opts)
	require.NoError(t, err)
	assert.Empty(t, records, "no window is open for the first pair")

	cfg := gesture.DefaultConfig()
	cfg.DoubleTapOpenOnFirstTap = true
	records, err = runReplay([]byte(data), cfg, quietLogger(), opts)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "doubletap", records[0].Gesture)
	assert.Equal(t, 20.0, records[0].X)
}

func TestRunReplay_Errors(t *testing.T) {
	opts := replayOptions{frame: 16 * time.Millisecond}
	cases := map[string]string{
		"bad json":       `{`,
		"no steps":       `{"nodes": [], "steps": []}`,
		"unknown parent": `{"nodes": [{"name": "a", "parent": "zz"}], "steps": [{"action": "tap"}]}`,
		"duplicate":      `{"nodes": [{"name": "a"}, {"name": "a"}], "steps": [{"action": "tap"}]}`,
		"unknown node":   `{"bindings": [{"gesture": "dbtap", "node": "nope"}], "steps": [{"action": "tap"}]}`,
		"bad gesture":    `{"nodes": [{"name": "a"}], "bindings": [{"gesture": "pinch", "node": "a"}], "steps": [{"action": "tap"}]}`,
		"bad delegate":   `{"nodes": [{"name": "a"}], "bindings": [{"gesture": "dbtap", "node": "a", "delegate": "li["}], "steps": [{"action": "tap"}]}`,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := runReplay([]byte(data), gesture.DefaultConfig(), quietLogger(), opts)
			assert.Error(t, err)
		})
	}

	_, err := runReplay([]byte(listReplay), gesture.DefaultConfig(), quietLogger(), replayOptions{})
	assert.Error(t, err, "zero frame duration")
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	replayPath := filepath.Join(dir, "replay.json")
	require.NoError(t, os.WriteFile(replayPath, []byte(listReplay), 0o644))
	configPath := filepath.Join(dir, "gestures.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("long_press_ms = 700\n"), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"run", replayPath, "--config", configPath})
	require.NoError(t, rootCmd.Execute())

	// With a 700ms threshold the 600ms hold is a short tap.
	dec := json.NewDecoder(&out)
	var got []gestureRecord
	for dec.More() {
		var rec gestureRecord
		require.NoError(t, dec.Decode(&rec))
		got = append(got, rec)
	}
	require.Len(t, got, 2)
	assert.Equal(t, "shorttap", got[0].Gesture)
	assert.Equal(t, "shorttap", got[1].Gesture)
}
