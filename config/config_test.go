package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mobile-next/touchemu/emulator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.ini"))
	require.NoError(t, err)
	assert.Equal(t, emulator.DefaultConfig(), cfg)
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, emulator.DefaultMultiTouchOffset, cfg.MultiTouchOffset)
	assert.True(t, cfg.ShowTouches)
}

func TestLoad_ReadsEmulatorSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "touchemu.ini")
	data := "[emulator]\nshow_touches = false\nmulti_touch_offset = 40.5\nignore_tags = input, select\nmodifier = Alt\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.ShowTouches)
	assert.Equal(t, 40.5, cfg.MultiTouchOffset)
	assert.Equal(t, []string{"INPUT", "SELECT"}, cfg.IgnoreTags)
	assert.Equal(t, emulator.ModifierAlt, cfg.Modifier)
}

func TestParse_PartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("[emulator]\nmulti_touch_offset = 10\n"))
	require.NoError(t, err)

	assert.Equal(t, 10.0, cfg.MultiTouchOffset)
	assert.Equal(t, emulator.DefaultIgnoreTags, cfg.IgnoreTags)
	assert.Equal(t, emulator.ModifierShift, cfg.Modifier)
}

func TestParse_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad bool", "[emulator]\nshow_touches = maybe\n"},
		{"bad offset", "[emulator]\nmulti_touch_offset = far\n"},
		{"bad modifier", "[emulator]\nmodifier = hyper\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"INPUT", "TEXTAREA"}, SplitTags(" input ,, textarea "))
	assert.Equal(t, []string{}, SplitTags(""))
}
