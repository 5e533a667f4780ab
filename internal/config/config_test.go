package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Garsondee/Gorillas-3D/internal/game"
)

func TestLoad_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_NoDirectory(t *testing.T) {
	t.Cleanup(viper.Reset)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, game.DefaultTuning(), cfg.Game)
}

func TestLoad_FileOverrides(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	content := `
logLevel: debug
audio: false
game:
  level:
    randomSize: true
    minSize: 9
  wind:
    enabled: true
  timing:
    introTurns: 1
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gorillas.yaml"), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.Audio)
	assert.True(t, cfg.Game.Level.RandomSize)
	assert.Equal(t, 9, cfg.Game.Level.MinSize)
	assert.True(t, cfg.Game.Wind.Enabled)
	assert.Equal(t, 1, cfg.Game.Timing.IntroTurns)

	// untouched keys keep their defaults
	d := game.DefaultTuning()
	assert.Equal(t, d.Level.MaxSize, cfg.Game.Level.MaxSize)
	assert.Equal(t, d.Physics, cfg.Game.Physics)
	assert.Equal(t, 0.8, cfg.Volume)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("GORILLAS_GAME_LEVEL_SIZE", "11")
	t.Setenv("GORILLAS_LOGLEVEL", "warn")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 11, cfg.Game.Level.Size)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gorillas.yaml"), []byte("game: [unclosed\n"), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	content := "game:\n  level:\n    minHeight: 8\n    maxHeight: 2\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gorillas.yaml"), []byte(content), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	assert.Contains(t, err.Error(), "minHeight 8 > maxHeight 2")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"tiny level", func(c *Config) { c.Game.Level.Size = 5 }, false},
		{"upward gravity", func(c *Config) { c.Game.Physics.Gravity = 9.8 }, false},
		{"zero step", func(c *Config) { c.Game.Physics.Step = 0 }, false},
		{"inverted speed range", func(c *Config) { c.Game.Launch.MinSpeed = 50 }, false},
		{"elevation past vertical", func(c *Config) { c.Game.Launch.MaxElevation = 120 }, false},
		{"wind range ignored when off", func(c *Config) { c.Game.Wind.MinSpeed = 40 }, true},
		{"wind range checked when on", func(c *Config) {
			c.Game.Wind.Enabled = true
			c.Game.Wind.MinSpeed = 40
		}, false},
		{"loud", func(c *Config) { c.Volume = 1.5 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}

func TestWrite_RoundTripsThroughLoad(t *testing.T) {
	t.Cleanup(viper.Reset)

	cfg := Default()
	cfg.LogLevel = "error"
	cfg.Game.Level.Size = 13
	cfg.Game.Camera.RiseEveryTurn = false

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, cfg))

	var generic map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &generic))
	assert.Contains(t, generic, "game")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gorillas.yaml"), buf.Bytes(), 0o644))

	got, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
