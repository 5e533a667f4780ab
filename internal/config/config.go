// Package config loads the game configuration from an optional YAML file
// and GORILLAS_* environment variables on top of built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Garsondee/Gorillas-3D/internal/game"
)

// FileName is the config file looked up in the config directory.
const FileName = "gorillas"

// ErrInvalidConfig is returned when the loaded values cannot be played.
var ErrInvalidConfig = errors.New("invalid config")

// Config is everything the front ends read at startup.
type Config struct {
	LogLevel   string      `yaml:"logLevel" mapstructure:"logLevel"`
	LogConsole bool        `yaml:"logConsole" mapstructure:"logConsole"`
	LogFile    string      `yaml:"logFile" mapstructure:"logFile"`
	Audio      bool        `yaml:"audio" mapstructure:"audio"`
	Volume     float64     `yaml:"volume" mapstructure:"volume"` // 0..1
	Game       game.Tuning `yaml:"game" mapstructure:"game"`
}

func setDefaults() {
	d := game.DefaultTuning()

	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logConsole", true)
	viper.SetDefault("logFile", "")
	viper.SetDefault("audio", true)
	viper.SetDefault("volume", 0.8)

	viper.SetDefault("game.level.randomSize", d.Level.RandomSize)
	viper.SetDefault("game.level.size", d.Level.Size)
	viper.SetDefault("game.level.minSize", d.Level.MinSize)
	viper.SetDefault("game.level.maxSize", d.Level.MaxSize)
	viper.SetDefault("game.level.minHeight", d.Level.MinHeight)
	viper.SetDefault("game.level.maxHeight", d.Level.MaxHeight)
	viper.SetDefault("game.level.skins", d.Level.Skins)
	viper.SetDefault("game.level.edgeBand", d.Level.EdgeBand)
	viper.SetDefault("game.level.minPlayerDistance", d.Level.MinPlayerDistance)
	viper.SetDefault("game.level.nearPlayerRadius", d.Level.NearPlayerRadius)
	viper.SetDefault("game.level.aimJitter", d.Level.AimJitter)
	viper.SetDefault("game.level.maxPlacementAttempts", d.Level.MaxPlacementAttempts)

	viper.SetDefault("game.launch.minSpeed", d.Launch.MinSpeed)
	viper.SetDefault("game.launch.maxSpeed", d.Launch.MaxSpeed)
	viper.SetDefault("game.launch.minElevation", d.Launch.MinElevation)
	viper.SetDefault("game.launch.maxElevation", d.Launch.MaxElevation)
	viper.SetDefault("game.launch.cameraDistance", d.Launch.CameraDistance)

	viper.SetDefault("game.physics.gravity", d.Physics.Gravity)
	viper.SetDefault("game.physics.tileScale", d.Physics.TileScale)
	viper.SetDefault("game.physics.step", d.Physics.Step)
	viper.SetDefault("game.physics.maxFlightTime", d.Physics.MaxFlightTime)

	viper.SetDefault("game.wind.enabled", d.Wind.Enabled)
	viper.SetDefault("game.wind.minSpeed", d.Wind.MinSpeed)
	viper.SetDefault("game.wind.maxSpeed", d.Wind.MaxSpeed)

	viper.SetDefault("game.timing.reveal", d.Timing.Reveal)
	viper.SetDefault("game.timing.selection", d.Timing.Selection)
	viper.SetDefault("game.timing.blinkDuration", d.Timing.BlinkDuration)
	viper.SetDefault("game.timing.blinkCount", d.Timing.BlinkCount)
	viper.SetDefault("game.timing.explosion", d.Timing.Explosion)
	viper.SetDefault("game.timing.collapse", d.Timing.Collapse)
	viper.SetDefault("game.timing.extraDelay", d.Timing.ExtraDelay)
	viper.SetDefault("game.timing.introTurns", d.Timing.IntroTurns)

	viper.SetDefault("game.explosion.particles", d.Explosion.Particles)
	viper.SetDefault("game.explosion.minSpeed", d.Explosion.MinSpeed)
	viper.SetDefault("game.explosion.maxSpeed", d.Explosion.MaxSpeed)
	viper.SetDefault("game.explosion.minScale", d.Explosion.MinScale)
	viper.SetDefault("game.explosion.maxScale", d.Explosion.MaxScale)

	viper.SetDefault("game.camera.chaseDistance", d.Camera.ChaseDistance)
	viper.SetDefault("game.camera.chaseRampTime", d.Camera.ChaseRampTime)
	viper.SetDefault("game.camera.hideGorillaRadius", d.Camera.HideGorillaRadius)
	viper.SetDefault("game.camera.riseEveryTurn", d.Camera.RiseEveryTurn)
}

// Load reads gorillas.yaml from configDir, if present, and returns the
// validated configuration. A missing file is not an error; a malformed
// one is. An empty configDir skips the file entirely.
func Load(configDir string) (Config, error) {
	setDefaults()

	viper.SetEnvPrefix("GORILLAS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if configDir != "" {
		viper.SetConfigName(FileName)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(configDir)
		if err := viper.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the built-in configuration without touching viper.
func Default() Config {
	return Config{
		LogLevel:   "info",
		LogConsole: true,
		Audio:      true,
		Volume:     0.8,
		Game:       game.DefaultTuning(),
	}
}

// Validate rejects configurations the game cannot run with.
func Validate(cfg Config) error {
	tn := cfg.Game
	var problems []string
	check := func(ok bool, format string, args ...any) {
		if !ok {
			problems = append(problems, fmt.Sprintf(format, args...))
		}
	}

	check(tn.Level.Size >= 7, "level.size %d < 7", tn.Level.Size)
	check(tn.Level.MinSize >= 7, "level.minSize %d < 7", tn.Level.MinSize)
	check(tn.Level.MinSize <= tn.Level.MaxSize, "level.minSize %d > maxSize %d", tn.Level.MinSize, tn.Level.MaxSize)
	check(tn.Level.MinHeight >= 1, "level.minHeight %d < 1", tn.Level.MinHeight)
	check(tn.Level.MinHeight <= tn.Level.MaxHeight, "level.minHeight %d > maxHeight %d", tn.Level.MinHeight, tn.Level.MaxHeight)
	check(tn.Level.Skins >= 1, "level.skins %d < 1", tn.Level.Skins)
	check(tn.Level.MaxPlacementAttempts > 0, "level.maxPlacementAttempts must be positive")
	check(tn.Launch.MinSpeed > 0 && tn.Launch.MinSpeed <= tn.Launch.MaxSpeed,
		"launch speed range [%d,%d] invalid", tn.Launch.MinSpeed, tn.Launch.MaxSpeed)
	check(tn.Launch.MinElevation >= -90 && tn.Launch.MaxElevation <= 90 && tn.Launch.MinElevation <= tn.Launch.MaxElevation,
		"launch elevation range [%d,%d] invalid", tn.Launch.MinElevation, tn.Launch.MaxElevation)
	check(tn.Physics.Gravity < 0, "physics.gravity %v must point down", tn.Physics.Gravity)
	check(tn.Physics.TileScale > 0, "physics.tileScale must be positive")
	check(tn.Physics.Step > 0, "physics.step must be positive")
	check(tn.Physics.MaxFlightTime >= tn.Physics.Step, "physics.maxFlightTime shorter than one step")
	check(!tn.Wind.Enabled || tn.Wind.MinSpeed <= tn.Wind.MaxSpeed,
		"wind speed range [%d,%d] invalid", tn.Wind.MinSpeed, tn.Wind.MaxSpeed)
	check(tn.Timing.Reveal > 0 && tn.Timing.Selection > 0, "timing.reveal and timing.selection must be positive")
	check(tn.Timing.BlinkCount >= 0 && tn.Timing.IntroTurns >= 0, "timing counts must not be negative")
	check(tn.Explosion.Particles >= 0, "explosion.particles must not be negative")
	check(cfg.Volume >= 0 && cfg.Volume <= 1, "volume %v outside [0,1]", cfg.Volume)

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// Write emits cfg as YAML in the same shape Load reads.
func Write(w io.Writer, cfg Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}
