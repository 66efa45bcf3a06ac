// Package config loads game settings from defaults, an optional YAML file and GLYPHQUEST_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables that override config keys.
// Nested keys use underscores: GLYPHQUEST_FADE_DURATION=2s.
const EnvPrefix = "GLYPHQUEST"

// Config holds all game configuration.
type Config struct {
	Map       MapConfig       `mapstructure:"map"`
	Player    PlayerConfig    `mapstructure:"player"`
	Encounter EncounterConfig `mapstructure:"encounter"`
	Fade      FadeConfig      `mapstructure:"fade"`
	Input     InputConfig     `mapstructure:"input"`
	Render    RenderConfig    `mapstructure:"render"`
	Debug     DebugConfig     `mapstructure:"debug"`
	Log       LogConfig       `mapstructure:"log"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// MapConfig locates the overworld map resource.
type MapConfig struct {
	Path     string  `mapstructure:"path"`
	CellSize float64 `mapstructure:"cell_size"` // world units per tile
	// Seed for generated maps. A seed of 0 means a time-based seed.
	Seed int64 `mapstructure:"seed"`
}

// PlayerConfig places the player and picks its class definition.
type PlayerConfig struct {
	StartX int    `mapstructure:"start_x"` // grid column
	StartY int    `mapstructure:"start_y"` // grid row
	Class  string `mapstructure:"class"`
}

// EncounterConfig tunes random encounters.
type EncounterConfig struct {
	Cooldown time.Duration `mapstructure:"cooldown"`
	Enemy    string        `mapstructure:"enemy"` // enemy id, or "random" for a weighted pick
}

// FadeConfig tunes the screen fade between game states.
type FadeConfig struct {
	Duration time.Duration `mapstructure:"duration"`
	Color    string        `mapstructure:"color"` // hex, e.g. #1A1A26
}

// InputConfig tunes key handling.
type InputConfig struct {
	// Terminals only report presses, so a key counts as held for this long after its last press or repeat.
	HoldWindow time.Duration `mapstructure:"hold_window"`
}

// RenderConfig tunes the frame loop.
type RenderConfig struct {
	FPS int `mapstructure:"fps"`
}

// DebugConfig enables debug-only controls: force-exit from combat and world dumps.
type DebugConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LogConfig controls the rotating log file.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"` // text or json
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// TelemetryConfig controls OTLP trace export.
type TelemetryConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
	APIKey   string `mapstructure:"api_key"`
	Dataset  string `mapstructure:"dataset"`
}

// Headers returns the OTLP headers for the configured backend.
func (t TelemetryConfig) Headers() map[string]string {
	if t.APIKey == "" {
		return nil
	}
	return map[string]string{
		"x-honeycomb-team":    t.APIKey,
		"x-honeycomb-dataset": t.Dataset,
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("map.path", "assets/map.txt")
	v.SetDefault("map.cell_size", 1.0)
	v.SetDefault("map.seed", 0)

	v.SetDefault("player.start_x", 2)
	v.SetDefault("player.start_y", 2)
	v.SetDefault("player.class", "hero")

	v.SetDefault("encounter.cooldown", time.Second)
	v.SetDefault("encounter.enemy", "bat")

	v.SetDefault("fade.duration", time.Second)
	v.SetDefault("fade.color", "#1A1A26")

	v.SetDefault("input.hold_window", 150*time.Millisecond)
	v.SetDefault("render.fps", 30)
	v.SetDefault("debug.enabled", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "glyphquest.log")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.endpoint", "https://api.honeycomb.io")
	v.SetDefault("telemetry.api_key", "")
	v.SetDefault("telemetry.dataset", "glyphquest")
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg, err := load(viper.New(), "", false)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration. When path is empty, glyphquest.yaml is searched for in
// the working directory and $HOME/.config/glyphquest; a missing file is not an error.
// An explicit path must exist.
func Load(path string) (*Config, error) {
	return load(viper.New(), path, true)
}

func load(v *viper.Viper, path string, readFile bool) (*Config, error) {
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if readFile {
		if path != "" {
			v.SetConfigFile(path)
		} else {
			v.SetConfigName("glyphquest")
			v.SetConfigType("yaml")
			v.AddConfigPath(".")
			v.AddConfigPath("$HOME/.config/glyphquest")
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if path != "" || !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the game loop cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Map.Path == "" {
		errs = append(errs, errors.New("map.path must be set"))
	}
	if c.Map.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("map.cell_size must be positive, got %v", c.Map.CellSize))
	}
	if c.Player.StartX < 0 || c.Player.StartY < 0 {
		errs = append(errs, fmt.Errorf("player start (%d,%d) must not be negative", c.Player.StartX, c.Player.StartY))
	}
	if c.Encounter.Cooldown <= 0 {
		errs = append(errs, fmt.Errorf("encounter.cooldown must be positive, got %v", c.Encounter.Cooldown))
	}
	if c.Fade.Duration <= 0 {
		errs = append(errs, fmt.Errorf("fade.duration must be positive, got %v", c.Fade.Duration))
	}
	if c.Input.HoldWindow <= 0 {
		errs = append(errs, fmt.Errorf("input.hold_window must be positive, got %v", c.Input.HoldWindow))
	}
	if c.Render.FPS <= 0 {
		errs = append(errs, fmt.Errorf("render.fps must be positive, got %d", c.Render.FPS))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// FrameInterval returns the time between rendered frames.
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.Render.FPS)
}
