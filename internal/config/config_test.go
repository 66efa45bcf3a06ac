package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Map.Path != "assets/map.txt" {
		t.Errorf("Map.Path = %q", cfg.Map.Path)
	}
	if cfg.Map.CellSize != 1.0 {
		t.Errorf("Map.CellSize = %v", cfg.Map.CellSize)
	}
	if cfg.Player.StartX != 2 || cfg.Player.StartY != 2 {
		t.Errorf("player start = (%d,%d), want (2,2)", cfg.Player.StartX, cfg.Player.StartY)
	}
	if cfg.Fade.Duration != time.Second {
		t.Errorf("Fade.Duration = %v, want 1s", cfg.Fade.Duration)
	}
	if cfg.Encounter.Cooldown != time.Second {
		t.Errorf("Encounter.Cooldown = %v, want 1s", cfg.Encounter.Cooldown)
	}
	if cfg.Debug.Enabled {
		t.Error("debug should be off by default")
	}
	if cfg.FrameInterval() != time.Second/30 {
		t.Errorf("FrameInterval() = %v", cfg.FrameInterval())
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "glyphquest.yaml")
	yaml := `
map:
  path: maps/cave.txt
  cell_size: 0.1
fade:
  duration: 2s
debug:
  enabled: true
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Map.Path != "maps/cave.txt" || cfg.Map.CellSize != 0.1 {
		t.Errorf("Map = %+v", cfg.Map)
	}
	if cfg.Fade.Duration != 2*time.Second {
		t.Errorf("Fade.Duration = %v, want 2s", cfg.Fade.Duration)
	}
	if !cfg.Debug.Enabled {
		t.Error("Debug.Enabled should be read from file")
	}
	// Untouched keys keep defaults
	if cfg.Encounter.Cooldown != time.Second {
		t.Errorf("Encounter.Cooldown = %v, want default 1s", cfg.Encounter.Cooldown)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("GLYPHQUEST_ENCOUNTER_COOLDOWN", "250ms")
	t.Setenv("GLYPHQUEST_PLAYER_START_X", "5")

	cfg, err := Load(filepath.Join(writeEmptyConfig(t), "glyphquest.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Encounter.Cooldown != 250*time.Millisecond {
		t.Errorf("Encounter.Cooldown = %v, want 250ms", cfg.Encounter.Cooldown)
	}
	if cfg.Player.StartX != 5 {
		t.Errorf("Player.StartX = %d, want 5", cfg.Player.StartX)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() with a missing explicit file should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"cell size", func(c *Config) { c.Map.CellSize = 0 }, "map.cell_size"},
		{"fade", func(c *Config) { c.Fade.Duration = 0 }, "fade.duration"},
		{"cooldown", func(c *Config) { c.Encounter.Cooldown = -time.Second }, "encounter.cooldown"},
		{"fps", func(c *Config) { c.Render.FPS = 0 }, "render.fps"},
		{"hold window", func(c *Config) { c.Input.HoldWindow = 0 }, "input.hold_window"},
		{"start", func(c *Config) { c.Player.StartY = -1 }, "player start"},
		{"map path", func(c *Config) { c.Map.Path = "" }, "map.path"},
	}

	for _, tt := range tests {
		cfg := Default()
		tt.mutate(cfg)
		err := cfg.Validate()
		if err == nil {
			t.Errorf("%s: Validate() should fail", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.field) {
			t.Errorf("%s: error %q should mention %q", tt.name, err, tt.field)
		}
	}
}

func TestTelemetryHeaders(t *testing.T) {
	if h := (TelemetryConfig{}).Headers(); h != nil {
		t.Errorf("Headers() without key = %v, want nil", h)
	}
	h := TelemetryConfig{APIKey: "k", Dataset: "d"}.Headers()
	if h["x-honeycomb-team"] != "k" || h["x-honeycomb-dataset"] != "d" {
		t.Errorf("Headers() = %v", h)
	}
}

func writeEmptyConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "glyphquest.yaml"), []byte("{}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadDotEnv(t *testing.T) {
	const key = "GLYPHQUEST_DOTENV_PROBE"
	t.Cleanup(func() { os.Unsetenv(key) })

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(key+"=from-dotenv\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"), path); err != nil {
		t.Fatalf("LoadDotEnv() error: %v", err)
	}
	if got := os.Getenv(key); got != "from-dotenv" {
		t.Errorf("%s = %q, want from-dotenv", key, got)
	}
}
