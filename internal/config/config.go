// Package config loads and saves the emulator's JSON configuration file:
// window geometry, video filtering, and the two controller ports' key
// bindings.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds every user-facing setting the front end reads at startup.
type Config struct {
	Window WindowConfig `json:"window"`
	Video  VideoConfig  `json:"video"`
	Input  InputConfig  `json:"input"`
	Debug  DebugConfig  `json:"debug"`

	path string
}

// WindowConfig controls the Ebitengine window geometry.
type WindowConfig struct {
	Scale      int  `json:"scale"` // NES resolution (256x240) multiplier
	Fullscreen bool `json:"fullscreen"`
}

// VideoConfig controls frame presentation.
type VideoConfig struct {
	VSync  bool   `json:"vsync"`
	Filter string `json:"filter"` // "nearest" or "linear"
}

// KeyMapping names the Ebitengine key bound to each NES button.
type KeyMapping struct {
	Up     string `json:"up"`
	Down   string `json:"down"`
	Left   string `json:"left"`
	Right  string `json:"right"`
	A      string `json:"a"`
	B      string `json:"b"`
	Start  string `json:"start"`
	Select string `json:"select"`
}

// InputConfig holds both controller ports' key bindings.
type InputConfig struct {
	Player1 KeyMapping `json:"player1_keys"`
	Player2 KeyMapping `json:"player2_keys"`
}

// DebugConfig toggles developer-facing output.
type DebugConfig struct {
	ShowFPS       bool `json:"show_fps"`
	EnableLogging bool `json:"enable_logging"`
}

// New returns the default configuration, matching a fresh install.
func New() *Config {
	return &Config{
		Window: WindowConfig{Scale: 2, Fullscreen: false},
		Video:  VideoConfig{VSync: true, Filter: "nearest"},
		Input: InputConfig{
			Player1: KeyMapping{Up: "W", Down: "S", Left: "A", Right: "D", A: "J", B: "K", Start: "Enter", Select: "Space"},
			Player2: KeyMapping{Up: "Up", Down: "Down", Left: "Left", Right: "Right", A: "N", B: "M", Start: "RightShift", Select: "RightControl"},
		},
		Debug: DebugConfig{ShowFPS: false, EnableLogging: false},
	}
}

// Load reads path, falling back to writing and returning the default
// configuration if it does not yet exist.
func Load(path string) (*Config, error) {
	cfg := New()
	cfg.path = path

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, cfg.Save()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.path = path
	return cfg, nil
}

// Save writes the configuration back to its loaded path, creating the
// parent directory if needed.
func (c *Config) Save() error {
	if c.path == "" {
		return fmt.Errorf("config: no path set")
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", c.path, err)
	}
	return nil
}

// DefaultPath returns the conventional location for the config file.
func DefaultPath() string {
	return filepath.Join("config", "gones.json")
}
