// Package config handles loading and saving sgv configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/sgv/config.yaml
//   - Data:    ~/.local/share/sgv/ (exported snapshots by default)
//   - State:   ~/.local/state/sgv/ (recent payload paths)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// UIConfig holds UI preference settings.
type UIConfig struct {
	Theme     string `yaml:"theme,omitempty"`      // "dark", "light" or "" for adaptive
	FrameRate int    `yaml:"frame_rate,omitempty"` // animation ticks per second (default 30)
	NoMouse   bool   `yaml:"no_mouse,omitempty"`   // disable mouse tracking (keyboard only)
}

// TuningConfig overrides the scene's presentation constants. These are
// opaque tuning values inherited from the original viewer; zero means
// "use the built-in default".
type TuningConfig struct {
	StandardRadius   float64 `yaml:"standard_radius,omitempty"`    // circle radius for standard nodes
	ScatterHalfWidth float64 `yaml:"scatter_half_width,omitempty"` // requirement scatter square half-width
	PulseAmplitude   float64 `yaml:"pulse_amplitude,omitempty"`
	PulseFrequency   float64 `yaml:"pulse_frequency,omitempty"`
	FlowFrequency    float64 `yaml:"flow_frequency,omitempty"`
	ClickThreshold   float64 `yaml:"click_threshold,omitempty"` // click-vs-drag tolerance, screen cells
	HitRadius        float64 `yaml:"hit_radius,omitempty"`      // node pick radius, screen cells
}

// WatchConfig controls payload file watching.
type WatchConfig struct {
	// Enabled never uses omitempty: an explicit false must survive a
	// save/load cycle instead of collapsing back to the default.
	Enabled      bool    `yaml:"enabled"`
	DebounceMS   int     `yaml:"debounce_ms,omitempty"`
	PollSeconds  float64 `yaml:"poll_seconds,omitempty"`
	ForcePolling bool    `yaml:"force_polling,omitempty"`
}

// Config is the top-level configuration for sgv.
type Config struct {
	UI     UIConfig     `yaml:"ui,omitempty"`
	Tuning TuningConfig `yaml:"tuning,omitempty"`
	Watch  WatchConfig  `yaml:"watch,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		UI: UIConfig{
			FrameRate: 30,
		},
		Watch: WatchConfig{
			Enabled:    true,
			DebounceMS: 250,
		},
	}
}

// ConfigDir returns the XDG config directory for sgv.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "sgv")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "sgv")
}

// DataDir returns the XDG data directory for sgv.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "sgv")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "sgv")
}

// StateDir returns the XDG state directory for sgv.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "sgv")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "sgv")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(expandHome(path))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.UI.FrameRate <= 0 {
		cfg.UI.FrameRate = 30
	}

	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
