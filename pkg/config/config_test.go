package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFrom_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	def := DefaultConfig()
	if cfg.UI.FrameRate != def.UI.FrameRate || cfg.Watch.DebounceMS != def.Watch.DebounceMS {
		t.Errorf("got %+v, want defaults %+v", cfg, def)
	}
	if !cfg.Watch.Enabled {
		t.Error("watching disabled by default")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.UI.FrameRate = 15
	cfg.UI.NoMouse = true
	cfg.Tuning.StandardRadius = 14
	cfg.Tuning.ClickThreshold = 3.5
	cfg.Watch.Enabled = false
	cfg.Watch.DebounceMS = 500

	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got.UI.FrameRate != 15 || !got.UI.NoMouse {
		t.Errorf("UI section lost: %+v", got.UI)
	}
	if got.Tuning.StandardRadius != 14 || got.Tuning.ClickThreshold != 3.5 {
		t.Errorf("Tuning section lost: %+v", got.Tuning)
	}
	if got.Watch.Enabled || got.Watch.DebounceMS != 500 {
		t.Errorf("Watch section lost: %+v", got.Watch)
	}
}

func TestLoadFrom_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("ui: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("malformed config loaded without error")
	}
}

func TestLoadFrom_FrameRateFloor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("ui:\n  frame_rate: -5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.UI.FrameRate != 30 {
		t.Errorf("frame rate = %d, want floor 30", cfg.UI.FrameRate)
	}
}
