package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.State != "2pz" {
		t.Errorf("expected state 2pz, got %s", cfg.State)
	}
	if cfg.Points <= 0 {
		t.Error("points should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	if cfg.Sampler.Compression != 0.7 {
		t.Errorf("expected compression 0.7, got %v", cfg.Sampler.Compression)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown state", func(c *Config) { c.State = "4f" }},
		{"zero points", func(c *Config) { c.Points = 0 }},
		{"too many points", func(c *Config) { c.Points = MaxPoints + 1 }},
		{"negative cutoff", func(c *Config) { c.Cutoff = -0.1 }},
		{"cutoff above one", func(c *Config) { c.Cutoff = 1.5 }},
		{"undersampling", func(c *Config) { c.Sampler.Oversample = 0.5 }},
		{"NaN oversample", func(c *Config) { c.Sampler.Oversample = math.NaN() }},
		{"no attempts", func(c *Config) { c.Sampler.AttemptFactor = 0 }},
		{"negative min attempts", func(c *Config) { c.Sampler.MinAttempts = -1 }},
		{"zero compression", func(c *Config) { c.Sampler.Compression = 0 }},
		{"negative compression", func(c *Config) { c.Sampler.Compression = -0.5 }},
		{"NaN compression", func(c *Config) { c.Sampler.Compression = math.NaN() }},
		{"infinite compression", func(c *Config) { c.Sampler.Compression = math.Inf(1) }},
		{"negative jitter", func(c *Config) { c.Sampler.AngularJitter = -0.1 }},
		{"NaN pad jitter", func(c *Config) { c.Sampler.PadJitter = math.NaN() }},
		{"zero fps", func(c *Config) { c.Viewer.FPS = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orbitals.yaml")

	cfg := DefaultConfig()
	cfg.State = "3dxy"
	cfg.Points = 1234
	cfg.Sampler.Oversample = 1.5
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.State != "3dxy" || loaded.Points != 1234 || loaded.Sampler.Oversample != 1.5 {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("state: 3s\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.State != "3s" {
		t.Errorf("expected 3s, got %s", cfg.State)
	}
	if cfg.Points != DefaultPoints || cfg.Sampler.MinAttempts != 1000 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("points: -3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadInto(t *testing.T) {
	path := filepath.Join(t.TempDir(), "over.yaml")
	if err := os.WriteFile(path, []byte("cutoff: 0.2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadInto(GetPreset("dense"), path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Points != 10000 || cfg.Cutoff != 0.2 {
		t.Errorf("expected preset points with file cutoff, got %d / %v", cfg.Points, cfg.Cutoff)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("preview")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Points != 800 {
		t.Errorf("expected 800 points, got %d", cfg.Points)
	}

	cfg.Points = 1
	if Presets["preview"].Points != 800 {
		t.Error("GetPreset must return a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	got := ListPresets()
	want := []string{"dense", "detailed", "preview", "standard"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %s, got %s", i, want[i], got[i])
		}
	}
	for _, name := range got {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestRequest(t *testing.T) {
	cfg := DefaultConfig()
	cfg.State = "3dz2"
	req := cfg.Request()
	if req.N != 3 || req.L != 2 || req.M != 0 || req.NumPoints != cfg.Points {
		t.Errorf("unexpected request %+v", req)
	}
}
