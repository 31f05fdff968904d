package config

import (
	"maps"
	"slices"
)

// Presets trade point count against interactivity.
var Presets = map[string]*Config{
	"preview":  preset(800, 0.1, "default"),
	"standard": preset(DefaultPoints, DefaultCutoff, "default"),
	"dense":    preset(10000, 0.02, "ocean"),
	"detailed": preset(20000, 0, "neon"),
}

func preset(points int, cutoff float64, theme string) *Config {
	cfg := DefaultConfig()
	cfg.Points = points
	cfg.Cutoff = cutoff
	cfg.Viewer.Theme = theme
	return cfg
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Server.AllowedOrigins = slices.Clone(p.Server.AllowedOrigins)
	return &cfg
}

func ListPresets() []string {
	return slices.Sorted(maps.Keys(Presets))
}
