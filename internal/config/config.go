package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/orbitals/internal/cloud"
	"github.com/san-kum/orbitals/internal/quantum"
)

const (
	DefaultState   = "2pz"
	DefaultPoints  = 3000
	DefaultCutoff  = 0.05
	DefaultTheme   = "default"
	DefaultFPS     = 20
	DefaultWidth   = 100
	DefaultHeight  = 36
	DefaultRotate  = 0.03
	DefaultAddr    = ":8080"
	DefaultDataDir = "runs"

	MinPoints = 1
	MaxPoints = 20000
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	State   string        `yaml:"state"`
	Points  int           `yaml:"points"`
	Cutoff  float64       `yaml:"cutoff"`
	Seed    uint64        `yaml:"seed"`
	DataDir string        `yaml:"data_dir"`
	Sampler cloud.Options `yaml:"sampler"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

type ViewerConfig struct {
	Theme       string  `yaml:"theme"`
	FPS         int     `yaml:"fps"`
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	RotateSpeed float64 `yaml:"rotate_speed"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

func DefaultConfig() *Config {
	return &Config{
		State:   DefaultState,
		Points:  DefaultPoints,
		Cutoff:  DefaultCutoff,
		DataDir: DefaultDataDir,
		Sampler: cloud.DefaultOptions(),
		Viewer: ViewerConfig{
			Theme:       DefaultTheme,
			FPS:         DefaultFPS,
			Width:       DefaultWidth,
			Height:      DefaultHeight,
			RotateSpeed: DefaultRotate,
		},
		Server: ServerConfig{
			Addr:           DefaultAddr,
			AllowedOrigins: []string{"*"},
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads a yaml file over the defaults.
func Load(path string) (*Config, error) {
	return LoadInto(DefaultConfig(), path)
}

// LoadInto reads a yaml file over base, so a preset can sit underneath.
func LoadInto(base *Config, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, base); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := base.Validate(); err != nil {
		return nil, err
	}
	return base, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if quantum.ByLabel(c.State) == nil {
		return fmt.Errorf("%w: unknown state %q", ErrInvalidConfig, c.State)
	}
	if c.Points < MinPoints || c.Points > MaxPoints {
		return fmt.Errorf("%w: points %d outside [%d, %d]", ErrInvalidConfig, c.Points, MinPoints, MaxPoints)
	}
	if math.IsNaN(c.Cutoff) || c.Cutoff < 0 || c.Cutoff > 1 {
		return fmt.Errorf("%w: cutoff %v outside [0, 1]", ErrInvalidConfig, c.Cutoff)
	}
	if !(c.Sampler.Oversample >= 1) {
		return fmt.Errorf("%w: sampler.oversample must be >= 1", ErrInvalidConfig)
	}
	if c.Sampler.AttemptFactor < 1 {
		return fmt.Errorf("%w: sampler.attempt_factor must be >= 1", ErrInvalidConfig)
	}
	if c.Sampler.MinAttempts < 0 {
		return fmt.Errorf("%w: sampler.min_attempts must not be negative", ErrInvalidConfig)
	}
	if !(c.Sampler.Compression > 0) || math.IsInf(c.Sampler.Compression, 0) {
		return fmt.Errorf("%w: sampler.compression must be a positive number", ErrInvalidConfig)
	}
	if !(c.Sampler.AngularJitter >= 0) || !(c.Sampler.PadJitter >= 0) {
		return fmt.Errorf("%w: sampler jitter must be a non-negative number", ErrInvalidConfig)
	}
	if c.Viewer.FPS <= 0 {
		return fmt.Errorf("%w: viewer.fps must be positive", ErrInvalidConfig)
	}
	return nil
}

// StateOrDefault resolves the configured state, falling back to 2pz.
func (c *Config) StateOrDefault() quantum.State {
	if st := quantum.ByLabel(c.State); st != nil {
		return *st
	}
	return *quantum.ByLabel(DefaultState)
}

// Request builds the engine request for the configured state.
func (c *Config) Request() cloud.Request {
	return cloud.RequestFor(c.StateOrDefault(), c.Points, c.Cutoff)
}
