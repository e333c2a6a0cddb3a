package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/walksim/internal/dist"
	"github.com/san-kum/walksim/internal/playback"
	"github.com/san-kum/walksim/internal/walk"
)

const (
	DefaultDistribution = "binary"
	DefaultSteps        = 1000
	DefaultMode         = "cumulative"
	DefaultIntervalMs   = 50
	DefaultFrameRate    = 30
	DefaultLogLevel     = "info"
)

type Config struct {
	Distribution string `yaml:"distribution"`
	Steps        int    `yaml:"steps"`
	Mode         string `yaml:"mode"`
	IntervalMs   int    `yaml:"interval_ms"`
	Seed         int64  `yaml:"seed"`
	FrameRate    int    `yaml:"frame_rate"`
	LogLevel     string `yaml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		Distribution: DefaultDistribution,
		Steps:        DefaultSteps,
		Mode:         DefaultMode,
		IntervalMs:   DefaultIntervalMs,
		FrameRate:    DefaultFrameRate,
		LogLevel:     DefaultLogLevel,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Normalize clamps numeric fields into their accepted ranges and rejects
// selectors that do not parse.
func (c *Config) Normalize() error {
	if _, err := dist.ParseKind(c.Distribution); err != nil {
		return err
	}
	if _, err := walk.ParseMode(c.Mode); err != nil {
		return err
	}
	c.Steps = walk.ClampSteps(c.Steps)
	c.IntervalMs = int(playback.ClampInterval(c.IntervalMs) / time.Millisecond)
	if c.FrameRate < 1 {
		c.FrameRate = DefaultFrameRate
	}
	return nil
}

// Params returns the simulation parameters described by the config.
func (c *Config) Params() (walk.Params, error) {
	kind, err := dist.ParseKind(c.Distribution)
	if err != nil {
		return walk.Params{}, err
	}
	return walk.Params{Kind: kind, Steps: walk.ClampSteps(c.Steps)}, nil
}

func (c *Config) PresentationMode() (walk.Mode, error) {
	return walk.ParseMode(c.Mode)
}

func (c *Config) Interval() time.Duration {
	return playback.ClampInterval(c.IntervalMs)
}
