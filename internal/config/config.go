package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt        = 1.0 / 60.0
	DefaultDuration  = 10.0
	DefaultFrameRate = 30
)

// Config holds the tool-level settings shared by the CLI commands.
type Config struct {
	Scene     string  `yaml:"scene"`
	Dt        float32 `yaml:"dt"`
	Duration  float32 `yaml:"duration"`
	FrameRate int     `yaml:"frame_rate"`
	DataDir   string  `yaml:"data_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		Dt:        DefaultDt,
		Duration:  DefaultDuration,
		FrameRate: DefaultFrameRate,
		DataDir:   ".rigid",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", c.Duration)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("frame rate must be positive, got %d", c.FrameRate)
	}
	return nil
}
