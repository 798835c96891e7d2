package config

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt       = 0.01
	DefaultDuration = 10.0
	DefaultCapacity = 1024
	DefaultG        = 1.0
	DefaultOmega    = 1.0
	DefaultK        = 1.0
)

type Config struct {
	Scenario  string       `yaml:"scenario"`
	Field     string       `yaml:"field"`
	Dt        float64      `yaml:"dt"`
	Duration  float64      `yaml:"duration"`
	Capacity  int          `yaml:"capacity"`
	G         float64      `yaml:"g"`
	Softening float64      `yaml:"softening"`
	Omega     float64      `yaml:"omega"`
	K         float64      `yaml:"k"`
	Bodies    []BodyConfig `yaml:"bodies"`
}

type BodyConfig struct {
	ID       string     `yaml:"id"`
	Mass     float64    `yaml:"mass"`
	Position [3]float64 `yaml:"position"`
	Velocity [3]float64 `yaml:"velocity"`
}

func (b BodyConfig) PositionVec() mgl64.Vec3 {
	return mgl64.Vec3{b.Position[0], b.Position[1], b.Position[2]}
}

func (b BodyConfig) VelocityVec() mgl64.Vec3 {
	return mgl64.Vec3{b.Velocity[0], b.Velocity[1], b.Velocity[2]}
}

func DefaultConfig() *Config {
	return &Config{
		Scenario: "binary",
		Field:    "gravity",
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Capacity: DefaultCapacity,
		G:        DefaultG,
		Omega:    DefaultOmega,
		K:        DefaultK,
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
	return cfg, cfg.Validate()
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
		return fmt.Errorf("config: dt must be positive, got %v", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("config: duration must be positive, got %v", c.Duration)
	}
	if c.Capacity < 2 {
		return fmt.Errorf("config: capacity must be at least 2, got %d", c.Capacity)
	}
	if len(c.Bodies) == 0 {
		return fmt.Errorf("config: no bodies defined")
	}
	for i, b := range c.Bodies {
		if b.Mass <= 0 {
			return fmt.Errorf("config: body %d (%s): mass must be positive", i, b.ID)
		}
	}
	return nil
}
