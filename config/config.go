// Package config loads springgraph settings from a TOML file. Values missing
// from the file keep their defaults; command-line flags are applied on top
// by the caller.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/TFMV/springgraph/physics"
)

// Simulation holds the force model constants.
type Simulation struct {
	RepulsionDistance float64 `toml:"repulsion_distance"`
	RepulsionForce    float64 `toml:"repulsion_force"`
	AttractionForce   float64 `toml:"attraction_force"`
	MaxSpeed          float64 `toml:"max_speed"`
}

// Params converts the section into engine parameters.
func (s Simulation) Params() physics.Params {
	return physics.Params{
		RepulsionDistance: s.RepulsionDistance,
		RepulsionForce:    s.RepulsionForce,
		AttractionForce:   s.AttractionForce,
	}
}

// Viewport bounds node positions after every step.
type Viewport struct {
	Width   float64 `toml:"width"`
	Height  float64 `toml:"height"`
	Padding float64 `toml:"padding"`
	Clamp   bool    `toml:"clamp"`
}

// Run controls batch and live runs.
type Run struct {
	Steps     int     `toml:"steps"`
	DeltaTime float64 `toml:"delta_time"` // fixed step for batch runs, seconds
	FPS       int     `toml:"fps"`        // frame rate of the live view
	Strict    bool    `toml:"strict"`     // reject incomplete trailing link pairs
	Scatter   float64 `toml:"scatter"`    // offset for coincident nodes, 0 disables
	Seed      int64   `toml:"seed"`
}

// Server configures the HTTP host.
type Server struct {
	Addr     string `toml:"addr"`
	MaxSteps int    `toml:"max_steps"`
	MaxBytes int64  `toml:"max_bytes"`
}

// Config is the complete configuration.
type Config struct {
	Simulation Simulation `toml:"simulation"`
	Viewport   Viewport   `toml:"viewport"`
	Run        Run        `toml:"run"`
	Server     Server     `toml:"server"`
}

// Default returns the built-in configuration.
func Default() Config {
	p := physics.DefaultParams()
	return Config{
		Simulation: Simulation{
			RepulsionDistance: p.RepulsionDistance,
			RepulsionForce:    p.RepulsionForce,
			AttractionForce:   p.AttractionForce,
			MaxSpeed:          physics.DefaultMaxSpeed,
		},
		Viewport: Viewport{
			Width:  800,
			Height: 600,
			Clamp:  true,
		},
		Run: Run{
			Steps:     500,
			DeltaTime: 1.0 / 60,
			FPS:       30,
			Seed:      1,
		},
		Server: Server{
			Addr:     ":8080",
			MaxSteps: 10000,
			MaxBytes: 4 << 20,
		},
	}
}

// Load reads the TOML file at path over the defaults. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("parse config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	var errs []error
	if err := c.Simulation.Params().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Simulation.MaxSpeed <= 0 {
		errs = append(errs, fmt.Errorf("max speed must be positive, got %v", c.Simulation.MaxSpeed))
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		errs = append(errs, fmt.Errorf("viewport must have a positive size, got %vx%v", c.Viewport.Width, c.Viewport.Height))
	}
	if c.Viewport.Padding < 0 {
		errs = append(errs, fmt.Errorf("viewport padding must be non-negative, got %v", c.Viewport.Padding))
	}
	if c.Run.Steps < 0 {
		errs = append(errs, fmt.Errorf("steps must be non-negative, got %d", c.Run.Steps))
	}
	if c.Run.DeltaTime < 0 {
		errs = append(errs, fmt.Errorf("delta time must be non-negative, got %v", c.Run.DeltaTime))
	}
	if c.Run.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps must be positive, got %d", c.Run.FPS))
	}
	if c.Run.Scatter < 0 {
		errs = append(errs, fmt.Errorf("scatter must be non-negative, got %v", c.Run.Scatter))
	}
	if c.Server.MaxSteps <= 0 {
		errs = append(errs, fmt.Errorf("server max steps must be positive, got %d", c.Server.MaxSteps))
	}
	if c.Server.MaxBytes <= 0 {
		errs = append(errs, fmt.Errorf("server max bytes must be positive, got %d", c.Server.MaxBytes))
	}
	return errors.Join(errs...)
}
