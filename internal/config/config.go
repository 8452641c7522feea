package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/curtain/internal/cloth"
)

const (
	DefaultWidth       = 640.0
	DefaultHeight      = 480.0
	DefaultCols        = 60
	DefaultRows        = 40
	DefaultStartY      = 50.0
	DefaultResting     = 10.0
	DefaultStiffness   = 0.5
	DefaultDragRadius  = 20.0
	DefaultTearRadius  = 8.0
	DefaultGravity     = 9.8
	DefaultRelaxPasses = 5
	DefaultFPS         = 30
	DefaultDuration    = 10.0
)

// Runner setting errors.
var (
	ErrBadFPS      = errors.New("config: fps must be positive")
	ErrBadDuration = errors.New("config: duration must be positive")
	ErrBadStride   = errors.New("config: sample stride must not be negative")
)

// Config is the full tunable surface of a curtain run: the physics
// parameters plus runner settings.
type Config struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Cols        int     `yaml:"cols"`
	Rows        int     `yaml:"rows"`
	StartY      float64 `yaml:"start_y"`
	Resting     float64 `yaml:"resting_distance"`
	Stiffness   float64 `yaml:"stiffness"`
	DragRadius  float64 `yaml:"drag_radius"`
	TearRadius  float64 `yaml:"tear_radius"`
	Gravity     float64 `yaml:"gravity"`
	RelaxPasses int     `yaml:"relax_passes"`

	FPS      int     `yaml:"fps"`
	Duration float64 `yaml:"duration"`
	Stride   int     `yaml:"sample_stride"` // record every Nth frame; 0 means every frame
}

func DefaultConfig() *Config {
	return &Config{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Cols:        DefaultCols,
		Rows:        DefaultRows,
		StartY:      DefaultStartY,
		Resting:     DefaultResting,
		Stiffness:   DefaultStiffness,
		DragRadius:  DefaultDragRadius,
		TearRadius:  DefaultTearRadius,
		Gravity:     DefaultGravity,
		RelaxPasses: DefaultRelaxPasses,
		FPS:         DefaultFPS,
		Duration:    DefaultDuration,
	}
}

// Load reads a YAML config on top of the defaults, so partial files work.
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

// Params maps the config onto the physics parameter set.
func (c *Config) Params() cloth.Params {
	return cloth.Params{
		Cols:        c.Cols,
		Rows:        c.Rows,
		StartY:      c.StartY,
		Resting:     c.Resting,
		Stiffness:   c.Stiffness,
		Gravity:     c.Gravity,
		Width:       c.Width,
		Height:      c.Height,
		DragRadius:  c.DragRadius,
		TearRadius:  c.TearRadius,
		RelaxPasses: c.RelaxPasses,
	}
}

// Dt returns the fixed timestep implied by the frame rate.
func (c *Config) Dt() float64 {
	fps := c.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	return 1.0 / float64(fps)
}

// Validate checks the runner settings and delegates the physics rules.
func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if c.FPS <= 0 {
		return ErrBadFPS
	}
	if c.Duration <= 0 {
		return ErrBadDuration
	}
	if c.Stride < 0 {
		return ErrBadStride
	}
	return nil
}
