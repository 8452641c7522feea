package sim

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/curtain/internal/cloth"
)

// Script is a scripted pointer track for headless runs: a sequence of timed
// moves, each holding the pointer at a position with a button state.
type Script struct {
	Name  string `yaml:"name"`
	Moves []Move `yaml:"moves"`
}

// Move holds the pointer at (X, Y) for t in [From, To).
type Move struct {
	From float64 `yaml:"from"`
	To   float64 `yaml:"to"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	Drag bool    `yaml:"drag"`
	Tear bool    `yaml:"tear"`
}

// LoadScript reads a YAML script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// At samples the pointer at time t. The first matching move wins; outside
// all moves (or for a nil script) the pointer is idle at the last known
// position with no buttons held.
func (s *Script) At(t float64) cloth.Pointer {
	if s == nil {
		return cloth.Pointer{}
	}
	var last cloth.Pointer
	for _, m := range s.Moves {
		if t >= m.From && t < m.To {
			return cloth.Pointer{X: m.X, Y: m.Y, Drag: m.Drag, Tear: m.Tear}
		}
		if t >= m.To {
			last = cloth.Pointer{X: m.X, Y: m.Y}
		}
	}
	return last
}
